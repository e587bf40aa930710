package entity

import "time"

type Notification struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	ActorID   string    `json:"actor_id"`
	ChannelID string    `json:"channel_id,omitempty"`
	VideoID   string    `json:"video_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
