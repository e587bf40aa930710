package entity

import "time"

// Notification is the entry stored in a user's notification list. The API
// decodes the same JSON shape.
type Notification struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	ActorID   string    `json:"actor_id"`
	ChannelID string    `json:"channel_id,omitempty"`
	VideoID   string    `json:"video_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
