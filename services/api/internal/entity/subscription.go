package entity

import "time"

type Subscription struct {
	ID           string    `json:"id"`
	SubscriberID string    `json:"subscriber_id"`
	ChannelID    string    `json:"channel_id"`
	Channel      *Channel  `json:"channel,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
