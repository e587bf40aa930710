package entity

import "time"

type Post struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	ChannelID string    `json:"channel_id"`
	Channel   *Channel  `json:"channel,omitempty"`
	CreatorID string    `json:"creator_id"`
	Likes     int64     `json:"likes"`
	Stats     PostStats `json:"stats"`
	CreatedAt time.Time `json:"created_at"`
}

type PostStats struct {
	Comments int64 `json:"comments"`
}
