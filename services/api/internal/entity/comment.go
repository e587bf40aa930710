package entity

import "time"

type Comment struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	VideoID    string    `json:"video_id"`
	VideoTitle string    `json:"video_title,omitempty"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	AvatarURL  string    `json:"avatar_url"`
	Likes      int64     `json:"likes"`
	LikedBy    []string  `json:"liked_by"`
	Replies    []*Reply  `json:"replies"`
	CreatedAt  time.Time `json:"created_at"`
}

type Reply struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
