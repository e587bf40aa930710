package entity

import "time"

const (
	PrivacyPublic   = "public"
	PrivacyPrivate  = "private"
	PrivacyUnlisted = "unlisted"
)

type Playlist struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Privacy      string    `json:"privacy"`
	OwnerID      string    `json:"owner_id"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoCount   int64     `json:"video_count"`
	Videos       []*Video  `json:"videos,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PlaylistDraft struct {
	Title       string
	Description string
	Privacy     string
	VideoID     string
}
