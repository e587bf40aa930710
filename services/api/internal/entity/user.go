package entity

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Handle    string    `json:"handle"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url"`
	ChannelID *string   `json:"channel_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryEntry is one watched video, newest first when listed.
type HistoryEntry struct {
	Video     *Video    `json:"video"`
	WatchedAt time.Time `json:"watched_at"`
}
