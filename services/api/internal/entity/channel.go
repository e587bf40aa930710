package entity

import "time"

type Channel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Handle      string    `json:"handle"`
	Description string    `json:"description"`
	AvatarURL   string    `json:"avatar_url"`
	BannerURL   string    `json:"banner_url"`
	Subscribers int64     `json:"subscribers"`
	IsVerified  bool      `json:"is_verified"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ChannelPage struct {
	Channel *Channel `json:"channel"`
	Videos  []*Video `json:"videos"`
}

type ChannelUpdate struct {
	Name        *string
	Handle      *string
	Description *string
	AvatarURL   *string
	BannerURL   *string
	IsVerified  *bool
}

type ChannelDraft struct {
	Name        string
	Handle      string
	Description string
	AvatarURL   string
	BannerURL   string
}
