package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlaylistPrivacy string

const (
	PrivacyPublic   PlaylistPrivacy = "public"
	PrivacyPrivate  PlaylistPrivacy = "private"
	PrivacyUnlisted PlaylistPrivacy = "unlisted"
)

func (p PlaylistPrivacy) Valid() bool {
	switch p {
	case PrivacyPublic, PrivacyPrivate, PrivacyUnlisted:
		return true
	}
	return false
}

type Playlist struct {
	ID           string          `gorm:"type:uuid;primary_key" json:"id"`
	Title        string          `gorm:"not null" json:"title"`
	Description  string          `gorm:"type:text" json:"description"`
	Privacy      PlaylistPrivacy `gorm:"type:varchar(10);default:'public'" json:"privacy"`
	OwnerID      string          `gorm:"type:uuid;not null;index" json:"owner_id"`
	ThumbnailURL string          `json:"thumbnail_url"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (p *Playlist) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Privacy == "" {
		p.Privacy = PrivacyPublic
	}
	return nil
}

// PlaylistVideo orders the videos of a playlist by Position.
type PlaylistVideo struct {
	PlaylistID string    `gorm:"type:uuid;primaryKey" json:"playlist_id"`
	VideoID    string    `gorm:"type:uuid;primaryKey" json:"video_id"`
	Position   int       `gorm:"not null" json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}
