package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Handle    string    `gorm:"uniqueIndex;not null" json:"handle"`
	Role      UserRole  `gorm:"type:varchar(20);default:'user'" json:"role"`
	AvatarURL string    `json:"avatar_url"`
	ChannelID *string   `gorm:"type:uuid;index" json:"channel_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// WatchHistory keeps one row per (user, video); re-watching bumps WatchedAt.
type WatchHistory struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	VideoID   string    `gorm:"type:uuid;primaryKey" json:"video_id"`
	WatchedAt time.Time `gorm:"index;not null" json:"watched_at"`
}

func (WatchHistory) TableName() string {
	return "watch_history"
}

type WatchLater struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	VideoID   string    `gorm:"type:uuid;primaryKey" json:"video_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (WatchLater) TableName() string {
	return "watch_later"
}
