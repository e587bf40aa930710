package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment stores the author's name and avatar as they were when posting.
type Comment struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	VideoID   string    `gorm:"type:uuid;not null;index" json:"video_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
	Likes     int64     `gorm:"default:0" json:"likes"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Replies []CommentReply `gorm:"foreignKey:CommentID" json:"replies"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

type CommentReply struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	CommentID string    `gorm:"type:uuid;not null;index" json:"comment_id"`
	UserID    string    `gorm:"type:uuid;not null" json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *CommentReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type CommentLike struct {
	CommentID string    `gorm:"type:uuid;primaryKey" json:"comment_id"`
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
