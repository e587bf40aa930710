package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is a community post published on a channel.
type Post struct {
	ID           string    `gorm:"type:uuid;primary_key" json:"id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ImageURL     string    `json:"image_url"`
	ChannelID    string    `gorm:"type:uuid;not null;index" json:"channel_id"`
	CreatorID    string    `gorm:"type:uuid;not null;index" json:"creator_id"`
	Likes        int64     `gorm:"default:0" json:"likes"`
	CommentCount int64     `gorm:"default:0" json:"comment_count"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Channel *Channel `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
	Creator *User    `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type PostLike struct {
	PostID    string    `gorm:"type:uuid;primaryKey" json:"post_id"`
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
