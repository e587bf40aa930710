package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoType string

const (
	VideoTypeVideo VideoType = "video"
	VideoTypeLive  VideoType = "live"
	VideoTypeShort VideoType = "short"
)

func (t VideoType) Valid() bool {
	switch t {
	case VideoTypeVideo, VideoTypeLive, VideoTypeShort:
		return true
	}
	return false
}

type Video struct {
	ID           string     `gorm:"type:uuid;primary_key" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	ThumbnailURL string     `gorm:"not null" json:"thumbnail_url"`
	VideoURL     string     `gorm:"not null" json:"video_url"`
	Duration     string     `gorm:"type:varchar(16);default:'0:00'" json:"duration"`
	Views        int64      `gorm:"default:0;index" json:"views"`
	Likes        int64      `gorm:"default:0" json:"likes"`
	Dislikes     int64      `gorm:"default:0" json:"dislikes"`
	Shares       int64      `gorm:"default:0" json:"shares"`
	ChannelID    string     `gorm:"type:uuid;not null;index" json:"channel_id"`
	CreatorID    string     `gorm:"type:uuid;not null;index" json:"creator_id"`
	Tags         StringList `gorm:"type:text" json:"tags"`
	IsPublished  bool       `gorm:"index" json:"is_published"`
	Type         VideoType  `gorm:"type:varchar(10);default:'video';index" json:"type"`
	IsLive       bool       `json:"is_live"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Channel    *Channel   `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`
	Creator    *User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Categories []Category `gorm:"many2many:video_categories" json:"categories,omitempty"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.Type == "" {
		v.Type = VideoTypeVideo
	}
	return nil
}

func (v *Video) AfterCreate(tx *gorm.DB) error {
	return ReplaceVideoTags(tx, v.ID, v.Tags)
}

// VideoTag holds one tag of a video for matching. Video.Tags keeps the
// ordered list returned to clients.
type VideoTag struct {
	VideoID string `gorm:"type:uuid;primaryKey" json:"video_id"`
	Tag     string `gorm:"type:text;primaryKey;index" json:"tag"`
}

// ReplaceVideoTags rewrites the tag rows of a video. Blank and repeated tags
// are skipped.
func ReplaceVideoTags(tx *gorm.DB, videoID string, tags []string) error {
	if err := tx.Where("video_id = ?", videoID).Delete(&VideoTag{}).Error; err != nil {
		return err
	}

	rows := make([]VideoTag, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		rows = append(rows, VideoTag{VideoID: videoID, Tag: tag})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

type VideoLike struct {
	VideoID   string    `gorm:"type:uuid;primaryKey" json:"video_id"`
	UserID    string    `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type VideoView struct {
	VideoID   string    `gorm:"type:uuid;primaryKey" json:"video_id"`
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type VideoReport struct {
	VideoID   string    `gorm:"type:uuid;primaryKey" json:"video_id"`
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
