package entity

import "time"

const (
	VideoTypeVideo = "video"
	VideoTypeLive  = "live"
	VideoTypeShort = "short"
)

type Video struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	ThumbnailURL string      `json:"thumbnail_url"`
	VideoURL     string      `json:"video_url"`
	Duration     string      `json:"duration"`
	Views        int64       `json:"views"`
	Likes        int64       `json:"likes"`
	Dislikes     int64       `json:"dislikes"`
	Shares       int64       `json:"shares"`
	ChannelID    string      `json:"channel_id"`
	Channel      *Channel    `json:"channel,omitempty"`
	CreatorID    string      `json:"creator_id"`
	Creator      *UserRef    `json:"creator,omitempty"`
	Categories   []*Category `json:"categories"`
	Tags         []string    `json:"tags"`
	IsPublished  bool        `json:"is_published"`
	Type         string      `json:"type"`
	IsLive       bool        `json:"is_live"`
	LikedBy      []string    `json:"liked_by"`
	ReportCount  int64       `json:"report_count,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// UserRef is the public part of a user embedded in other resources.
type UserRef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatar_url"`
}

type VideoFilter struct {
	CategoryID string
	Search     string
	Sort       string
	Page       int
	Limit      int
}

type VideoPage struct {
	Videos     []*Video `json:"videos"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
}

type VideoUpdate struct {
	Title        *string
	Description  *string
	ThumbnailURL *string
	VideoURL     *string
	Duration     *string
	Tags         *[]string
	CategoryIDs  *[]string
	IsPublished  *bool
	Type         *string
}

type LikeResult struct {
	Likes   int64    `json:"likes"`
	Liked   bool     `json:"liked"`
	LikedBy []string `json:"liked_by"`
}

// VideoDraft is the input for a new video.
type VideoDraft struct {
	Title        string
	Description  string
	ThumbnailURL string
	VideoURL     string
	Duration     string
	ChannelID    string
	CategoryIDs  []string
	Tags         []string
	IsPublished  *bool
	Type         string
}
