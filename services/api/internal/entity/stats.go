package entity

type DashboardStats struct {
	TotalUsers         int64      `json:"total_users"`
	TotalVideos        int64      `json:"total_videos"`
	TotalChannels      int64      `json:"total_channels"`
	TotalComments      int64      `json:"total_comments"`
	TotalPosts         int64      `json:"total_posts"`
	TotalCategories    int64      `json:"total_categories"`
	TotalSubscriptions int64      `json:"total_subscriptions"`
	TotalPlaylists     int64      `json:"total_playlists"`
	TotalViews         int64      `json:"total_views"`
	TotalLikes         int64      `json:"total_likes"`
	RecentVideos       []*Video   `json:"recent_videos"`
	RecentComments     []*Comment `json:"recent_comments"`
	RecentPosts        []*Post    `json:"recent_posts"`
	TopChannels        []*Channel `json:"top_channels"`
}
