package models

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Channel{},
		&Category{},
		&Video{},
		&VideoTag{},
		&VideoLike{},
		&VideoView{},
		&VideoReport{},
		&WatchHistory{},
		&WatchLater{},
		&Comment{},
		&CommentReply{},
		&CommentLike{},
		&Post{},
		&PostLike{},
		&Subscription{},
		&Playlist{},
		&PlaylistVideo{},
	}
}
