package persistent

import (
	"opftube/pkg/models"
	"opftube/services/api/internal/entity"
)

func ToUserEntity(m *models.User) *entity.User {
	if m == nil {
		return nil
	}
	return &entity.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Password:  m.Password,
		Handle:    m.Handle,
		Role:      string(m.Role),
		AvatarURL: m.AvatarURL,
		ChannelID: m.ChannelID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *models.User {
	if e == nil {
		return nil
	}
	return &models.User{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Password:  e.Password,
		Handle:    e.Handle,
		Role:      models.UserRole(e.Role),
		AvatarURL: e.AvatarURL,
		ChannelID: e.ChannelID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToUserRef(m *models.User) *entity.UserRef {
	if m == nil {
		return nil
	}
	return &entity.UserRef{
		ID:        m.ID,
		Name:      m.Name,
		Handle:    m.Handle,
		AvatarURL: m.AvatarURL,
	}
}

func ToChannelEntity(m *models.Channel) *entity.Channel {
	if m == nil {
		return nil
	}
	return &entity.Channel{
		ID:          m.ID,
		Name:        m.Name,
		Handle:      m.Handle,
		Description: m.Description,
		AvatarURL:   m.AvatarURL,
		BannerURL:   m.BannerURL,
		Subscribers: m.Subscribers,
		IsVerified:  m.IsVerified,
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToChannelModel(e *entity.Channel) *models.Channel {
	if e == nil {
		return nil
	}
	return &models.Channel{
		ID:          e.ID,
		Name:        e.Name,
		Handle:      e.Handle,
		Description: e.Description,
		AvatarURL:   e.AvatarURL,
		BannerURL:   e.BannerURL,
		Subscribers: e.Subscribers,
		IsVerified:  e.IsVerified,
		OwnerID:     e.OwnerID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toChannelEntities(ms []models.Channel) []*entity.Channel {
	out := make([]*entity.Channel, 0, len(ms))
	for i := range ms {
		out = append(out, ToChannelEntity(&ms[i]))
	}
	return out
}

func ToCategoryEntity(m *models.Category) *entity.Category {
	if m == nil {
		return nil
	}
	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		Icon:      m.Icon,
		CreatedAt: m.CreatedAt,
	}
}

func ToVideoEntity(m *models.Video) *entity.Video {
	if m == nil {
		return nil
	}

	video := &entity.Video{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		ThumbnailURL: m.ThumbnailURL,
		VideoURL:     m.VideoURL,
		Duration:     m.Duration,
		Views:        m.Views,
		Likes:        m.Likes,
		Dislikes:     m.Dislikes,
		Shares:       m.Shares,
		ChannelID:    m.ChannelID,
		Channel:      ToChannelEntity(m.Channel),
		CreatorID:    m.CreatorID,
		Creator:      ToUserRef(m.Creator),
		Categories:   make([]*entity.Category, 0, len(m.Categories)),
		Tags:         []string(m.Tags),
		IsPublished:  m.IsPublished,
		Type:         string(m.Type),
		IsLive:       m.IsLive,
		LikedBy:      []string{},
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if video.Tags == nil {
		video.Tags = []string{}
	}
	for i := range m.Categories {
		video.Categories = append(video.Categories, ToCategoryEntity(&m.Categories[i]))
	}
	return video
}

func ToVideoModel(e *entity.Video) *models.Video {
	if e == nil {
		return nil
	}
	return &models.Video{
		ID:           e.ID,
		Title:        e.Title,
		Description:  e.Description,
		ThumbnailURL: e.ThumbnailURL,
		VideoURL:     e.VideoURL,
		Duration:     e.Duration,
		Views:        e.Views,
		Likes:        e.Likes,
		Dislikes:     e.Dislikes,
		Shares:       e.Shares,
		ChannelID:    e.ChannelID,
		CreatorID:    e.CreatorID,
		Tags:         models.StringList(e.Tags),
		IsPublished:  e.IsPublished,
		Type:         models.VideoType(e.Type),
		IsLive:       e.IsLive,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toVideoEntities(ms []models.Video) []*entity.Video {
	out := make([]*entity.Video, 0, len(ms))
	for i := range ms {
		out = append(out, ToVideoEntity(&ms[i]))
	}
	return out
}

func ToCommentEntity(m *models.Comment) *entity.Comment {
	if m == nil {
		return nil
	}
	comment := &entity.Comment{
		ID:        m.ID,
		Text:      m.Text,
		VideoID:   m.VideoID,
		UserID:    m.UserID,
		Username:  m.Username,
		AvatarURL: m.AvatarURL,
		Likes:     m.Likes,
		LikedBy:   []string{},
		Replies:   make([]*entity.Reply, 0, len(m.Replies)),
		CreatedAt: m.CreatedAt,
	}
	for _, r := range m.Replies {
		comment.Replies = append(comment.Replies, &entity.Reply{
			ID:        r.ID,
			UserID:    r.UserID,
			Username:  r.Username,
			AvatarURL: r.AvatarURL,
			Text:      r.Text,
			CreatedAt: r.CreatedAt,
		})
	}
	return comment
}

func ToPostEntity(m *models.Post) *entity.Post {
	if m == nil {
		return nil
	}
	return &entity.Post{
		ID:        m.ID,
		Content:   m.Content,
		ImageURL:  m.ImageURL,
		ChannelID: m.ChannelID,
		Channel:   ToChannelEntity(m.Channel),
		CreatorID: m.CreatorID,
		Likes:     m.Likes,
		Stats:     entity.PostStats{Comments: m.CommentCount},
		CreatedAt: m.CreatedAt,
	}
}

func toPostEntities(ms []models.Post) []*entity.Post {
	out := make([]*entity.Post, 0, len(ms))
	for i := range ms {
		out = append(out, ToPostEntity(&ms[i]))
	}
	return out
}

func ToSubscriptionEntity(m *models.Subscription) *entity.Subscription {
	if m == nil {
		return nil
	}
	return &entity.Subscription{
		ID:           m.ID,
		SubscriberID: m.SubscriberID,
		ChannelID:    m.ChannelID,
		Channel:      ToChannelEntity(m.Channel),
		CreatedAt:    m.CreatedAt,
	}
}

func ToPlaylistEntity(m *models.Playlist) *entity.Playlist {
	if m == nil {
		return nil
	}
	return &entity.Playlist{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Privacy:      string(m.Privacy),
		OwnerID:      m.OwnerID,
		ThumbnailURL: m.ThumbnailURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
