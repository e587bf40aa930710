package usecase

import (
	"context"
	"strings"
	"time"

	"opftube/pkg/cache"
	"opftube/pkg/logger"
	"opftube/pkg/queue"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const (
	trendingCacheKey = "videos:trending"
	trendingCacheTTL = 60 * time.Second
	shortMaxSeconds  = 60
)

type VideoUseCase interface {
	List(ctx context.Context, filter entity.VideoFilter) (*entity.VideoPage, error)
	Trending(ctx context.Context) ([]*entity.Video, error)
	Get(ctx context.Context, id string) (*entity.Video, error)
	Create(ctx context.Context, actor entity.Actor, draft entity.VideoDraft) (*entity.Video, error)
	Update(ctx context.Context, actor entity.Actor, id string, update entity.VideoUpdate) (*entity.Video, error)
	Delete(ctx context.Context, actor entity.Actor, id string) error

	Like(ctx context.Context, actor entity.Actor, id string) (*entity.LikeResult, error)
	Dislike(ctx context.Context, id string) (int64, error)
	// View counts a view and, for a signed-in actor, records watch history.
	View(ctx context.Context, actor entity.Actor, id string) (int64, error)
	ToggleSave(ctx context.Context, actor entity.Actor, id string) (bool, error)
	Saved(ctx context.Context, actor entity.Actor, userID string) ([]*entity.Video, error)
	Report(ctx context.Context, actor entity.Actor, id string) error
}

type videoUseCase struct {
	videoRepo   persistent.VideoRepository
	channelRepo persistent.ChannelRepository
	historyRepo persistent.HistoryRepository
	redisClient *redis.Client
	events      EventPublisher
	logger      *logger.Logger
}

func NewVideoUseCase(
	videoRepo persistent.VideoRepository,
	channelRepo persistent.ChannelRepository,
	historyRepo persistent.HistoryRepository,
	redisClient *redis.Client,
	events EventPublisher,
	logger *logger.Logger,
) VideoUseCase {
	return &videoUseCase{
		videoRepo:   videoRepo,
		channelRepo: channelRepo,
		historyRepo: historyRepo,
		redisClient: redisClient,
		events:      events,
		logger:      logger,
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPerPage
	}
	if limit > MaxPerPage {
		limit = MaxPerPage
	}
	return page, limit
}

func (uc *videoUseCase) List(ctx context.Context, filter entity.VideoFilter) (*entity.VideoPage, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)

	videos, total, err := uc.videoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &entity.VideoPage{
		Videos:     videos,
		Total:      total,
		Page:       filter.Page,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}, nil
}

func (uc *videoUseCase) Trending(ctx context.Context) ([]*entity.Video, error) {
	var cached []*entity.Video
	if cache.GetJSON(ctx, uc.redisClient, trendingCacheKey, &cached) {
		return cached, nil
	}

	videos, err := uc.videoRepo.Trending(ctx, TrendingLimit)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, uc.redisClient, trendingCacheKey, videos, trendingCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache trending videos: %v", err)
	}
	return videos, nil
}

func (uc *videoUseCase) invalidateTrending(ctx context.Context) {
	if err := cache.Delete(ctx, uc.redisClient, trendingCacheKey); err != nil {
		uc.logger.Warn("Failed to drop trending cache: %v", err)
	}
}

func (uc *videoUseCase) Get(ctx context.Context, id string) (*entity.Video, error) {
	video, err := uc.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Video")
	}
	return video, nil
}

// classify applies the short and live rules to a new video.
func classify(videoType, duration string) (string, error) {
	if videoType == "" {
		videoType = entity.VideoTypeVideo
	}
	if !validVideoType(videoType) {
		return "", invalid("Invalid video type")
	}
	if videoType != entity.VideoTypeLive && duration != "" {
		if seconds := ParseDuration(duration); seconds > 0 && seconds < shortMaxSeconds {
			videoType = entity.VideoTypeShort
		}
	}
	return videoType, nil
}

func validVideoType(videoType string) bool {
	switch videoType {
	case entity.VideoTypeVideo, entity.VideoTypeLive, entity.VideoTypeShort:
		return true
	}
	return false
}

func (uc *videoUseCase) Create(ctx context.Context, actor entity.Actor, draft entity.VideoDraft) (*entity.Video, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" || draft.VideoURL == "" || draft.ThumbnailURL == "" || draft.ChannelID == "" {
		return nil, invalid("Title, video_url, thumbnail_url and channel_id are required")
	}

	videoType, err := classify(draft.Type, draft.Duration)
	if err != nil {
		return nil, err
	}

	channel, err := uc.channelRepo.GetByID(ctx, draft.ChannelID)
	if err != nil {
		return nil, lookup(err, "Channel")
	}
	if !actor.CanManage(channel.OwnerID) {
		return nil, forbidden("Not authorized to upload to this channel")
	}

	published := true
	if draft.IsPublished != nil {
		published = *draft.IsPublished
	}

	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}

	video := &entity.Video{
		Title:        draft.Title,
		Description:  draft.Description,
		ThumbnailURL: draft.ThumbnailURL,
		VideoURL:     draft.VideoURL,
		Duration:     draft.Duration,
		ChannelID:    channel.ID,
		CreatorID:    actor.UserID,
		Tags:         tags,
		IsPublished:  published,
		Type:         videoType,
		IsLive:       videoType == entity.VideoTypeLive,
	}
	if err := uc.videoRepo.Create(ctx, video, draft.CategoryIDs); err != nil {
		return nil, err
	}

	uc.logger.Info("Video %s created on channel %s", video.ID, channel.ID)

	if published {
		uc.invalidateTrending(ctx)
		publishAsync(uc.events, uc.logger, queue.Event{
			Type:      queue.EventVideoPublished,
			ActorID:   actor.UserID,
			ActorName: channel.Name,
			ChannelID: channel.ID,
			VideoID:   video.ID,
			Title:     video.Title,
			Priority:  5,
			CreatedAt: time.Now(),
		})
	}

	return uc.Get(ctx, video.ID)
}

func (uc *videoUseCase) Update(ctx context.Context, actor entity.Actor, id string, update entity.VideoUpdate) (*entity.Video, error) {
	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if trimmed == "" {
			return nil, invalid("Title cannot be empty")
		}
		update.Title = &trimmed
	}
	if update.Type != nil && !validVideoType(*update.Type) {
		return nil, invalid("Invalid video type")
	}

	video, err := uc.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Video")
	}
	if !actor.CanManage(video.CreatorID) {
		return nil, forbidden("Not authorized to update this video")
	}

	if err := uc.videoRepo.Update(ctx, id, update); err != nil {
		return nil, lookup(err, "Video")
	}
	uc.invalidateTrending(ctx)

	return uc.Get(ctx, id)
}

func (uc *videoUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	video, err := uc.videoRepo.GetByID(ctx, id)
	if err != nil {
		return lookup(err, "Video")
	}
	if !actor.CanManage(video.CreatorID) {
		return forbidden("Not authorized to delete this video")
	}

	if err := uc.videoRepo.Delete(ctx, id); err != nil {
		return lookup(err, "Video")
	}
	uc.invalidateTrending(ctx)

	uc.logger.Info("Video %s deleted by %s", id, actor.UserID)
	return nil
}

func (uc *videoUseCase) Like(ctx context.Context, actor entity.Actor, id string) (*entity.LikeResult, error) {
	video, err := uc.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Video")
	}

	result, err := uc.videoRepo.ToggleLike(ctx, id, actor.UserID)
	if err != nil {
		return nil, lookup(err, "Video")
	}

	if result.Liked && video.CreatorID != actor.UserID {
		publishAsync(uc.events, uc.logger, queue.Event{
			Type:        queue.EventVideoLiked,
			ActorID:     actor.UserID,
			RecipientID: video.CreatorID,
			ChannelID:   video.ChannelID,
			VideoID:     video.ID,
			Title:       video.Title,
			Priority:    1,
			CreatedAt:   time.Now(),
		})
	}
	return result, nil
}

func (uc *videoUseCase) Dislike(ctx context.Context, id string) (int64, error) {
	dislikes, err := uc.videoRepo.IncrementDislikes(ctx, id)
	if err != nil {
		return 0, lookup(err, "Video")
	}
	return dislikes, nil
}

func (uc *videoUseCase) View(ctx context.Context, actor entity.Actor, id string) (int64, error) {
	views, err := uc.videoRepo.RecordView(ctx, id, actor.UserID)
	if err != nil {
		return 0, lookup(err, "Video")
	}

	if !actor.Anonymous() {
		if err := uc.historyRepo.Record(ctx, actor.UserID, id, time.Now(), HistoryLimit); err != nil {
			uc.logger.Error("Failed to record history for user %s: %v", actor.UserID, err)
		}
	}
	return views, nil
}

func (uc *videoUseCase) ToggleSave(ctx context.Context, actor entity.Actor, id string) (bool, error) {
	if _, err := uc.videoRepo.GetByID(ctx, id); err != nil {
		return false, lookup(err, "Video")
	}
	return uc.historyRepo.ToggleWatchLater(ctx, actor.UserID, id)
}

func (uc *videoUseCase) Saved(ctx context.Context, actor entity.Actor, userID string) ([]*entity.Video, error) {
	if !actor.CanManage(userID) {
		return nil, forbidden("Not authorized")
	}

	rows, err := uc.historyRepo.ListWatchLater(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.VideoID)
	}
	byID, err := uc.videoRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	videos := make([]*entity.Video, 0, len(rows))
	for _, row := range rows {
		if video, ok := byID[row.VideoID]; ok {
			videos = append(videos, video)
		}
	}
	return videos, nil
}

func (uc *videoUseCase) Report(ctx context.Context, actor entity.Actor, id string) error {
	if _, err := uc.videoRepo.GetByID(ctx, id); err != nil {
		return lookup(err, "Video")
	}
	if err := uc.videoRepo.Report(ctx, id, actor.UserID); err != nil {
		return err
	}
	uc.logger.Warn("Video %s reported by %s", id, actor.UserID)
	return nil
}
