package usecase

import (
	"context"

	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/repo/persistent"
)

const dashboardListSize = 5

// AdminUseCase backs the admin dashboard. Callers are admins; the router
// enforces that.
type AdminUseCase interface {
	Stats(ctx context.Context) (*entity.DashboardStats, error)
	Videos(ctx context.Context) ([]*entity.Video, error)
	Channels(ctx context.Context) ([]*entity.Channel, error)
	Users(ctx context.Context) ([]*entity.User, error)
	Reports(ctx context.Context) ([]*entity.Video, error)
}

type adminUseCase struct {
	statsRepo   persistent.StatsRepository
	videoRepo   persistent.VideoRepository
	channelRepo persistent.ChannelRepository
	commentRepo persistent.CommentRepository
	postRepo    persistent.PostRepository
	userRepo    persistent.UserRepository
}

func NewAdminUseCase(
	statsRepo persistent.StatsRepository,
	videoRepo persistent.VideoRepository,
	channelRepo persistent.ChannelRepository,
	commentRepo persistent.CommentRepository,
	postRepo persistent.PostRepository,
	userRepo persistent.UserRepository,
) AdminUseCase {
	return &adminUseCase{
		statsRepo:   statsRepo,
		videoRepo:   videoRepo,
		channelRepo: channelRepo,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

func (uc *adminUseCase) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	stats, err := uc.statsRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	if stats.RecentVideos, err = uc.videoRepo.ListRecent(ctx, dashboardListSize); err != nil {
		return nil, err
	}
	if stats.RecentComments, err = uc.commentRepo.ListRecent(ctx, dashboardListSize); err != nil {
		return nil, err
	}
	if stats.RecentPosts, err = uc.postRepo.List(ctx, "", dashboardListSize); err != nil {
		return nil, err
	}
	if stats.TopChannels, err = uc.channelRepo.List(ctx, dashboardListSize); err != nil {
		return nil, err
	}
	return stats, nil
}

func (uc *adminUseCase) Videos(ctx context.Context) ([]*entity.Video, error) {
	return uc.videoRepo.ListRecent(ctx, 0)
}

func (uc *adminUseCase) Channels(ctx context.Context) ([]*entity.Channel, error) {
	return uc.channelRepo.ListRecent(ctx)
}

func (uc *adminUseCase) Users(ctx context.Context) ([]*entity.User, error) {
	users, err := uc.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		user.Password = ""
	}
	return users, nil
}

func (uc *adminUseCase) Reports(ctx context.Context) ([]*entity.Video, error) {
	return uc.videoRepo.ListReported(ctx)
}
