package usecase

import (
	"context"
	"strings"

	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/repo/persistent"
)

type ChannelUseCase interface {
	List(ctx context.Context) ([]*entity.Channel, error)
	Get(ctx context.Context, id string) (*entity.ChannelPage, error)
	Create(ctx context.Context, actor entity.Actor, draft entity.ChannelDraft) (*entity.Channel, error)
	Update(ctx context.Context, actor entity.Actor, id string, update entity.ChannelUpdate) (*entity.Channel, error)
	Delete(ctx context.Context, actor entity.Actor, id string) error
}

type channelUseCase struct {
	channelRepo persistent.ChannelRepository
	videoRepo   persistent.VideoRepository
	userRepo    persistent.UserRepository
	logger      *logger.Logger
}

func NewChannelUseCase(
	channelRepo persistent.ChannelRepository,
	videoRepo persistent.VideoRepository,
	userRepo persistent.UserRepository,
	logger *logger.Logger,
) ChannelUseCase {
	return &channelUseCase{
		channelRepo: channelRepo,
		videoRepo:   videoRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (uc *channelUseCase) List(ctx context.Context) ([]*entity.Channel, error) {
	return uc.channelRepo.List(ctx, 0)
}

func (uc *channelUseCase) Get(ctx context.Context, id string) (*entity.ChannelPage, error) {
	channel, err := uc.channelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Channel")
	}

	videos, err := uc.videoRepo.ListByChannel(ctx, id, true)
	if err != nil {
		return nil, err
	}
	return &entity.ChannelPage{Channel: channel, Videos: videos}, nil
}

func (uc *channelUseCase) Create(ctx context.Context, actor entity.Actor, draft entity.ChannelDraft) (*entity.Channel, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Handle = strings.TrimSpace(draft.Handle)
	if draft.Name == "" || draft.Handle == "" {
		return nil, invalid("Name and handle are required")
	}

	user, err := uc.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, lookup(err, "User")
	}
	if user.ChannelID != nil && *user.ChannelID != "" {
		return nil, invalid("User already has a channel")
	}

	taken, err := uc.channelRepo.HandleTaken(ctx, draft.Handle, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, invalid("Handle already taken")
	}

	avatarURL := draft.AvatarURL
	if avatarURL == "" {
		avatarURL = user.AvatarURL
	}

	channel := &entity.Channel{
		Name:        draft.Name,
		Handle:      draft.Handle,
		Description: draft.Description,
		AvatarURL:   avatarURL,
		BannerURL:   draft.BannerURL,
		OwnerID:     user.ID,
	}
	if err := uc.channelRepo.Create(ctx, channel); err != nil {
		return nil, err
	}

	uc.logger.Info("Channel %s created by %s", channel.ID, user.ID)
	return channel, nil
}

func (uc *channelUseCase) Update(ctx context.Context, actor entity.Actor, id string, update entity.ChannelUpdate) (*entity.Channel, error) {
	channel, err := uc.channelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Channel")
	}
	if !actor.CanManage(channel.OwnerID) {
		return nil, forbidden("Not authorized to update this channel")
	}
	if update.IsVerified != nil && !actor.IsAdmin() {
		return nil, forbidden("Only admins can verify channels")
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, invalid("Name cannot be empty")
		}
		channel.Name = name
	}
	if update.Handle != nil {
		handle := strings.TrimSpace(*update.Handle)
		if handle == "" {
			return nil, invalid("Handle cannot be empty")
		}
		if handle != channel.Handle {
			taken, err := uc.channelRepo.HandleTaken(ctx, handle, channel.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, invalid("Handle already taken")
			}
		}
		channel.Handle = handle
	}
	if update.Description != nil {
		channel.Description = *update.Description
	}
	if update.BannerURL != nil {
		channel.BannerURL = *update.BannerURL
	}
	if update.IsVerified != nil {
		channel.IsVerified = *update.IsVerified
	}

	syncAvatar := false
	if update.AvatarURL != nil && *update.AvatarURL != channel.AvatarURL {
		channel.AvatarURL = *update.AvatarURL
		syncAvatar = true
	}

	if err := uc.channelRepo.Update(ctx, channel, syncAvatar); err != nil {
		return nil, lookup(err, "Channel")
	}
	return uc.channelRepo.GetByID(ctx, id)
}

func (uc *channelUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	channel, err := uc.channelRepo.GetByID(ctx, id)
	if err != nil {
		return lookup(err, "Channel")
	}
	if !actor.CanManage(channel.OwnerID) {
		return forbidden("Not authorized to delete this channel")
	}

	videos, err := uc.channelRepo.Delete(ctx, id)
	if err != nil {
		return lookup(err, "Channel")
	}

	uc.logger.Info("Channel %s deleted with %d videos", id, videos)
	return nil
}
