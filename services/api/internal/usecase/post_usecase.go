package usecase

import (
	"context"
	"strings"

	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/repo/persistent"
)

type PostUseCase interface {
	List(ctx context.Context, channelID string) ([]*entity.Post, error)
	Create(ctx context.Context, actor entity.Actor, channelID, content, imageURL string) (*entity.Post, error)
	Delete(ctx context.Context, actor entity.Actor, id string) error
	Like(ctx context.Context, actor entity.Actor, id string) (*entity.LikeResult, error)
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	channelRepo persistent.ChannelRepository
	logger      *logger.Logger
}

func NewPostUseCase(postRepo persistent.PostRepository, channelRepo persistent.ChannelRepository, logger *logger.Logger) PostUseCase {
	return &postUseCase{postRepo: postRepo, channelRepo: channelRepo, logger: logger}
}

func (uc *postUseCase) List(ctx context.Context, channelID string) ([]*entity.Post, error) {
	return uc.postRepo.List(ctx, channelID, 0)
}

func (uc *postUseCase) Create(ctx context.Context, actor entity.Actor, channelID, content, imageURL string) (*entity.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" || channelID == "" {
		return nil, invalid("Content and channel_id are required")
	}

	channel, err := uc.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, lookup(err, "Channel")
	}
	if !actor.CanManage(channel.OwnerID) {
		return nil, forbidden("Not authorized to post on this channel")
	}

	post := &entity.Post{
		Content:   content,
		ImageURL:  imageURL,
		ChannelID: channel.ID,
		CreatorID: actor.UserID,
	}
	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *postUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return lookup(err, "Post")
	}
	if !actor.CanManage(post.CreatorID) {
		return forbidden("Not authorized to delete this post")
	}
	return lookup(uc.postRepo.Delete(ctx, id), "Post")
}

func (uc *postUseCase) Like(ctx context.Context, actor entity.Actor, id string) (*entity.LikeResult, error) {
	result, err := uc.postRepo.ToggleLike(ctx, id, actor.UserID)
	if err != nil {
		return nil, lookup(err, "Post")
	}
	return result, nil
}
