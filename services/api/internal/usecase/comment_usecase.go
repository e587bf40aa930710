package usecase

import (
	"context"
	"strings"

	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/repo/persistent"
)

const recentCommentsLimit = 100

type CommentUseCase interface {
	ListRecent(ctx context.Context) ([]*entity.Comment, error)
	ListByVideo(ctx context.Context, videoID string) ([]*entity.Comment, error)
	Create(ctx context.Context, actor entity.Actor, videoID, text string) (*entity.Comment, error)
	Delete(ctx context.Context, actor entity.Actor, id string) error
	Like(ctx context.Context, actor entity.Actor, id string) (*entity.LikeResult, error)
	Reply(ctx context.Context, actor entity.Actor, id, text string) (*entity.Comment, error)
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	videoRepo   persistent.VideoRepository
	userRepo    persistent.UserRepository
	logger      *logger.Logger
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	videoRepo persistent.VideoRepository,
	userRepo persistent.UserRepository,
	logger *logger.Logger,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

func (uc *commentUseCase) ListRecent(ctx context.Context) ([]*entity.Comment, error) {
	return uc.commentRepo.ListRecent(ctx, recentCommentsLimit)
}

func (uc *commentUseCase) ListByVideo(ctx context.Context, videoID string) ([]*entity.Comment, error) {
	return uc.commentRepo.ListByVideo(ctx, videoID)
}

func (uc *commentUseCase) Create(ctx context.Context, actor entity.Actor, videoID, text string) (*entity.Comment, error) {
	text = strings.TrimSpace(text)
	if videoID == "" || text == "" {
		return nil, invalid("Video ID and text are required")
	}

	if _, err := uc.videoRepo.GetByID(ctx, videoID); err != nil {
		return nil, lookup(err, "Video")
	}

	user, err := uc.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, lookup(err, "User")
	}

	comment := &entity.Comment{
		Text:      text,
		VideoID:   videoID,
		UserID:    user.ID,
		Username:  user.Name,
		AvatarURL: user.AvatarURL,
	}
	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (uc *commentUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	comment, err := uc.commentRepo.GetByID(ctx, id)
	if err != nil {
		return lookup(err, "Comment")
	}
	if !actor.CanManage(comment.UserID) {
		return forbidden("Not authorized to delete this comment")
	}
	return lookup(uc.commentRepo.Delete(ctx, id), "Comment")
}

func (uc *commentUseCase) Like(ctx context.Context, actor entity.Actor, id string) (*entity.LikeResult, error) {
	result, err := uc.commentRepo.ToggleLike(ctx, id, actor.UserID)
	if err != nil {
		return nil, lookup(err, "Comment")
	}
	return result, nil
}

func (uc *commentUseCase) Reply(ctx context.Context, actor entity.Actor, id, text string) (*entity.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("Text is required")
	}

	if _, err := uc.commentRepo.GetByID(ctx, id); err != nil {
		return nil, lookup(err, "Comment")
	}

	user, err := uc.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, lookup(err, "User")
	}

	reply := &entity.Reply{
		UserID:    user.ID,
		Username:  user.Name,
		AvatarURL: user.AvatarURL,
		Text:      text,
	}
	if err := uc.commentRepo.AddReply(ctx, id, reply); err != nil {
		return nil, err
	}

	comment, err := uc.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Comment")
	}
	return comment, nil
}
