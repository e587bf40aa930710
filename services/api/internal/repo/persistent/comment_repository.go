package persistent

import (
	"context"
	"fmt"
	"time"

	"opftube/pkg/models"
	"opftube/services/api/internal/entity"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	ListByVideo(ctx context.Context, videoID string) ([]*entity.Comment, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Comment, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, commentID, userID string) (*entity.LikeResult, error)
	AddReply(ctx context.Context, commentID string, reply *entity.Reply) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func preloadReplies(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	commentModel := &models.Comment{
		Text:      comment.Text,
		VideoID:   comment.VideoID,
		UserID:    comment.UserID,
		Username:  comment.Username,
		AvatarURL: comment.AvatarURL,
	}
	if err := r.db.WithContext(ctx).Create(commentModel).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	*comment = *ToCommentEntity(commentModel)
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	var commentModel models.Comment
	if err := r.db.WithContext(ctx).Preload("Replies", preloadReplies).
		Where("id = ?", id).First(&commentModel).Error; err != nil {
		return nil, translate(err)
	}

	comment := ToCommentEntity(&commentModel)
	if err := r.attachLikes(ctx, []*entity.Comment{comment}); err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *commentRepository) ListByVideo(ctx context.Context, videoID string) ([]*entity.Comment, error) {
	var commentModels []models.Comment
	if err := r.db.WithContext(ctx).Preload("Replies", preloadReplies).
		Where("video_id = ?", videoID).Order("created_at DESC").Find(&commentModels).Error; err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, 0, len(commentModels))
	for i := range commentModels {
		comments = append(comments, ToCommentEntity(&commentModels[i]))
	}
	if err := r.attachLikes(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Comment, error) {
	var rows []struct {
		ID         string
		Text       string
		VideoID    string
		UserID     string
		Username   string
		AvatarURL  string
		Likes      int64
		CreatedAt  time.Time
		VideoTitle string
	}
	err := r.db.WithContext(ctx).Table("comments").
		Select("comments.id, comments.text, comments.video_id, comments.user_id, comments.username, " +
			"comments.avatar_url, comments.likes, comments.created_at, COALESCE(videos.title, '') AS video_title").
		Joins("LEFT JOIN videos ON videos.id = comments.video_id").
		Order("comments.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, &entity.Comment{
			ID:         row.ID,
			Text:       row.Text,
			VideoID:    row.VideoID,
			VideoTitle: row.VideoTitle,
			UserID:     row.UserID,
			Username:   row.Username,
			AvatarURL:  row.AvatarURL,
			Likes:      row.Likes,
			LikedBy:    []string{},
			Replies:    []*entity.Reply{},
			CreatedAt:  row.CreatedAt,
		})
	}
	return comments, nil
}

func (r *commentRepository) attachLikes(ctx context.Context, comments []*entity.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	byID := make(map[string]*entity.Comment, len(comments))
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	var likes []models.CommentLike
	if err := r.db.WithContext(ctx).Where("comment_id IN ?", ids).Order("created_at ASC").Find(&likes).Error; err != nil {
		return err
	}
	for _, like := range likes {
		c := byID[like.CommentID]
		c.LikedBy = append(c.LikedBy, like.UserID)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentReply{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *commentRepository) ToggleLike(ctx context.Context, commentID, userID string) (*entity.LikeResult, error) {
	var result *entity.LikeResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = toggleLike(tx, &models.Comment{}, commentID, &models.CommentLike{CommentID: commentID, UserID: userID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *commentRepository) AddReply(ctx context.Context, commentID string, reply *entity.Reply) error {
	replyModel := &models.CommentReply{
		CommentID: commentID,
		UserID:    reply.UserID,
		Username:  reply.Username,
		AvatarURL: reply.AvatarURL,
		Text:      reply.Text,
	}
	if err := r.db.WithContext(ctx).Create(replyModel).Error; err != nil {
		return fmt.Errorf("failed to add reply: %w", err)
	}
	reply.ID = replyModel.ID
	reply.CreatedAt = replyModel.CreatedAt
	return nil
}
