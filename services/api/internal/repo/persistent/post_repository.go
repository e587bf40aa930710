package persistent

import (
	"context"
	"fmt"

	"opftube/pkg/models"
	"opftube/services/api/internal/entity"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	List(ctx context.Context, channelID string, limit int) ([]*entity.Post, error)
	Delete(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, postID, userID string) (*entity.LikeResult, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postModel := &models.Post{
		Content:   post.Content,
		ImageURL:  post.ImageURL,
		ChannelID: post.ChannelID,
		CreatorID: post.CreatorID,
	}
	if err := r.db.WithContext(ctx).Create(postModel).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	created, err := r.GetByID(ctx, postModel.ID)
	if err != nil {
		return err
	}
	*post = *created
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	var postModel models.Post
	if err := r.db.WithContext(ctx).Preload("Channel").Where("id = ?", id).First(&postModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToPostEntity(&postModel), nil
}

// List returns posts newest first. Empty channelID lists every channel and
// a non-positive limit means no limit.
func (r *postRepository) List(ctx context.Context, channelID string, limit int) ([]*entity.Post, error) {
	query := r.db.WithContext(ctx).Preload("Channel").Order("created_at DESC")
	if channelID != "" {
		query = query.Where("channel_id = ?", channelID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var postModels []models.Post
	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}
	return toPostEntities(postModels), nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *postRepository) ToggleLike(ctx context.Context, postID, userID string) (*entity.LikeResult, error) {
	var result *entity.LikeResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = toggleLike(tx, &models.Post{}, postID, &models.PostLike{PostID: postID, UserID: userID})
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
