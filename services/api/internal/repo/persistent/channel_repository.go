package persistent

import (
	"context"
	"errors"
	"fmt"

	"opftube/pkg/models"
	"opftube/services/api/internal/entity"

	"gorm.io/gorm"
)

type ChannelRepository interface {
	// Create inserts the channel and links it to its owner.
	Create(ctx context.Context, channel *entity.Channel) error
	GetByID(ctx context.Context, id string) (*entity.Channel, error)
	HandleTaken(ctx context.Context, handle, exceptID string) (bool, error)
	List(ctx context.Context, limit int) ([]*entity.Channel, error)
	ListRecent(ctx context.Context) ([]*entity.Channel, error)
	// Update saves the channel. When syncOwnerAvatar is set the owner's
	// avatar is replaced with the channel's.
	Update(ctx context.Context, channel *entity.Channel, syncOwnerAvatar bool) error
	// Delete removes the channel with its videos, posts and subscriptions and
	// unlinks the owner. It returns the number of deleted videos.
	Delete(ctx context.Context, id string) (int64, error)
}

type channelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) Create(ctx context.Context, channel *entity.Channel) error {
	channelModel := ToChannelModel(channel)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(channelModel).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", channelModel.OwnerID).
			Update("channel_id", channelModel.ID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}

	*channel = *ToChannelEntity(channelModel)
	return nil
}

func (r *channelRepository) GetByID(ctx context.Context, id string) (*entity.Channel, error) {
	var channelModel models.Channel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&channelModel).Error; err != nil {
		return nil, translate(err)
	}
	return ToChannelEntity(&channelModel), nil
}

func (r *channelRepository) HandleTaken(ctx context.Context, handle, exceptID string) (bool, error) {
	var channelModel models.Channel
	query := r.db.WithContext(ctx).Select("id").Where("handle = ?", handle)
	if exceptID != "" {
		query = query.Where("id <> ?", exceptID)
	}
	err := query.First(&channelModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *channelRepository) List(ctx context.Context, limit int) ([]*entity.Channel, error) {
	var channelModels []models.Channel
	query := r.db.WithContext(ctx).Order("subscribers DESC").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&channelModels).Error; err != nil {
		return nil, err
	}
	return toChannelEntities(channelModels), nil
}

func (r *channelRepository) ListRecent(ctx context.Context) ([]*entity.Channel, error) {
	var channelModels []models.Channel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&channelModels).Error; err != nil {
		return nil, err
	}
	return toChannelEntities(channelModels), nil
}

func (r *channelRepository) Update(ctx context.Context, channel *entity.Channel, syncOwnerAvatar bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Channel{}).Where("id = ?", channel.ID).Updates(map[string]interface{}{
			"name":        channel.Name,
			"handle":      channel.Handle,
			"description": channel.Description,
			"avatar_url":  channel.AvatarURL,
			"banner_url":  channel.BannerURL,
			"is_verified": channel.IsVerified,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update channel: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if syncOwnerAvatar {
			if err := tx.Model(&models.User{}).
				Where("id = ?", channel.OwnerID).
				Update("avatar_url", channel.AvatarURL).Error; err != nil {
				return fmt.Errorf("failed to sync owner avatar: %w", err)
			}
		}
		return nil
	})
}

func (r *channelRepository) Delete(ctx context.Context, id string) (int64, error) {
	var deleted int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var videoIDs []string
		if err := tx.Model(&models.Video{}).Where("channel_id = ?", id).Pluck("id", &videoIDs).Error; err != nil {
			return err
		}
		if err := deleteVideoRows(tx, videoIDs); err != nil {
			return err
		}
		res := tx.Where("channel_id = ?", id).Delete(&models.Video{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		var postIDs []string
		if err := tx.Model(&models.Post{}).Where("channel_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostLike{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("channel_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}

		if err := tx.Where("channel_id = ?", id).Delete(&models.Subscription{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("channel_id = ?", id).Update("channel_id", nil).Error; err != nil {
			return err
		}

		res = tx.Where("id = ?", id).Delete(&models.Channel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// deleteVideoRows removes everything keyed by the given videos except the
// video rows themselves.
func deleteVideoRows(tx *gorm.DB, videoIDs []string) error {
	if len(videoIDs) == 0 {
		return nil
	}
	if err := tx.Exec("DELETE FROM video_categories WHERE video_id IN ?", videoIDs).Error; err != nil {
		return err
	}
	for _, m := range []interface{}{
		&models.VideoTag{},
		&models.VideoLike{},
		&models.VideoView{},
		&models.VideoReport{},
		&models.WatchHistory{},
		&models.WatchLater{},
		&models.PlaylistVideo{},
	} {
		if err := tx.Where("video_id IN ?", videoIDs).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}
