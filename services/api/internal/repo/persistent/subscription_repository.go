package persistent

import (
	"context"
	"errors"

	"opftube/pkg/models"
	"opftube/services/api/internal/entity"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	// Toggle subscribes or unsubscribes and moves the channel's subscriber
	// counter in the same transaction. It reports the resulting state.
	Toggle(ctx context.Context, subscriberID, channelID string) (bool, error)
	Exists(ctx context.Context, subscriberID, channelID string) (bool, error)
	ListBySubscriber(ctx context.Context, subscriberID string) ([]*entity.Subscription, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	subscribed := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).Delete(&models.Subscription{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			return tx.Model(&models.Channel{}).Where("id = ?", channelID).
				UpdateColumn("subscribers", gorm.Expr("CASE WHEN subscribers > 0 THEN subscribers - 1 ELSE 0 END")).Error
		}

		if err := tx.Create(&models.Subscription{SubscriberID: subscriberID, ChannelID: channelID}).Error; err != nil {
			return err
		}
		subscribed = true
		return tx.Model(&models.Channel{}).Where("id = ?", channelID).
			UpdateColumn("subscribers", gorm.Expr("subscribers + ?", 1)).Error
	})
	return subscribed, err
}

func (r *subscriptionRepository) Exists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).Select("id").
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *subscriptionRepository) ListBySubscriber(ctx context.Context, subscriberID string) ([]*entity.Subscription, error) {
	var subModels []models.Subscription
	if err := r.db.WithContext(ctx).Preload("Channel").
		Where("subscriber_id = ?", subscriberID).
		Order("created_at DESC").
		Find(&subModels).Error; err != nil {
		return nil, err
	}

	subs := make([]*entity.Subscription, 0, len(subModels))
	for i := range subModels {
		subs = append(subs, ToSubscriptionEntity(&subModels[i]))
	}
	return subs, nil
}
