package persistent

import (
	"context"
	"errors"
	"fmt"

	"opftube/pkg/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// RecipientRepository answers who should hear about an event.
type RecipientRepository interface {
	UserName(ctx context.Context, userID string) (string, error)
	ChannelOwner(ctx context.Context, channelID string) (string, error)
	ChannelSubscribers(ctx context.Context, channelID string) ([]string, error)
}

type recipientRepository struct {
	db *gorm.DB
}

func NewRecipientRepository(db *gorm.DB) RecipientRepository {
	return &recipientRepository{db: db}
}

func (r *recipientRepository) UserName(ctx context.Context, userID string) (string, error) {
	var user models.User
	err := r.db.WithContext(ctx).Select("name").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	return user.Name, nil
}

func (r *recipientRepository) ChannelOwner(ctx context.Context, channelID string) (string, error) {
	var channel models.Channel
	err := r.db.WithContext(ctx).Select("owner_id").Where("id = ?", channelID).First(&channel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load channel %s: %w", channelID, err)
	}
	return channel.OwnerID, nil
}

func (r *recipientRepository) ChannelSubscribers(ctx context.Context, channelID string) ([]string, error) {
	var subscriberIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("channel_id = ?", channelID).
		Pluck("subscriber_id", &subscriberIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load subscribers of %s: %w", channelID, err)
	}
	return subscriberIDs, nil
}
