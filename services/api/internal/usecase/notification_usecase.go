package usecase

import (
	"context"
	"encoding/json"

	"opftube/pkg/cache"
	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"

	"github.com/redis/go-redis/v9"
)

type NotificationUseCase interface {
	List(ctx context.Context, actor entity.Actor) ([]*entity.Notification, error)
}

type notificationUseCase struct {
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewNotificationUseCase(redisClient *redis.Client, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{redisClient: redisClient, logger: logger}
}

func (uc *notificationUseCase) List(ctx context.Context, actor entity.Actor) ([]*entity.Notification, error) {
	entries, err := cache.Range(ctx, uc.redisClient, cache.NotificationKey(actor.UserID), cache.NotificationLimit)
	if err != nil {
		uc.logger.Warn("Failed to read notifications for %s: %v", actor.UserID, err)
		return []*entity.Notification{}, nil
	}

	notifications := make([]*entity.Notification, 0, len(entries))
	for _, entry := range entries {
		var n entity.Notification
		if err := json.Unmarshal([]byte(entry), &n); err != nil {
			continue
		}
		notifications = append(notifications, &n)
	}
	return notifications, nil
}
