package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// NotificationLimit is how many notifications are kept per user.
const NotificationLimit = 50

func NotificationKey(userID string) string {
	return "notifications:" + userID
}

// PushCapped prepends value to the list at key and trims the list to limit.
func PushCapped(ctx context.Context, client *redis.Client, key string, value interface{}, limit int64) error {
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, raw)
		pipe.LTrim(ctx, key, 0, limit-1)
		return nil
	})
	return err
}

// Range returns up to limit raw entries from the head of the list at key.
func Range(ctx context.Context, client *redis.Client, key string, limit int64) ([]string, error) {
	if client == nil {
		return []string{}, nil
	}
	return client.LRange(ctx, key, 0, limit-1).Result()
}

// NotificationStreamKey is the pub/sub channel carrying live notifications for a user.
func NotificationStreamKey(userID string) string {
	return "notifications:stream:" + userID
}

// PublishJSON sends value on a pub/sub channel.
func PublishJSON(ctx context.Context, client *redis.Client, channel string, value interface{}) error {
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Publish(ctx, channel, raw).Err()
}
