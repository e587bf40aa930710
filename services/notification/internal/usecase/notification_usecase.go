package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"opftube/pkg/cache"
	"opftube/pkg/logger"
	"opftube/pkg/queue"
	"opftube/services/notification/internal/entity"
	"opftube/services/notification/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

// Inbox stores a notification for one user.
type Inbox interface {
	Deliver(ctx context.Context, userID string, notification entity.Notification) error
}

type redisInbox struct {
	client *redis.Client
}

// NewRedisInbox keeps the newest cache.NotificationLimit entries per user and
// announces each one on the user's live stream.
func NewRedisInbox(client *redis.Client) Inbox {
	return &redisInbox{client: client}
}

func (i *redisInbox) Deliver(ctx context.Context, userID string, notification entity.Notification) error {
	if err := cache.PushCapped(ctx, i.client, cache.NotificationKey(userID), notification, cache.NotificationLimit); err != nil {
		return fmt.Errorf("failed to push notification for %s: %w", userID, err)
	}
	// Live push is best effort; the list is authoritative.
	_ = cache.PublishJSON(ctx, i.client, cache.NotificationStreamKey(userID), notification)
	return nil
}

// Stream yields raw live notifications for one user until ctx ends.
type Stream interface {
	Subscribe(ctx context.Context, userID string) (<-chan string, func() error)
}

type redisStream struct {
	client *redis.Client
}

func NewRedisStream(client *redis.Client) Stream {
	return &redisStream{client: client}
}

func (s *redisStream) Subscribe(ctx context.Context, userID string) (<-chan string, func() error) {
	pubsub := s.client.Subscribe(ctx, cache.NotificationStreamKey(userID))
	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, pubsub.Close
}

// QueueInspector reports the backlog of the activity queue.
type QueueInspector interface {
	GetQueueLength() (int, error)
}

type NotificationUseCase interface {
	HandleEvent(ctx context.Context, event queue.Event) error
	QueueLength() (int, error)
}

type notificationUseCase struct {
	recipients persistent.RecipientRepository
	inbox      Inbox
	queue      QueueInspector
	logger     *logger.Logger
}

func NewNotificationUseCase(recipients persistent.RecipientRepository, inbox Inbox, queue QueueInspector, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		recipients: recipients,
		inbox:      inbox,
		queue:      queue,
		logger:     logger,
	}
}

func (uc *notificationUseCase) QueueLength() (int, error) {
	if uc.queue == nil {
		return 0, fmt.Errorf("queue client is not available")
	}
	return uc.queue.GetQueueLength()
}

// HandleEvent fans one activity event out to its recipients. Unknown event
// types are logged and acknowledged.
func (uc *notificationUseCase) HandleEvent(ctx context.Context, event queue.Event) error {
	switch event.Type {
	case queue.EventVideoPublished:
		return uc.handleVideoPublished(ctx, event)
	case queue.EventVideoLiked:
		return uc.handleVideoLiked(ctx, event)
	case queue.EventChannelSubscribed:
		return uc.handleChannelSubscribed(ctx, event)
	default:
		uc.logger.Warn("[NOTIFICATION HANDLER] Unknown event type: %s", event.Type)
		return nil
	}
}

func (uc *notificationUseCase) handleVideoPublished(ctx context.Context, event queue.Event) error {
	if event.ChannelID == "" || event.VideoID == "" {
		uc.logger.Error("[NOTIFICATION HANDLER] Invalid %s event: %+v", event.Type, event)
		return nil
	}

	subscriberIDs, err := uc.recipients.ChannelSubscribers(ctx, event.ChannelID)
	if err != nil {
		return err
	}
	if len(subscriberIDs) == 0 {
		uc.logger.Info("[NOTIFICATION HANDLER] Channel %s has no subscribers, skipping", event.ChannelID)
		return nil
	}

	channelName := event.ActorName
	if channelName == "" {
		channelName = "A channel you follow"
	}

	notification := uc.notification(event, fmt.Sprintf("%s uploaded: %s", channelName, event.Title))

	sent := 0
	for _, userID := range subscriberIDs {
		if userID == event.ActorID {
			continue
		}
		if err := uc.inbox.Deliver(ctx, userID, notification); err != nil {
			uc.logger.Error("[NOTIFICATION HANDLER] %v", err)
			continue
		}
		sent++
	}

	uc.logger.Info("[NOTIFICATION HANDLER] Video %s announced to %d/%d subscribers", event.VideoID, sent, len(subscriberIDs))
	return nil
}

func (uc *notificationUseCase) handleVideoLiked(ctx context.Context, event queue.Event) error {
	if event.RecipientID == "" || event.RecipientID == event.ActorID {
		return nil
	}

	message := fmt.Sprintf("%s liked your video: %s", uc.actorName(ctx, event), event.Title)
	return uc.inbox.Deliver(ctx, event.RecipientID, uc.notification(event, message))
}

func (uc *notificationUseCase) handleChannelSubscribed(ctx context.Context, event queue.Event) error {
	ownerID := event.RecipientID
	if ownerID == "" && event.ChannelID != "" {
		var err error
		ownerID, err = uc.recipients.ChannelOwner(ctx, event.ChannelID)
		if errors.Is(err, persistent.ErrNotFound) {
			uc.logger.Warn("[NOTIFICATION HANDLER] Channel %s is gone, dropping event", event.ChannelID)
			return nil
		}
		if err != nil {
			return err
		}
	}
	if ownerID == "" || ownerID == event.ActorID {
		return nil
	}

	message := fmt.Sprintf("%s subscribed to your channel", uc.actorName(ctx, event))
	return uc.inbox.Deliver(ctx, ownerID, uc.notification(event, message))
}

func (uc *notificationUseCase) actorName(ctx context.Context, event queue.Event) string {
	if event.ActorName != "" {
		return event.ActorName
	}
	name, err := uc.recipients.UserName(ctx, event.ActorID)
	if err != nil || name == "" {
		return "Someone"
	}
	return name
}

func (uc *notificationUseCase) notification(event queue.Event, message string) entity.Notification {
	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return entity.Notification{
		Type:      event.Type,
		Message:   message,
		ActorID:   event.ActorID,
		ChannelID: event.ChannelID,
		VideoID:   event.VideoID,
		CreatedAt: createdAt.UTC(),
	}
}
