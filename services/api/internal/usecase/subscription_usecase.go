package usecase

import (
	"context"
	"time"

	"opftube/pkg/logger"
	"opftube/pkg/queue"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/repo/persistent"
)

type SubscriptionUseCase interface {
	// Toggle subscribes the actor to the channel or cancels an existing
	// subscription. It reports whether the actor is now subscribed.
	Toggle(ctx context.Context, actor entity.Actor, channelID string) (bool, error)
	Check(ctx context.Context, actor entity.Actor, userID, channelID string) (bool, error)
	List(ctx context.Context, actor entity.Actor, userID string) ([]*entity.Subscription, error)
}

type subscriptionUseCase struct {
	subscriptionRepo persistent.SubscriptionRepository
	channelRepo      persistent.ChannelRepository
	events           EventPublisher
	logger           *logger.Logger
}

func NewSubscriptionUseCase(
	subscriptionRepo persistent.SubscriptionRepository,
	channelRepo persistent.ChannelRepository,
	events EventPublisher,
	logger *logger.Logger,
) SubscriptionUseCase {
	return &subscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		channelRepo:      channelRepo,
		events:           events,
		logger:           logger,
	}
}

func (uc *subscriptionUseCase) Toggle(ctx context.Context, actor entity.Actor, channelID string) (bool, error) {
	if channelID == "" {
		return false, invalid("Channel ID is required")
	}

	channel, err := uc.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return false, lookup(err, "Channel")
	}

	subscribed, err := uc.subscriptionRepo.Toggle(ctx, actor.UserID, channel.ID)
	if err != nil {
		return false, err
	}

	if subscribed && channel.OwnerID != actor.UserID {
		publishAsync(uc.events, uc.logger, queue.Event{
			Type:        queue.EventChannelSubscribed,
			ActorID:     actor.UserID,
			RecipientID: channel.OwnerID,
			ChannelID:   channel.ID,
			Title:       channel.Name,
			Priority:    3,
			CreatedAt:   time.Now(),
		})
	}
	return subscribed, nil
}

func (uc *subscriptionUseCase) Check(ctx context.Context, actor entity.Actor, userID, channelID string) (bool, error) {
	if !actor.CanManage(userID) {
		return false, forbidden("Not authorized")
	}
	return uc.subscriptionRepo.Exists(ctx, userID, channelID)
}

func (uc *subscriptionUseCase) List(ctx context.Context, actor entity.Actor, userID string) ([]*entity.Subscription, error) {
	if !actor.CanManage(userID) {
		return nil, forbidden("Not authorized")
	}
	return uc.subscriptionRepo.ListBySubscriber(ctx, userID)
}
