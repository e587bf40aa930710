package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"opftube/pkg/database"
	"opftube/pkg/logger"
	"opftube/pkg/models"
	"opftube/pkg/queue"
	"opftube/services/notification/internal/entity"
	"opftube/services/notification/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryInbox struct {
	mu    sync.Mutex
	items map[string][]entity.Notification
}

func newMemoryInbox() *memoryInbox {
	return &memoryInbox{items: map[string][]entity.Notification{}}
}

func (i *memoryInbox) Deliver(ctx context.Context, userID string, n entity.Notification) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.items[userID] = append(i.items[userID], n)
	return nil
}

func (i *memoryInbox) count(userID string) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.items[userID])
}

type fixedQueue struct {
	length int
	err    error
}

func (q fixedQueue) GetQueueLength() (int, error) {
	return q.length, q.err
}

type fixture struct {
	db    *gorm.DB
	inbox *memoryInbox
	uc    NotificationUseCase

	owner   *models.User
	fan     *models.User
	other   *models.User
	channel *models.Channel
}

func setup(t *testing.T) *fixture {
	t.Helper()

	log := logger.New()
	db, err := database.NewSQLiteDB("file::memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	f := &fixture{db: db, inbox: newMemoryInbox()}
	f.uc = NewNotificationUseCase(persistent.NewRecipientRepository(db), f.inbox, fixedQueue{length: 3}, log)

	f.owner = &models.User{Name: "Owner", Email: "owner@example.com", Password: "x", Handle: "@owner"}
	f.fan = &models.User{Name: "Fan", Email: "fan@example.com", Password: "x", Handle: "@fan"}
	f.other = &models.User{Name: "Other", Email: "other@example.com", Password: "x", Handle: "@other"}
	for _, u := range []*models.User{f.owner, f.fan, f.other} {
		require.NoError(t, db.Create(u).Error)
	}

	f.channel = &models.Channel{Name: "Owner TV", Handle: "@ownertv", OwnerID: f.owner.ID}
	require.NoError(t, db.Create(f.channel).Error)

	for _, u := range []*models.User{f.fan, f.other} {
		require.NoError(t, db.Create(&models.Subscription{SubscriberID: u.ID, ChannelID: f.channel.ID}).Error)
	}
	return f
}

func TestHandleEvent_VideoPublishedReachesSubscribers(t *testing.T) {
	f := setup(t)

	err := f.uc.HandleEvent(context.Background(), queue.Event{
		Type:      queue.EventVideoPublished,
		ActorID:   f.owner.ID,
		ActorName: f.channel.Name,
		ChannelID: f.channel.ID,
		VideoID:   "video-1",
		Title:     "Intro",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.inbox.count(f.fan.ID))
	assert.Equal(t, 1, f.inbox.count(f.other.ID))
	assert.Equal(t, 0, f.inbox.count(f.owner.ID))

	n := f.inbox.items[f.fan.ID][0]
	assert.Equal(t, queue.EventVideoPublished, n.Type)
	assert.Equal(t, "Owner TV uploaded: Intro", n.Message)
	assert.Equal(t, "video-1", n.VideoID)
}

func TestHandleEvent_VideoLikedNotifiesCreator(t *testing.T) {
	f := setup(t)

	err := f.uc.HandleEvent(context.Background(), queue.Event{
		Type:        queue.EventVideoLiked,
		ActorID:     f.fan.ID,
		RecipientID: f.owner.ID,
		VideoID:     "video-1",
		Title:       "Intro",
	})
	require.NoError(t, err)

	require.Equal(t, 1, f.inbox.count(f.owner.ID))
	n := f.inbox.items[f.owner.ID][0]
	assert.Equal(t, "Fan liked your video: Intro", n.Message)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestHandleEvent_SelfLikeIsIgnored(t *testing.T) {
	f := setup(t)

	err := f.uc.HandleEvent(context.Background(), queue.Event{
		Type:        queue.EventVideoLiked,
		ActorID:     f.owner.ID,
		RecipientID: f.owner.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.inbox.count(f.owner.ID))
}

func TestHandleEvent_SubscriptionResolvesOwner(t *testing.T) {
	f := setup(t)

	err := f.uc.HandleEvent(context.Background(), queue.Event{
		Type:      queue.EventChannelSubscribed,
		ActorID:   f.fan.ID,
		ChannelID: f.channel.ID,
	})
	require.NoError(t, err)

	require.Equal(t, 1, f.inbox.count(f.owner.ID))
	assert.Equal(t, "Fan subscribed to your channel", f.inbox.items[f.owner.ID][0].Message)
}

func TestHandleEvent_SubscriptionToMissingChannel(t *testing.T) {
	f := setup(t)

	err := f.uc.HandleEvent(context.Background(), queue.Event{
		Type:      queue.EventChannelSubscribed,
		ActorID:   f.fan.ID,
		ChannelID: "5b1f6a3e-8c2d-4c1e-9a57-0f0d6b1c2a11",
	})
	assert.NoError(t, err)
}

func TestHandleEvent_UnknownTypeIsAcknowledged(t *testing.T) {
	f := setup(t)
	assert.NoError(t, f.uc.HandleEvent(context.Background(), queue.Event{Type: "video.shared"}))
}

func TestQueueLength(t *testing.T) {
	f := setup(t)

	length, err := f.uc.QueueLength()
	require.NoError(t, err)
	assert.Equal(t, 3, length)

	failing := NewNotificationUseCase(nil, f.inbox, fixedQueue{err: errors.New("closed")}, logger.New())
	_, err = failing.QueueLength()
	assert.Error(t, err)

	missing := NewNotificationUseCase(nil, f.inbox, nil, logger.New())
	_, err = missing.QueueLength()
	assert.Error(t, err)
}
