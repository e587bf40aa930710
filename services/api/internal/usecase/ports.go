package usecase

import (
	"context"
	"io"
	"time"

	"opftube/pkg/logger"
	"opftube/pkg/queue"
)

type TokenIssuer interface {
	GenerateToken(userID, role string) (string, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, event queue.Event) error
}

type ObjectStorage interface {
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error)
}

// publishAsync sends the event without blocking the request. A nil
// publisher drops it.
func publishAsync(publisher EventPublisher, log *logger.Logger, event queue.Event) {
	if publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := publisher.PublishEvent(ctx, event); err != nil {
			log.Error("Failed to publish %s event: %v", event.Type, err)
		}
	}()
}
