package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"

	"github.com/google/uuid"
)

var ErrStorageUnavailable = errors.New("upload storage is not configured")

type UploadUseCase interface {
	// Upload stores the file under uploads/<user>/ and returns its public URL.
	Upload(ctx context.Context, actor entity.Actor, filename, contentType string, size int64, file io.Reader) (string, error)
}

type uploadUseCase struct {
	storage  ObjectStorage
	maxBytes int64
	logger   *logger.Logger
}

func NewUploadUseCase(storage ObjectStorage, maxBytes int64, logger *logger.Logger) UploadUseCase {
	return &uploadUseCase{storage: storage, maxBytes: maxBytes, logger: logger}
}

func ObjectKey(userID, filename string) string {
	return fmt.Sprintf("uploads/%s/%s%s", userID, uuid.New().String(), strings.ToLower(filepath.Ext(filename)))
}

func (uc *uploadUseCase) Upload(ctx context.Context, actor entity.Actor, filename, contentType string, size int64, file io.Reader) (string, error) {
	if file == nil {
		return "", invalid("No file uploaded")
	}
	if uc.maxBytes > 0 && size > uc.maxBytes {
		return "", invalid("File exceeds the %d MB limit", uc.maxBytes/(1<<20))
	}
	if uc.storage == nil {
		return "", ErrStorageUnavailable
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := ObjectKey(actor.UserID, filename)
	url, err := uc.storage.UploadFile(ctx, key, file, contentType)
	if err != nil {
		return "", err
	}

	uc.logger.Info("User %s uploaded %s (%d bytes)", actor.UserID, key, size)
	return url, nil
}
