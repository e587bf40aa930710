package usecase

import (
	"context"
	"strings"
	"time"

	"opftube/pkg/cache"
	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

const suggestionCacheTTL = 5 * time.Minute

type SearchUseCase interface {
	// Search tries the full-text index first and falls back to a substring
	// match when the index errors or finds nothing.
	Search(ctx context.Context, q string) ([]*entity.Video, error)
	Suggestions(ctx context.Context, q string) ([]string, error)
}

type searchUseCase struct {
	videoRepo   persistent.VideoRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewSearchUseCase(videoRepo persistent.VideoRepository, redisClient *redis.Client, logger *logger.Logger) SearchUseCase {
	return &searchUseCase{videoRepo: videoRepo, redisClient: redisClient, logger: logger}
}

func (uc *searchUseCase) Search(ctx context.Context, q string) ([]*entity.Video, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []*entity.Video{}, nil
	}

	videos, err := uc.videoRepo.TextSearch(ctx, q, SearchLimit)
	if err != nil {
		uc.logger.Warn("Full-text search unavailable, falling back: %v", err)
	}
	if err == nil && len(videos) > 0 {
		return videos, nil
	}

	return uc.videoRepo.SubstringSearch(ctx, q, SearchLimit)
}

func (uc *searchUseCase) Suggestions(ctx context.Context, q string) ([]string, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return []string{}, nil
	}

	key := "search:suggestions:" + q
	var cached []string
	if cache.GetJSON(ctx, uc.redisClient, key, &cached) {
		return cached, nil
	}

	suggestions, err := uc.videoRepo.SuggestTitles(ctx, q, SuggestLimit)
	if err != nil {
		return nil, err
	}

	if err := cache.SetJSON(ctx, uc.redisClient, key, suggestions, suggestionCacheTTL); err != nil {
		uc.logger.Warn("Failed to cache suggestions: %v", err)
	}
	return suggestions, nil
}
