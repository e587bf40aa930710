package usecase

import (
	"context"

	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/repo/persistent"
)

type HistoryUseCase interface {
	List(ctx context.Context, actor entity.Actor, userID string) ([]*entity.HistoryEntry, error)
	Clear(ctx context.Context, actor entity.Actor, userID string) error
	Remove(ctx context.Context, actor entity.Actor, userID, videoID string) error
}

type historyUseCase struct {
	historyRepo persistent.HistoryRepository
	videoRepo   persistent.VideoRepository
}

func NewHistoryUseCase(historyRepo persistent.HistoryRepository, videoRepo persistent.VideoRepository) HistoryUseCase {
	return &historyUseCase{historyRepo: historyRepo, videoRepo: videoRepo}
}

func (uc *historyUseCase) List(ctx context.Context, actor entity.Actor, userID string) ([]*entity.HistoryEntry, error) {
	if !actor.CanManage(userID) {
		return nil, forbidden("Not authorized")
	}

	rows, err := uc.historyRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.VideoID)
	}
	byID, err := uc.videoRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		if video, ok := byID[row.VideoID]; ok {
			entries = append(entries, &entity.HistoryEntry{Video: video, WatchedAt: row.At})
		}
	}
	return entries, nil
}

func (uc *historyUseCase) Clear(ctx context.Context, actor entity.Actor, userID string) error {
	if !actor.CanManage(userID) {
		return forbidden("Not authorized")
	}
	return uc.historyRepo.Clear(ctx, userID)
}

func (uc *historyUseCase) Remove(ctx context.Context, actor entity.Actor, userID, videoID string) error {
	if !actor.CanManage(userID) {
		return forbidden("Not authorized")
	}
	return uc.historyRepo.Remove(ctx, userID, videoID)
}
