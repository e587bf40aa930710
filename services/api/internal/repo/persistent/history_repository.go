package persistent

import (
	"context"
	"time"

	"opftube/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryRow is a watch-history or watch-later reference, newest first.
type HistoryRow struct {
	VideoID string
	At      time.Time
}

// HistoryRepository covers a user's watch history and watch-later list.
type HistoryRepository interface {
	// Record moves the video to the front of the history and trims the
	// history to the newest limit entries.
	Record(ctx context.Context, userID, videoID string, at time.Time, limit int) error
	List(ctx context.Context, userID string) ([]HistoryRow, error)
	Clear(ctx context.Context, userID string) error
	Remove(ctx context.Context, userID, videoID string) error

	ToggleWatchLater(ctx context.Context, userID, videoID string) (bool, error)
	ListWatchLater(ctx context.Context, userID string) ([]HistoryRow, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Record(ctx context.Context, userID, videoID string, at time.Time, limit int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"watched_at"}),
		}).Create(&models.WatchHistory{UserID: userID, VideoID: videoID, WatchedAt: at}).Error
		if err != nil {
			return err
		}

		var keep []string
		if err := tx.Model(&models.WatchHistory{}).
			Where("user_id = ?", userID).
			Order("watched_at DESC").
			Limit(limit).
			Pluck("video_id", &keep).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ? AND video_id NOT IN ?", userID, keep).Delete(&models.WatchHistory{}).Error
	})
}

func (r *historyRepository) List(ctx context.Context, userID string) ([]HistoryRow, error) {
	var rows []models.WatchHistory
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("watched_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]HistoryRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, HistoryRow{VideoID: row.VideoID, At: row.WatchedAt})
	}
	return out, nil
}

func (r *historyRepository) Clear(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.WatchHistory{}).Error
}

func (r *historyRepository) Remove(ctx context.Context, userID, videoID string) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&models.WatchHistory{}).Error
}

func (r *historyRepository) ToggleWatchLater(ctx context.Context, userID, videoID string) (bool, error) {
	saved := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&models.WatchLater{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		saved = true
		return tx.Create(&models.WatchLater{UserID: userID, VideoID: videoID}).Error
	})
	return saved, err
}

func (r *historyRepository) ListWatchLater(ctx context.Context, userID string) ([]HistoryRow, error) {
	var rows []models.WatchLater
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]HistoryRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, HistoryRow{VideoID: row.VideoID, At: row.CreatedAt})
	}
	return out, nil
}
