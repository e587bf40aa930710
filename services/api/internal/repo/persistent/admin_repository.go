package persistent

import (
	"context"
	"fmt"

	"opftube/pkg/models"
	"opftube/services/api/internal/entity"

	"gorm.io/gorm"
)

// StatsRepository aggregates platform-wide counters for the admin dashboard.
type StatsRepository interface {
	Totals(ctx context.Context) (*entity.DashboardStats, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Totals(ctx context.Context) (*entity.DashboardStats, error) {
	db := r.db.WithContext(ctx)
	stats := &entity.DashboardStats{}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &stats.TotalUsers},
		{&models.Video{}, &stats.TotalVideos},
		{&models.Channel{}, &stats.TotalChannels},
		{&models.Comment{}, &stats.TotalComments},
		{&models.Post{}, &stats.TotalPosts},
		{&models.Category{}, &stats.TotalCategories},
		{&models.Subscription{}, &stats.TotalSubscriptions},
		{&models.Playlist{}, &stats.TotalPlaylists},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %T: %w", c.model, err)
		}
	}

	var sums struct {
		Views int64
		Likes int64
	}
	if err := db.Model(&models.Video{}).
		Select("COALESCE(SUM(views), 0) AS views, COALESCE(SUM(likes), 0) AS likes").
		Scan(&sums).Error; err != nil {
		return nil, fmt.Errorf("failed to sum video counters: %w", err)
	}
	stats.TotalViews = sums.Views
	stats.TotalLikes = sums.Likes

	return stats, nil
}
