package persistent

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"opftube/pkg/models"
	"opftube/services/api/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	SortNewest = "newest"
	SortOldest = "oldest"
	SortViews  = "views"
	SortLikes  = "likes"
)

// searchVector must match the expression of idx_videos_search in migrations.
const searchVector = "to_tsvector('simple', coalesce(title, '') || ' ' || coalesce(description, '') || ' ' || coalesce(tags, ''))"

const substringMatch = `LOWER(title) LIKE @p ESCAPE '\' OR LOWER(description) LIKE @p ESCAPE '\' OR ` +
	`EXISTS (SELECT 1 FROM video_tags t WHERE t.video_id = videos.id AND LOWER(t.tag) LIKE @p ESCAPE '\')`

type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video, categoryIDs []string) error
	GetByID(ctx context.Context, id string) (*entity.Video, error)
	List(ctx context.Context, filter entity.VideoFilter) ([]*entity.Video, int64, error)
	Trending(ctx context.Context, limit int) ([]*entity.Video, error)
	ListByChannel(ctx context.Context, channelID string, publishedOnly bool) ([]*entity.Video, error)
	ListByIDs(ctx context.Context, ids []string) (map[string]*entity.Video, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Video, error)
	ListReported(ctx context.Context) ([]*entity.Video, error)
	Update(ctx context.Context, id string, update entity.VideoUpdate) error
	Delete(ctx context.Context, id string) error

	ToggleLike(ctx context.Context, videoID, userID string) (*entity.LikeResult, error)
	IncrementDislikes(ctx context.Context, videoID string) (int64, error)
	// RecordView counts a view once per signed-in user and always for
	// anonymous viewers (empty userID). It returns the new view count.
	RecordView(ctx context.Context, videoID, userID string) (int64, error)
	Report(ctx context.Context, videoID, userID string) error

	TextSearch(ctx context.Context, q string, limit int) ([]*entity.Video, error)
	SubstringSearch(ctx context.Context, q string, limit int) ([]*entity.Video, error)
	SuggestTitles(ctx context.Context, q string, limit int) ([]string, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *entity.Video, categoryIDs []string) error {
	videoModel := ToVideoModel(video)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(categoryIDs) > 0 {
			if err := tx.Where("id IN ?", categoryIDs).Find(&videoModel.Categories).Error; err != nil {
				return err
			}
		}
		return tx.Omit("Categories.*").Create(videoModel).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	*video = *ToVideoEntity(videoModel)
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	db := r.db.WithContext(ctx)

	var videoModel models.Video
	if err := db.Preload("Channel").Preload("Categories").Preload("Creator").
		Where("id = ?", id).First(&videoModel).Error; err != nil {
		return nil, translate(err)
	}

	video := ToVideoEntity(&videoModel)

	likedBy := []string{}
	if err := db.Model(&models.VideoLike{}).Where("video_id = ?", id).
		Order("created_at ASC").Pluck("user_id", &likedBy).Error; err != nil {
		return nil, err
	}
	video.LikedBy = likedBy

	if err := db.Model(&models.VideoReport{}).Where("video_id = ?", id).Count(&video.ReportCount).Error; err != nil {
		return nil, err
	}

	return video, nil
}

func (r *videoRepository) filtered(ctx context.Context, filter entity.VideoFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Video{}).Where("is_published = ?", true)

	if filter.CategoryID != "" {
		query = query.Where("id IN (?)",
			r.db.Table("video_categories").Select("video_id").Where("category_id = ?", filter.CategoryID))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := containsPattern(strings.ToLower(search))
		channelIDs := r.db.Model(&models.Channel{}).Select("id").
			Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(handle) LIKE ? ESCAPE '\'`, pattern, pattern)
		query = query.Where(
			substringMatch+" OR channel_id IN (@channels)",
			sql.Named("p", pattern), sql.Named("channels", channelIDs),
		)
	}

	return query
}

func orderFor(sort string) string {
	switch sort {
	case SortViews:
		return "views DESC, created_at DESC"
	case SortLikes:
		return "likes DESC, created_at DESC"
	case SortOldest:
		return "created_at ASC"
	default:
		return "created_at DESC"
	}
}

func (r *videoRepository) List(ctx context.Context, filter entity.VideoFilter) ([]*entity.Video, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count videos: %w", err)
	}

	var videoModels []models.Video
	err := r.filtered(ctx, filter).
		Preload("Channel").
		Preload("Categories").
		Order(orderFor(filter.Sort)).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&videoModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list videos: %w", err)
	}

	return toVideoEntities(videoModels), total, nil
}

func (r *videoRepository) Trending(ctx context.Context, limit int) ([]*entity.Video, error) {
	var videoModels []models.Video
	err := r.db.WithContext(ctx).
		Preload("Channel").
		Where("is_published = ?", true).
		Order("views DESC").
		Limit(limit).
		Find(&videoModels).Error
	if err != nil {
		return nil, err
	}
	return toVideoEntities(videoModels), nil
}

func (r *videoRepository) ListByChannel(ctx context.Context, channelID string, publishedOnly bool) ([]*entity.Video, error) {
	query := r.db.WithContext(ctx).Preload("Channel").Where("channel_id = ?", channelID)
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}

	var videoModels []models.Video
	if err := query.Order("created_at DESC").Find(&videoModels).Error; err != nil {
		return nil, err
	}
	return toVideoEntities(videoModels), nil
}

func (r *videoRepository) ListByIDs(ctx context.Context, ids []string) (map[string]*entity.Video, error) {
	result := make(map[string]*entity.Video, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var videoModels []models.Video
	if err := r.db.WithContext(ctx).Preload("Channel").Where("id IN ?", ids).Find(&videoModels).Error; err != nil {
		return nil, err
	}
	for i := range videoModels {
		result[videoModels[i].ID] = ToVideoEntity(&videoModels[i])
	}
	return result, nil
}

func (r *videoRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Video, error) {
	query := r.db.WithContext(ctx).Preload("Channel").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var videoModels []models.Video
	if err := query.Find(&videoModels).Error; err != nil {
		return nil, err
	}
	return toVideoEntities(videoModels), nil
}

func (r *videoRepository) ListReported(ctx context.Context) ([]*entity.Video, error) {
	var counts []struct {
		VideoID string
		Reports int64
	}
	err := r.db.WithContext(ctx).Model(&models.VideoReport{}).
		Select("video_id, COUNT(*) AS reports").
		Group("video_id").
		Order("reports DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(counts))
	for _, c := range counts {
		ids = append(ids, c.VideoID)
	}
	byID, err := r.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	videos := make([]*entity.Video, 0, len(counts))
	for _, c := range counts {
		if v, ok := byID[c.VideoID]; ok {
			v.ReportCount = c.Reports
			videos = append(videos, v)
		}
	}
	return videos, nil
}

func (r *videoRepository) Update(ctx context.Context, id string, update entity.VideoUpdate) error {
	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.ThumbnailURL != nil {
		fields["thumbnail_url"] = *update.ThumbnailURL
	}
	if update.VideoURL != nil {
		fields["video_url"] = *update.VideoURL
	}
	if update.Duration != nil {
		fields["duration"] = *update.Duration
	}
	if update.Tags != nil {
		fields["tags"] = models.StringList(*update.Tags)
	}
	if update.IsPublished != nil {
		fields["is_published"] = *update.IsPublished
	}
	if update.Type != nil {
		fields["type"] = *update.Type
		fields["is_live"] = *update.Type == entity.VideoTypeLive
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			res := tx.Model(&models.Video{}).Where("id = ?", id).Updates(fields)
			if res.Error != nil {
				return fmt.Errorf("failed to update video: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}

		if update.Tags != nil {
			if err := models.ReplaceVideoTags(tx, id, *update.Tags); err != nil {
				return err
			}
		}

		if update.CategoryIDs != nil {
			if err := tx.Exec("DELETE FROM video_categories WHERE video_id = ?", id).Error; err != nil {
				return err
			}
			var categoryIDs []string
			if len(*update.CategoryIDs) > 0 {
				if err := tx.Model(&models.Category{}).Where("id IN ?", *update.CategoryIDs).Pluck("id", &categoryIDs).Error; err != nil {
					return err
				}
			}
			for _, categoryID := range categoryIDs {
				if err := tx.Exec("INSERT INTO video_categories (video_id, category_id) VALUES (?, ?)", id, categoryID).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteVideoRows(tx, []string{id}); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Video{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *videoRepository) ToggleLike(ctx context.Context, videoID, userID string) (*entity.LikeResult, error) {
	var result *entity.LikeResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = toggleLike(tx, &models.Video{}, videoID, &models.VideoLike{VideoID: videoID, UserID: userID})
		if err != nil {
			return err
		}
		result.LikedBy = []string{}
		return tx.Model(&models.VideoLike{}).Where("video_id = ?", videoID).
			Order("created_at ASC").Pluck("user_id", &result.LikedBy).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *videoRepository) IncrementDislikes(ctx context.Context, videoID string) (int64, error) {
	var dislikes int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Video{}).Where("id = ?", videoID).
			UpdateColumn("dislikes", gorm.Expr("dislikes + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.Video{}).Where("id = ?", videoID).Pluck("dislikes", &dislikes).Error
	})
	return dislikes, err
}

func (r *videoRepository) RecordView(ctx context.Context, videoID, userID string) (int64, error) {
	var views int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ?", videoID).First(&models.Video{}).Error; err != nil {
			return translate(err)
		}

		count := true
		if userID != "" {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&models.VideoView{VideoID: videoID, UserID: userID})
			if res.Error != nil {
				return res.Error
			}
			count = res.RowsAffected > 0
		}

		if count {
			if err := tx.Model(&models.Video{}).Where("id = ?", videoID).
				UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Video{}).Where("id = ?", videoID).Pluck("views", &views).Error
	})
	return views, err
}

func (r *videoRepository) Report(ctx context.Context, videoID, userID string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.VideoReport{VideoID: videoID, UserID: userID}).Error
}

// TextSearch uses the PostgreSQL full-text index. It fails on databases
// without to_tsvector.
func (r *videoRepository) TextSearch(ctx context.Context, q string, limit int) ([]*entity.Video, error) {
	tsQuery := "plainto_tsquery('simple', ?)"

	var videoModels []models.Video
	err := r.db.WithContext(ctx).
		Preload("Channel").
		Where("is_published = ?", true).
		Where(searchVector+" @@ "+tsQuery, q).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "ts_rank(" + searchVector + ", " + tsQuery + ") DESC",
			Vars:               []interface{}{q},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&videoModels).Error
	if err != nil {
		return nil, fmt.Errorf("text search failed: %w", err)
	}
	return toVideoEntities(videoModels), nil
}

func (r *videoRepository) SubstringSearch(ctx context.Context, q string, limit int) ([]*entity.Video, error) {
	pattern := containsPattern(strings.ToLower(q))

	var videoModels []models.Video
	err := r.db.WithContext(ctx).
		Preload("Channel").
		Where("is_published = ?", true).
		Where(substringMatch, sql.Named("p", pattern)).
		Order("views DESC").
		Limit(limit).
		Find(&videoModels).Error
	if err != nil {
		return nil, fmt.Errorf("substring search failed: %w", err)
	}
	return toVideoEntities(videoModels), nil
}

func (r *videoRepository) SuggestTitles(ctx context.Context, q string, limit int) ([]string, error) {
	var titles []string
	err := r.db.WithContext(ctx).Model(&models.Video{}).
		Where("is_published = ?", true).
		Where(`LOWER(title) LIKE ? ESCAPE '\'`, containsPattern(strings.ToLower(q))).
		Order("views DESC").
		Limit(limit*3).
		Pluck("title", &titles).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(titles))
	suggestions := make([]string, 0, limit)
	for _, title := range titles {
		if seen[title] {
			continue
		}
		seen[title] = true
		suggestions = append(suggestions, title)
		if len(suggestions) == limit {
			break
		}
	}
	return suggestions, nil
}
