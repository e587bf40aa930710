package persistent

import (
	"context"
	"fmt"

	"opftube/pkg/models"
	"opftube/services/api/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaylistRepository interface {
	// Create stores the playlist and, when initialVideoID is set, its first entry.
	Create(ctx context.Context, playlist *entity.Playlist, initialVideoID string) error
	GetByID(ctx context.Context, id string) (*entity.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]*entity.Playlist, error)
	VideoIDs(ctx context.Context, playlistID string) ([]string, error)
	// AddVideo appends the video unless it is already present. The playlist
	// takes thumbnailURL when it has none yet.
	AddVideo(ctx context.Context, playlistID, videoID, thumbnailURL string) error
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
	Delete(ctx context.Context, id string) error
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(ctx context.Context, playlist *entity.Playlist, initialVideoID string) error {
	playlistModel := &models.Playlist{
		Title:        playlist.Title,
		Description:  playlist.Description,
		Privacy:      models.PlaylistPrivacy(playlist.Privacy),
		OwnerID:      playlist.OwnerID,
		ThumbnailURL: playlist.ThumbnailURL,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(playlistModel).Error; err != nil {
			return err
		}
		if initialVideoID == "" {
			return nil
		}
		return tx.Create(&models.PlaylistVideo{PlaylistID: playlistModel.ID, VideoID: initialVideoID}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	*playlist = *ToPlaylistEntity(playlistModel)
	if initialVideoID != "" {
		playlist.VideoCount = 1
	}
	return nil
}

func (r *playlistRepository) GetByID(ctx context.Context, id string) (*entity.Playlist, error) {
	var playlistModel models.Playlist
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&playlistModel).Error; err != nil {
		return nil, translate(err)
	}

	playlist := ToPlaylistEntity(&playlistModel)
	if err := r.db.WithContext(ctx).Model(&models.PlaylistVideo{}).
		Where("playlist_id = ?", id).Count(&playlist.VideoCount).Error; err != nil {
		return nil, err
	}
	return playlist, nil
}

func (r *playlistRepository) ListByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]*entity.Playlist, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if publicOnly {
		query = query.Where("privacy = ?", models.PrivacyPublic)
	}

	var playlistModels []models.Playlist
	if err := query.Order("updated_at DESC").Find(&playlistModels).Error; err != nil {
		return nil, err
	}

	playlists := make([]*entity.Playlist, 0, len(playlistModels))
	if len(playlistModels) == 0 {
		return playlists, nil
	}

	ids := make([]string, 0, len(playlistModels))
	for i := range playlistModels {
		ids = append(ids, playlistModels[i].ID)
	}

	var counts []struct {
		PlaylistID string
		Videos     int64
	}
	if err := r.db.WithContext(ctx).Model(&models.PlaylistVideo{}).
		Select("playlist_id, COUNT(*) AS videos").
		Where("playlist_id IN ?", ids).
		Group("playlist_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	countByID := make(map[string]int64, len(counts))
	for _, c := range counts {
		countByID[c.PlaylistID] = c.Videos
	}

	for i := range playlistModels {
		playlist := ToPlaylistEntity(&playlistModels[i])
		playlist.VideoCount = countByID[playlist.ID]
		playlists = append(playlists, playlist)
	}
	return playlists, nil
}

func (r *playlistRepository) VideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.PlaylistVideo{}).
		Where("playlist_id = ?", playlistID).
		Order("position ASC").
		Pluck("video_id", &ids).Error
	return ids, err
}

func (r *playlistRepository) AddVideo(ctx context.Context, playlistID, videoID, thumbnailURL string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next struct{ Position int }
		if err := tx.Model(&models.PlaylistVideo{}).
			Select("COALESCE(MAX(position), -1) + 1 AS position").
			Where("playlist_id = ?", playlistID).
			Scan(&next).Error; err != nil {
			return err
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.PlaylistVideo{
			PlaylistID: playlistID,
			VideoID:    videoID,
			Position:   next.Position,
		}).Error; err != nil {
			return err
		}

		if thumbnailURL == "" {
			return nil
		}
		return tx.Model(&models.Playlist{}).
			Where("id = ? AND (thumbnail_url = '' OR thumbnail_url IS NULL)", playlistID).
			Update("thumbnail_url", thumbnailURL).Error
	})
}

func (r *playlistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	return r.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&models.PlaylistVideo{}).Error
}

func (r *playlistRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&models.PlaylistVideo{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Playlist{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
