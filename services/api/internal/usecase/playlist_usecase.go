package usecase

import (
	"context"
	"strings"

	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/repo/persistent"
)

type PlaylistUseCase interface {
	// ListByUser returns every playlist to the owner or an admin and only
	// public ones to anyone else.
	ListByUser(ctx context.Context, actor entity.Actor, userID string) ([]*entity.Playlist, error)
	Get(ctx context.Context, actor entity.Actor, id string) (*entity.Playlist, error)
	Create(ctx context.Context, actor entity.Actor, draft entity.PlaylistDraft) (*entity.Playlist, error)
	AddVideo(ctx context.Context, actor entity.Actor, id, videoID string) (*entity.Playlist, error)
	RemoveVideo(ctx context.Context, actor entity.Actor, id, videoID string) (*entity.Playlist, error)
	Delete(ctx context.Context, actor entity.Actor, id string) error
}

type playlistUseCase struct {
	playlistRepo persistent.PlaylistRepository
	videoRepo    persistent.VideoRepository
	logger       *logger.Logger
}

func NewPlaylistUseCase(playlistRepo persistent.PlaylistRepository, videoRepo persistent.VideoRepository, logger *logger.Logger) PlaylistUseCase {
	return &playlistUseCase{playlistRepo: playlistRepo, videoRepo: videoRepo, logger: logger}
}

func validPrivacy(privacy string) bool {
	switch privacy {
	case entity.PrivacyPublic, entity.PrivacyPrivate, entity.PrivacyUnlisted:
		return true
	}
	return false
}

func (uc *playlistUseCase) ListByUser(ctx context.Context, actor entity.Actor, userID string) ([]*entity.Playlist, error) {
	return uc.playlistRepo.ListByOwner(ctx, userID, !actor.CanManage(userID))
}

func (uc *playlistUseCase) Get(ctx context.Context, actor entity.Actor, id string) (*entity.Playlist, error) {
	playlist, err := uc.playlistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Playlist")
	}
	if playlist.Privacy == entity.PrivacyPrivate && !actor.CanManage(playlist.OwnerID) {
		return nil, notFound("Playlist")
	}

	ids, err := uc.playlistRepo.VideoIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	byID, err := uc.videoRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	playlist.Videos = make([]*entity.Video, 0, len(ids))
	for _, videoID := range ids {
		if video, ok := byID[videoID]; ok {
			playlist.Videos = append(playlist.Videos, video)
		}
	}
	return playlist, nil
}

func (uc *playlistUseCase) Create(ctx context.Context, actor entity.Actor, draft entity.PlaylistDraft) (*entity.Playlist, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	if draft.Title == "" {
		return nil, invalid("Title is required")
	}
	if draft.Privacy == "" {
		draft.Privacy = entity.PrivacyPublic
	}
	if !validPrivacy(draft.Privacy) {
		return nil, invalid("Invalid privacy setting")
	}

	playlist := &entity.Playlist{
		Title:       draft.Title,
		Description: draft.Description,
		Privacy:     draft.Privacy,
		OwnerID:     actor.UserID,
	}

	if draft.VideoID != "" {
		video, err := uc.videoRepo.GetByID(ctx, draft.VideoID)
		if err != nil {
			return nil, lookup(err, "Video")
		}
		playlist.ThumbnailURL = video.ThumbnailURL
	}

	if err := uc.playlistRepo.Create(ctx, playlist, draft.VideoID); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (uc *playlistUseCase) owned(ctx context.Context, actor entity.Actor, id string) (*entity.Playlist, error) {
	playlist, err := uc.playlistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Playlist")
	}
	if !actor.CanManage(playlist.OwnerID) {
		return nil, forbidden("Not authorized to modify this playlist")
	}
	return playlist, nil
}

func (uc *playlistUseCase) AddVideo(ctx context.Context, actor entity.Actor, id, videoID string) (*entity.Playlist, error) {
	if videoID == "" {
		return nil, invalid("Video ID is required")
	}
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return nil, err
	}

	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, lookup(err, "Video")
	}
	if err := uc.playlistRepo.AddVideo(ctx, id, video.ID, video.ThumbnailURL); err != nil {
		return nil, err
	}
	return uc.Get(ctx, actor, id)
}

func (uc *playlistUseCase) RemoveVideo(ctx context.Context, actor entity.Actor, id, videoID string) (*entity.Playlist, error) {
	if videoID == "" {
		return nil, invalid("Video ID is required")
	}
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return nil, err
	}

	if err := uc.playlistRepo.RemoveVideo(ctx, id, videoID); err != nil {
		return nil, err
	}
	return uc.Get(ctx, actor, id)
}

func (uc *playlistUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if _, err := uc.owned(ctx, actor, id); err != nil {
		return err
	}
	return lookup(uc.playlistRepo.Delete(ctx, id), "Playlist")
}
