package http

import (
	"net/http"

	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler struct {
	playlistUseCase usecase.PlaylistUseCase
	logger          *logger.Logger
}

func NewPlaylistHandler(playlistUseCase usecase.PlaylistUseCase, logger *logger.Logger) *PlaylistHandler {
	return &PlaylistHandler{playlistUseCase: playlistUseCase, logger: logger}
}

type CreatePlaylistRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Privacy     string `json:"privacy" enums:"public,private,unlisted"`
	VideoID     string `json:"video_id"`
}

type PlaylistVideoRequest struct {
	VideoID string `json:"video_id"`
}

// ListUserPlaylists godoc
// @Summary      Playlists of a user
// @Description  The owner and admins see every playlist, others only public ones
// @Tags         playlists
// @Produce      json
// @Param        userId  path     string  true  "User ID"
// @Success      200  {array}  entity.Playlist
// @Router       /playlists/user/{userId} [get]
func (h *PlaylistHandler) ListUserPlaylists(c *gin.Context) {
	userID, ok := pathID(c, "userId", "User")
	if !ok {
		return
	}

	playlists, err := h.playlistUseCase.ListByUser(c.Request.Context(), actorFrom(c), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, playlists)
}

// GetPlaylist godoc
// @Summary      Get a playlist with its videos
// @Tags         playlists
// @Produce      json
// @Param        id   path      string  true  "Playlist ID"
// @Success      200  {object}  entity.Playlist
// @Failure      404  {object}  map[string]string
// @Router       /playlists/{id} [get]
func (h *PlaylistHandler) GetPlaylist(c *gin.Context) {
	id, ok := pathID(c, "id", "Playlist")
	if !ok {
		return
	}

	playlist, err := h.playlistUseCase.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

// CreatePlaylist godoc
// @Summary      Create a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePlaylistRequest true "Playlist"
// @Success      201  {object}  entity.Playlist
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /playlists [post]
func (h *PlaylistHandler) CreatePlaylist(c *gin.Context) {
	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if !bodyID(c, req.VideoID, "Video") {
		return
	}

	playlist, err := h.playlistUseCase.Create(c.Request.Context(), actorFrom(c), entity.PlaylistDraft{
		Title:       req.Title,
		Description: req.Description,
		Privacy:     req.Privacy,
		VideoID:     req.VideoID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, playlist)
}

func (h *PlaylistHandler) bindVideo(c *gin.Context) (string, bool) {
	var req PlaylistVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VideoID == "" {
		badRequest(c, "Video ID is required")
		return "", false
	}
	if !bodyID(c, req.VideoID, "Video") {
		return "", false
	}
	return req.VideoID, true
}

// AddVideo godoc
// @Summary      Add a video to a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                true  "Playlist ID"
// @Param        request  body  PlaylistVideoRequest  true  "Video"
// @Success      200  {object}  entity.Playlist
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /playlists/{id}/add [patch]
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	id, ok := pathID(c, "id", "Playlist")
	if !ok {
		return
	}
	videoID, ok := h.bindVideo(c)
	if !ok {
		return
	}

	playlist, err := h.playlistUseCase.AddVideo(c.Request.Context(), actorFrom(c), id, videoID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

// RemoveVideo godoc
// @Summary      Remove a video from a playlist
// @Tags         playlists
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                true  "Playlist ID"
// @Param        request  body  PlaylistVideoRequest  true  "Video"
// @Success      200  {object}  entity.Playlist
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /playlists/{id}/remove [patch]
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	id, ok := pathID(c, "id", "Playlist")
	if !ok {
		return
	}
	videoID, ok := h.bindVideo(c)
	if !ok {
		return
	}

	playlist, err := h.playlistUseCase.RemoveVideo(c.Request.Context(), actorFrom(c), id, videoID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

// DeletePlaylist godoc
// @Summary      Delete a playlist
// @Tags         playlists
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Playlist ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /playlists/{id} [delete]
func (h *PlaylistHandler) DeletePlaylist(c *gin.Context) {
	id, ok := pathID(c, "id", "Playlist")
	if !ok {
		return
	}

	if err := h.playlistUseCase.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Playlist deleted"})
}
