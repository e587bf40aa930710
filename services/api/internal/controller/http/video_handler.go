package http

import (
	"net/http"
	"strconv"

	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type VideoHandler struct {
	videoUseCase usecase.VideoUseCase
	logger       *logger.Logger
}

func NewVideoHandler(videoUseCase usecase.VideoUseCase, logger *logger.Logger) *VideoHandler {
	return &VideoHandler{videoUseCase: videoUseCase, logger: logger}
}

type CreateVideoRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ThumbnailURL string   `json:"thumbnail_url"`
	VideoURL     string   `json:"video_url"`
	Duration     string   `json:"duration" example:"4:20"`
	ChannelID    string   `json:"channel_id"`
	Categories   []string `json:"categories"`
	Tags         []string `json:"tags"`
	IsPublished  *bool    `json:"is_published"`
	Type         string   `json:"type" enums:"video,live,short"`
}

type UpdateVideoRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	VideoURL     *string   `json:"video_url"`
	Duration     *string   `json:"duration"`
	Tags         *[]string `json:"tags"`
	Categories   *[]string `json:"categories"`
	IsPublished  *bool     `json:"is_published"`
	Type         *string   `json:"type" enums:"video,live,short"`
}

type VideosResponse struct {
	Videos []*entity.Video `json:"videos"`
}

func queryInt(c *gin.Context, name string) int {
	n, _ := strconv.Atoi(c.Query(name))
	return n
}

// ListVideos godoc
// @Summary      List published videos
// @Tags         videos
// @Produce      json
// @Param        category  query     string  false  "Category ID"
// @Param        sort      query     string  false  "Sort order"  Enums(newest, oldest, views, likes)
// @Param        search    query     string  false  "Substring of title, description, tags or channel"
// @Param        page      query     int     false  "Page number"  default(1)
// @Param        limit     query     int     false  "Page size"    default(20)
// @Success      200  {object}  entity.VideoPage
// @Failure      500  {object}  map[string]string
// @Router       /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	categoryID := c.Query("category")
	if categoryID != "" {
		if _, err := uuid.Parse(categoryID); err != nil {
			// matches no category, so the page comes back empty
			categoryID = uuid.Nil.String()
		}
	}

	page, err := h.videoUseCase.List(c.Request.Context(), entity.VideoFilter{
		CategoryID: categoryID,
		Search:     c.Query("search"),
		Sort:       c.Query("sort"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Trending godoc
// @Summary      Trending videos
// @Description  Top published videos by views
// @Tags         videos
// @Produce      json
// @Success      200  {object}  VideosResponse
// @Router       /videos/trending [get]
func (h *VideoHandler) Trending(c *gin.Context) {
	videos, err := h.videoUseCase.Trending(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, VideosResponse{Videos: videos})
}

// GetVideo godoc
// @Summary      Get video by ID
// @Tags         videos
// @Produce      json
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  entity.Video
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	id, ok := pathID(c, "id", "Video")
	if !ok {
		return
	}

	video, err := h.videoUseCase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// CreateVideo godoc
// @Summary      Publish a video
// @Description  Videos shorter than a minute become shorts unless they are live
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateVideoRequest true "Video data"
// @Success      201  {object}  entity.Video
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /videos [post]
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if !bodyID(c, req.ChannelID, "Channel") {
		return
	}

	video, err := h.videoUseCase.Create(c.Request.Context(), actorFrom(c), entity.VideoDraft{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		VideoURL:     req.VideoURL,
		Duration:     req.Duration,
		ChannelID:    req.ChannelID,
		CategoryIDs:  uuidsOnly(req.Categories),
		Tags:         req.Tags,
		IsPublished:  req.IsPublished,
		Type:         req.Type,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, video)
}

// UpdateVideo godoc
// @Summary      Update a video
// @Tags         videos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string              true  "Video ID"
// @Param        request  body  UpdateVideoRequest  true  "Fields to change"
// @Success      200  {object}  entity.Video
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id} [put]
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	id, ok := pathID(c, "id", "Video")
	if !ok {
		return
	}

	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	categoryIDs := req.Categories
	if categoryIDs != nil {
		valid := uuidsOnly(*categoryIDs)
		categoryIDs = &valid
	}

	video, err := h.videoUseCase.Update(c.Request.Context(), actorFrom(c), id, entity.VideoUpdate{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
		VideoURL:     req.VideoURL,
		Duration:     req.Duration,
		Tags:         req.Tags,
		CategoryIDs:  categoryIDs,
		IsPublished:  req.IsPublished,
		Type:         req.Type,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// DeleteVideo godoc
// @Summary      Delete a video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id} [delete]
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, ok := pathID(c, "id", "Video")
	if !ok {
		return
	}

	if err := h.videoUseCase.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
}

// LikeVideo godoc
// @Summary      Like or unlike a video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  entity.LikeResult
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id}/like [post]
func (h *VideoHandler) LikeVideo(c *gin.Context) {
	id, ok := pathID(c, "id", "Video")
	if !ok {
		return
	}

	result, err := h.videoUseCase.Like(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// DislikeVideo godoc
// @Summary      Dislike a video
// @Tags         videos
// @Produce      json
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  map[string]int64
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id}/dislike [post]
func (h *VideoHandler) DislikeVideo(c *gin.Context) {
	id, ok := pathID(c, "id", "Video")
	if !ok {
		return
	}

	dislikes, err := h.videoUseCase.Dislike(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dislikes": dislikes})
}

// ViewVideo godoc
// @Summary      Count a view
// @Description  Signed-in viewers are counted once and get a history entry
// @Tags         videos
// @Produce      json
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  map[string]int64
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id}/view [post]
func (h *VideoHandler) ViewVideo(c *gin.Context) {
	id, ok := pathID(c, "id", "Video")
	if !ok {
		return
	}

	views, err := h.videoUseCase.View(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"views": views})
}

// SaveVideo godoc
// @Summary      Toggle watch later
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id}/save [post]
func (h *VideoHandler) SaveVideo(c *gin.Context) {
	id, ok := pathID(c, "id", "Video")
	if !ok {
		return
	}

	saved, err := h.videoUseCase.ToggleSave(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	message := "Video removed from saved"
	if saved {
		message = "Video saved"
	}
	c.JSON(http.StatusOK, gin.H{"saved": saved, "message": message})
}

// SavedVideos godoc
// @Summary      Watch-later list
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200  {array}   entity.Video
// @Failure      403  {object}  map[string]string
// @Router       /videos/saved/{userId} [get]
func (h *VideoHandler) SavedVideos(c *gin.Context) {
	userID, ok := pathID(c, "userId", "User")
	if !ok {
		return
	}

	videos, err := h.videoUseCase.Saved(c.Request.Context(), actorFrom(c), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// ReportVideo godoc
// @Summary      Report a video
// @Tags         videos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Video ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /videos/{id}/report [post]
func (h *VideoHandler) ReportVideo(c *gin.Context) {
	id, ok := pathID(c, "id", "Video")
	if !ok {
		return
	}

	if err := h.videoUseCase.Report(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Video reported", "reported": true})
}
