package http

import (
	"net/http"

	"opftube/pkg/logger"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ChannelHandler struct {
	channelUseCase usecase.ChannelUseCase
	logger         *logger.Logger
}

func NewChannelHandler(channelUseCase usecase.ChannelUseCase, logger *logger.Logger) *ChannelHandler {
	return &ChannelHandler{channelUseCase: channelUseCase, logger: logger}
}

type CreateChannelRequest struct {
	Name        string `json:"name"`
	Handle      string `json:"handle" example:"@anntv"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
	BannerURL   string `json:"banner_url"`
}

type UpdateChannelRequest struct {
	Name        *string `json:"name"`
	Handle      *string `json:"handle"`
	Description *string `json:"description"`
	AvatarURL   *string `json:"avatar_url"`
	BannerURL   *string `json:"banner_url"`
	IsVerified  *bool   `json:"is_verified"`
}

// ListChannels godoc
// @Summary      List channels
// @Description  All channels, most subscribed first
// @Tags         channels
// @Produce      json
// @Success      200  {array}  entity.Channel
// @Router       /channels [get]
func (h *ChannelHandler) ListChannels(c *gin.Context) {
	channels, err := h.channelUseCase.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

// GetChannel godoc
// @Summary      Get a channel with its videos
// @Tags         channels
// @Produce      json
// @Param        id   path      string  true  "Channel ID"
// @Success      200  {object}  entity.ChannelPage
// @Failure      404  {object}  map[string]string
// @Router       /channels/{id} [get]
func (h *ChannelHandler) GetChannel(c *gin.Context) {
	id, ok := pathID(c, "id", "Channel")
	if !ok {
		return
	}

	page, err := h.channelUseCase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateChannel godoc
// @Summary      Create a channel
// @Description  Each user may own one channel
// @Tags         channels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateChannelRequest true "Channel data"
// @Success      201  {object}  entity.Channel
// @Failure      400  {object}  map[string]string
// @Router       /channels [post]
func (h *ChannelHandler) CreateChannel(c *gin.Context) {
	var req CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	channel, err := h.channelUseCase.Create(c.Request.Context(), actorFrom(c), entity.ChannelDraft{
		Name:        req.Name,
		Handle:      req.Handle,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
		BannerURL:   req.BannerURL,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, channel)
}

// UpdateChannel godoc
// @Summary      Update a channel
// @Description  Changing avatar_url also updates the owner's avatar. Only admins may set is_verified.
// @Tags         channels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                true  "Channel ID"
// @Param        request  body  UpdateChannelRequest  true  "Fields to change"
// @Success      200  {object}  entity.Channel
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /channels/{id} [put]
func (h *ChannelHandler) UpdateChannel(c *gin.Context) {
	id, ok := pathID(c, "id", "Channel")
	if !ok {
		return
	}

	var req UpdateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	channel, err := h.channelUseCase.Update(c.Request.Context(), actorFrom(c), id, entity.ChannelUpdate{
		Name:        req.Name,
		Handle:      req.Handle,
		Description: req.Description,
		AvatarURL:   req.AvatarURL,
		BannerURL:   req.BannerURL,
		IsVerified:  req.IsVerified,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, channel)
}

// DeleteChannel godoc
// @Summary      Delete a channel
// @Description  Removes the channel with its videos, posts and subscriptions
// @Tags         channels
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Channel ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /channels/{id} [delete]
func (h *ChannelHandler) DeleteChannel(c *gin.Context) {
	id, ok := pathID(c, "id", "Channel")
	if !ok {
		return
	}

	if err := h.channelUseCase.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Channel deleted"})
}
