package http

import (
	"net/http"

	"opftube/pkg/logger"
	"opftube/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUseCase usecase.AdminUseCase
	logger       *logger.Logger
}

func NewAdminHandler(adminUseCase usecase.AdminUseCase, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{adminUseCase: adminUseCase, logger: logger}
}

// Stats godoc
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.DashboardStats
// @Failure      403  {object}  map[string]string
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUseCase.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Videos godoc
// @Summary      Every video, newest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Video
// @Router       /admin/videos [get]
func (h *AdminHandler) Videos(c *gin.Context) {
	videos, err := h.adminUseCase.Videos(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// Channels godoc
// @Summary      Every channel, newest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Channel
// @Router       /admin/channels [get]
func (h *AdminHandler) Channels(c *gin.Context) {
	channels, err := h.adminUseCase.Channels(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, channels)
}

// Users godoc
// @Summary      Every user, newest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.User
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.adminUseCase.Users(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Reports godoc
// @Summary      Reported videos
// @Description  Videos with at least one report, most reported first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Video
// @Router       /admin/reports [get]
func (h *AdminHandler) Reports(c *gin.Context) {
	videos, err := h.adminUseCase.Reports(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}
