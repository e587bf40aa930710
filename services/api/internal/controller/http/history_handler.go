package http

import (
	"net/http"

	"opftube/pkg/logger"
	"opftube/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	historyUseCase usecase.HistoryUseCase
	logger         *logger.Logger
}

func NewHistoryHandler(historyUseCase usecase.HistoryUseCase, logger *logger.Logger) *HistoryHandler {
	return &HistoryHandler{historyUseCase: historyUseCase, logger: logger}
}

// GetHistory godoc
// @Summary      Watch history
// @Description  Newest first, at most 50 entries
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200  {array}   entity.HistoryEntry
// @Failure      403  {object}  map[string]string
// @Router       /history/{userId} [get]
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID, ok := pathID(c, "userId", "User")
	if !ok {
		return
	}

	entries, err := h.historyUseCase.List(c.Request.Context(), actorFrom(c), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ClearHistory godoc
// @Summary      Clear watch history
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /history/{userId} [delete]
func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	userID, ok := pathID(c, "userId", "User")
	if !ok {
		return
	}

	if err := h.historyUseCase.Clear(c.Request.Context(), actorFrom(c), userID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "History cleared"})
}

// RemoveFromHistory godoc
// @Summary      Remove one history entry
// @Tags         history
// @Produce      json
// @Security     BearerAuth
// @Param        userId   path      string  true  "User ID"
// @Param        videoId  path      string  true  "Video ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /history/{userId}/{videoId} [delete]
func (h *HistoryHandler) RemoveFromHistory(c *gin.Context) {
	userID, ok := pathID(c, "userId", "User")
	if !ok {
		return
	}
	videoID, ok := pathID(c, "videoId", "Video")
	if !ok {
		return
	}

	if err := h.historyUseCase.Remove(c.Request.Context(), actorFrom(c), userID, videoID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from history"})
}
