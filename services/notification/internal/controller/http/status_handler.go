package http

import (
	"net/http"

	"opftube/pkg/logger"
	"opftube/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	notificationUseCase usecase.NotificationUseCase
	logger              *logger.Logger
}

func NewStatusHandler(notificationUseCase usecase.NotificationUseCase, logger *logger.Logger) *StatusHandler {
	return &StatusHandler{notificationUseCase: notificationUseCase, logger: logger}
}

// Health reports the worker as up together with the activity queue backlog.
func (h *StatusHandler) Health(c *gin.Context) {
	length, err := h.notificationUseCase.QueueLength()
	if err != nil {
		h.logger.Error("Failed to inspect queue: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "Queue unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "queue_length": length})
}
