package http

import (
	"context"
	"net/http"
	"strings"

	"opftube/pkg/jwt"
	"opftube/pkg/logger"
	"opftube/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type StreamHandler struct {
	stream     usecase.Stream
	jwtService *jwt.Service
	upgrader   websocket.Upgrader
	logger     *logger.Logger
}

func NewStreamHandler(stream usecase.Stream, jwtService *jwt.Service, allowedOrigins []string, logger *logger.Logger) *StreamHandler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return &StreamHandler{
		stream:     stream,
		jwtService: jwtService,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed[origin]
			},
		},
		logger: logger,
	}
}

// Connect upgrades to a websocket and forwards the caller's live
// notifications. Browsers cannot set headers on the handshake, so the token
// may also come in the "token" query parameter.
func (h *StreamHandler) Connect(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		token = c.Query("token")
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}
	userID := claims.UserID

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	h.logger.Info("WebSocket connected for user %s", userID)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	messages, closeStream := h.stream.Subscribe(ctx, userID)
	defer closeStream()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket disconnected for user %s", userID)
			return
		case payload, ok := <-messages:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
				h.logger.Warn("Failed to write WebSocket message: %v", err)
				return
			}
		}
	}
}
