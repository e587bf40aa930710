package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opftube/pkg/config"
	"opftube/pkg/jwt"
	"opftube/pkg/logger"
	"opftube/pkg/queue"
	notificationHTTP "opftube/services/notification/internal/controller/http"
	"opftube/services/notification/internal/repo/persistent"
	"opftube/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const backlogReportInterval = time.Minute

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	// Initialize Repository
	recipientRepo := persistent.NewRecipientRepository(db)

	// Initialize UseCase
	notificationUseCase := usecase.NewNotificationUseCase(recipientRepo, usecase.NewRedisInbox(redisClient), queueClient, log)

	// Initialize HTTP handlers
	statusHandler := notificationHTTP.NewStatusHandler(notificationUseCase, log)
	jwtService := jwt.NewService(cfg.JWTSecret)
	streamHandler := notificationHTTP.NewStreamHandler(usecase.NewRedisStream(redisClient), jwtService, cfg.CORSOrigins, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", statusHandler.Health)
	r.GET("/ws", streamHandler.Connect)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		log.Info("Starting notification queue processor...")
		err := queueClient.ConsumeEvents(ctx, notificationUseCase.HandleEvent)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Notification consumer stopped: %v", err)
		}
	}()

	go func() {
		ticker := time.NewTicker(backlogReportInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if length, err := notificationUseCase.QueueLength(); err == nil && length > 0 {
					log.Info("Notification backlog: %d events", length)
				}
			}
		}
	}()

	go func() {
		log.Info("Notification worker listening on port %s (health, websocket)", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-consumerDone:
	}
	log.Info("Shutting down notification worker...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	queueClient.Close()

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	log.Info("Notification worker exited")
}
