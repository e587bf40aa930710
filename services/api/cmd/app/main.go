package main

import (
	"opftube/pkg/cache"
	"opftube/pkg/config"
	"opftube/pkg/database"
	"opftube/pkg/logger"
	"opftube/pkg/queue"
	"opftube/pkg/s3"
	apiApp "opftube/services/api/internal/app"

	"github.com/gin-gonic/gin"
)

// @title           OPFTube API
// @version         1.0
// @description     Video sharing API: channels, videos, comments, playlists and subscriptions
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == config.DefaultJWTSecret || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	gin.SetMode(cfg.GinMode)

	log := logger.New()
	db, err := database.NewPostgresDB(cfg, log)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Production schemas are managed by goose, see cmd/migrate
	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Error("Failed to migrate database: %v", err)
			panic(err)
		}
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ: %v (continuing without events)", err)
		queueClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Warn("Failed to create S3 client: %v (uploads disabled)", err)
		s3Client = nil
	}

	apiApp.Run(cfg, log, db, redisClient, queueClient, s3Client)
}
