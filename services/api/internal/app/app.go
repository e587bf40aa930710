package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opftube/pkg/config"
	"opftube/pkg/jwt"
	"opftube/pkg/logger"
	"opftube/pkg/middleware"
	"opftube/pkg/queue"
	"opftube/pkg/s3"
	apiHTTP "opftube/services/api/internal/controller/http"
	"opftube/services/api/internal/repo/persistent"
	"opftube/services/api/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "opftube/services/api/docs" // Swagger docs
)

// Deps are the connections the router is built on. Redis, Events and Storage
// may be nil; the features behind them degrade instead of failing requests.
type Deps struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Events  usecase.EventPublisher
	Storage usecase.ObjectStorage
	JWT     *jwt.Service
}

func NewRouter(cfg *config.Config, log *logger.Logger, deps Deps) *gin.Engine {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(deps.DB)
	channelRepo := persistent.NewChannelRepository(deps.DB)
	videoRepo := persistent.NewVideoRepository(deps.DB)
	historyRepo := persistent.NewHistoryRepository(deps.DB)
	commentRepo := persistent.NewCommentRepository(deps.DB)
	categoryRepo := persistent.NewCategoryRepository(deps.DB)
	postRepo := persistent.NewPostRepository(deps.DB)
	subscriptionRepo := persistent.NewSubscriptionRepository(deps.DB)
	playlistRepo := persistent.NewPlaylistRepository(deps.DB)
	statsRepo := persistent.NewStatsRepository(deps.DB)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, deps.JWT, log)
	videoUseCase := usecase.NewVideoUseCase(videoRepo, channelRepo, historyRepo, deps.Redis, deps.Events, log)
	channelUseCase := usecase.NewChannelUseCase(channelRepo, videoRepo, userRepo, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, videoRepo, userRepo, log)
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, log)
	postUseCase := usecase.NewPostUseCase(postRepo, channelRepo, log)
	subscriptionUseCase := usecase.NewSubscriptionUseCase(subscriptionRepo, channelRepo, deps.Events, log)
	playlistUseCase := usecase.NewPlaylistUseCase(playlistRepo, videoRepo, log)
	historyUseCase := usecase.NewHistoryUseCase(historyRepo, videoRepo)
	searchUseCase := usecase.NewSearchUseCase(videoRepo, deps.Redis, log)
	adminUseCase := usecase.NewAdminUseCase(statsRepo, videoRepo, channelRepo, commentRepo, postRepo, userRepo)
	uploadUseCase := usecase.NewUploadUseCase(deps.Storage, cfg.UploadMaxBytes, log)
	notificationUseCase := usecase.NewNotificationUseCase(deps.Redis, log)

	// Initialize HTTP handlers
	authHandler := apiHTTP.NewAuthHandler(authUseCase, log)
	videoHandler := apiHTTP.NewVideoHandler(videoUseCase, log)
	channelHandler := apiHTTP.NewChannelHandler(channelUseCase, log)
	commentHandler := apiHTTP.NewCommentHandler(commentUseCase, log)
	categoryHandler := apiHTTP.NewCategoryHandler(categoryUseCase, log)
	postHandler := apiHTTP.NewPostHandler(postUseCase, log)
	subscriptionHandler := apiHTTP.NewSubscriptionHandler(subscriptionUseCase, log)
	playlistHandler := apiHTTP.NewPlaylistHandler(playlistUseCase, log)
	historyHandler := apiHTTP.NewHistoryHandler(historyUseCase, log)
	searchHandler := apiHTTP.NewSearchHandler(searchUseCase, log)
	adminHandler := apiHTTP.NewAdminHandler(adminUseCase, log)
	uploadHandler := apiHTTP.NewUploadHandler(uploadUseCase, cfg.UploadMaxBytes, log)
	notificationHandler := apiHTTP.NewNotificationHandler(notificationUseCase, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.AuthMiddleware(deps.JWT)
	optionalAuth := middleware.OptionalAuthMiddleware(deps.JWT)
	requireAdmin := middleware.AdminMiddleware()

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(deps.Redis, cfg.RateLimit, cfg.RateLimitWindow))

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", requireAuth, authHandler.Me)
		auth.GET("/users/:id", authHandler.GetUser)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", videoHandler.ListVideos)
		videos.GET("/trending", videoHandler.Trending)
		videos.GET("/saved/:userId", requireAuth, videoHandler.SavedVideos)
		videos.GET("/:id", videoHandler.GetVideo)
		videos.POST("", requireAuth, videoHandler.CreateVideo)
		videos.PUT("/:id", requireAuth, videoHandler.UpdateVideo)
		videos.DELETE("/:id", requireAuth, videoHandler.DeleteVideo)
		videos.POST("/:id/like", requireAuth, videoHandler.LikeVideo)
		videos.POST("/:id/dislike", videoHandler.DislikeVideo)
		videos.POST("/:id/view", optionalAuth, videoHandler.ViewVideo)
		videos.POST("/:id/save", requireAuth, videoHandler.SaveVideo)
		videos.POST("/:id/report", requireAuth, videoHandler.ReportVideo)
	}

	channels := api.Group("/channels")
	{
		channels.GET("", channelHandler.ListChannels)
		channels.GET("/:id", channelHandler.GetChannel)
		channels.POST("", requireAuth, channelHandler.CreateChannel)
		channels.PUT("/:id", requireAuth, channelHandler.UpdateChannel)
		channels.DELETE("/:id", requireAuth, channelHandler.DeleteChannel)
	}

	comments := api.Group("/comments")
	{
		comments.GET("", requireAuth, requireAdmin, commentHandler.ListRecentComments)
		comments.GET("/:videoId", commentHandler.ListVideoComments)
		comments.POST("", requireAuth, commentHandler.CreateComment)
		comments.DELETE("/:id", requireAuth, commentHandler.DeleteComment)
		comments.POST("/:id/like", requireAuth, commentHandler.LikeComment)
		comments.POST("/:id/reply", requireAuth, commentHandler.ReplyComment)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.ListCategories)
		categories.POST("", requireAuth, requireAdmin, categoryHandler.CreateCategory)
		categories.PUT("/:id", requireAuth, requireAdmin, categoryHandler.UpdateCategory)
		categories.DELETE("/:id", requireAuth, requireAdmin, categoryHandler.DeleteCategory)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", postHandler.ListPosts)
		posts.POST("", requireAuth, postHandler.CreatePost)
		posts.DELETE("/:id", requireAuth, postHandler.DeletePost)
		posts.POST("/:id/like", requireAuth, postHandler.LikePost)
	}

	subscriptions := api.Group("/subscriptions", requireAuth)
	{
		subscriptions.POST("/subscribe", subscriptionHandler.Subscribe)
		subscriptions.GET("/check/:userId/:channelId", subscriptionHandler.CheckSubscription)
		subscriptions.GET("/:userId", subscriptionHandler.ListSubscriptions)
	}

	history := api.Group("/history", requireAuth)
	{
		history.GET("/:userId", historyHandler.GetHistory)
		history.DELETE("/:userId", historyHandler.ClearHistory)
		history.DELETE("/:userId/:videoId", historyHandler.RemoveFromHistory)
	}

	playlists := api.Group("/playlists")
	{
		playlists.GET("/user/:userId", optionalAuth, playlistHandler.ListUserPlaylists)
		playlists.GET("/:id", optionalAuth, playlistHandler.GetPlaylist)
		playlists.POST("", requireAuth, playlistHandler.CreatePlaylist)
		playlists.PATCH("/:id/add", requireAuth, playlistHandler.AddVideo)
		playlists.PATCH("/:id/remove", requireAuth, playlistHandler.RemoveVideo)
		playlists.DELETE("/:id", requireAuth, playlistHandler.DeletePlaylist)
	}

	search := api.Group("/search")
	{
		search.GET("", searchHandler.Search)
		search.GET("/suggestions", searchHandler.Suggestions)
	}

	admin := api.Group("/admin", requireAuth, requireAdmin)
	{
		admin.GET("/stats", adminHandler.Stats)
		admin.GET("/videos", adminHandler.Videos)
		admin.GET("/channels", adminHandler.Channels)
		admin.GET("/users", adminHandler.Users)
		admin.GET("/reports", adminHandler.Reports)
	}

	api.POST("/upload", requireAuth, uploadHandler.Upload)
	api.GET("/notifications", requireAuth, notificationHandler.ListNotifications)

	return r
}

// bootstrapAdmin creates or promotes the configured admin account.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, log *logger.Logger, authUseCase usecase.AuthUseCase) {
	if !cfg.AdminBootstrapEnabled() {
		return
	}

	log.Warn("Admin bootstrap is enabled for %s", cfg.AdminEmail)
	if _, err := authUseCase.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Error("Admin bootstrap failed: %v", err)
	}
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client, s3Client *s3.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret).WithTTL(cfg.JWTTTL)

	deps := Deps{DB: db, Redis: redisClient, JWT: jwtService}
	// Typed nils would pass the nil checks inside the use cases.
	if queueClient != nil {
		deps.Events = queueClient
	}
	if s3Client != nil {
		deps.Storage = s3Client
	}

	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	bootstrapAdmin(bootstrapCtx, cfg, log, usecase.NewAuthUseCase(persistent.NewUserRepository(db), jwtService, log))
	cancelBootstrap()

	r := NewRouter(cfg, log, deps)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("API starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down API...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if queueClient != nil {
		queueClient.Close()
	}

	log.Info("API exited")
}
