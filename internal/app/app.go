package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	postHTTP "clipstream/internal/controller/http"
	"clipstream/internal/media"
	"clipstream/internal/repo/persistent"
	"clipstream/internal/repo/rpc"
	"clipstream/internal/usecase"
	"clipstream/pkg/cache"
	"clipstream/pkg/config"
	"clipstream/pkg/database"
	"clipstream/pkg/jwt"
	"clipstream/pkg/logger"
	"clipstream/pkg/middleware"
	"clipstream/pkg/queue"
	"clipstream/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "clipstream/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
	quit        chan os.Signal
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v", err)
		return nil, err
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	// Repositories
	postRepo := persistent.NewPostRepository(a.db)
	musicRepo := persistent.NewMusicRepository(a.db)
	hashtagRepo := persistent.NewHashtagRepository(a.db)

	// Identity service client, cached when redis is available
	var users rpc.UserDirectory = rpc.NewUserDirectory(a.queueClient, a.cfg.UserRPCQueue, a.cfg.UserRPCTimeout)
	if a.redisClient != nil {
		users = rpc.NewCachedUserDirectory(users, a.redisClient, a.cfg.UserCacheTTL)
	}

	// Media pipeline
	transcoder := media.NewFFmpeg(a.cfg.FFmpegBinary, a.cfg.UploadDir)
	pipeline := media.NewPipeline(transcoder, a.s3Client, musicRepo, a.log)

	// Use cases
	hashtags := usecase.NewHashtagResolver(hashtagRepo)
	postUseCase := usecase.NewPostUseCase(postRepo, hashtags, pipeline, users, a.queueClient, a.log)

	// HTTP handlers
	postHandler := postHTTP.NewPostHandler(postUseCase, a.cfg.UploadDir, a.log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(a.jwtService))
	if a.redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(a.redisClient, 100, time.Minute))
	}

	{
		api.POST("/posts", postHandler.CreatePost)
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.DELETE("/posts/:id", postHandler.DeletePost)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Post service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	a.quit = make(chan os.Signal, 1)
	signal.Notify(a.quit, syscall.SIGINT, syscall.SIGTERM)

	return nil
}

func (a *App) Wait() {
	<-a.quit
	a.log.Info("Shutting down post service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		a.queueClient.Close()
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Post service exited")
	return nil
}
