package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	postHTTP "swarmpost/internal/controller/http"
	"swarmpost/internal/model"
	"swarmpost/internal/repo"
	"swarmpost/internal/repo/dynamo"
	"swarmpost/internal/repo/memory"
	"swarmpost/internal/repo/persistent"
	"swarmpost/internal/storage"
	"swarmpost/internal/usecase"
	"swarmpost/pkg/cache"
	"swarmpost/pkg/config"
	"swarmpost/pkg/database"
	"swarmpost/pkg/jwt"
	"swarmpost/pkg/logger"
	"swarmpost/pkg/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Run wires one repository backend and one storage backend from the
// configuration, bootstraps the chosen store, and serves until
// SIGINT/SIGTERM. Backend selection happens exactly once, here.
func Run(cfg *config.Config, log *logger.Logger) error {
	postRepo, cleanup, err := buildRepository(cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	imageStorage, err := buildStorage(cfg, log)
	if err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient, err = cache.NewRedisClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	postUseCase := usecase.NewPostUseCase(postRepo, imageStorage, log)
	postHandler := postHTTP.NewPostHandler(postUseCase, log)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Locally stored uploads are served straight from disk; S3 references
	// are absolute URLs and never hit this route.
	if !cfg.S3Enabled {
		r.Static("/uploads", cfg.UploadsDir)
	}

	api := r.Group("/api/v1")
	if cfg.AuthEnabled {
		api.Use(middleware.AuthMiddleware(jwt.NewService(cfg.JWTSecret)))
	}
	if redisClient != nil {
		api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	}

	{
		api.POST("/posts", postHandler.CreatePost)
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/posts/:id", postHandler.GetPost)
		api.PUT("/posts/:id", postHandler.UpdatePost)
		api.DELETE("/posts/:id", postHandler.DeletePost)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Post service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down post service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Post service exited")
	return nil
}

// buildRepository picks exactly one repository backend: postgres first,
// then DynamoDB, then in-memory. The returned cleanup closes whatever
// connection the backend holds.
func buildRepository(cfg *config.Config, log *logger.Logger) (repo.PostRepository, func(), error) {
	switch {
	case cfg.PostgresEnabled:
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		// Create-if-missing only; no migration history.
		if err := db.AutoMigrate(&model.PostModel{}); err != nil {
			return nil, nil, fmt.Errorf("failed to create posts table: %w", err)
		}
		log.Info("Using postgres repository")

		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return persistent.NewPostRepository(db), cleanup, nil

	case cfg.DynamoDBEnabled:
		client, err := dynamo.NewClient(cfg)
		if err != nil {
			return nil, nil, err
		}

		created, err := dynamo.EnsureTable(client, cfg.DynamoTableName)
		if err != nil {
			return nil, nil, err
		}
		if created {
			log.Info("Created DynamoDB table %s, waiting for it to become active", cfg.DynamoTableName)
		}
		// Blocking readiness gate: no request is accepted until the table
		// is ACTIVE or the deadline makes startup fail.
		if err := dynamo.WaitForTableActive(context.Background(), client, cfg.DynamoTableName, cfg.DynamoWaitTimeout); err != nil {
			return nil, nil, fmt.Errorf("dynamodb table not ready: %w", err)
		}
		log.Info("Using DynamoDB repository with table %s", cfg.DynamoTableName)
		return dynamo.NewPostRepository(client, cfg.DynamoTableName), func() {}, nil

	default:
		log.Info("Using in-memory repository")
		return memory.NewPostRepository(), func() {}, nil
	}
}

// buildStorage picks the storage backend independently of the
// repository choice.
func buildStorage(cfg *config.Config, log *logger.Logger) (storage.ImageStorage, error) {
	if cfg.S3Enabled {
		log.Info("Using S3 storage with bucket %s", cfg.S3BucketName)
		return storage.NewS3ImageStorage(cfg)
	}
	log.Info("Using local storage at %s", cfg.UploadsDir)
	return storage.NewLocalImageStorage(cfg.UploadsDir)
}
