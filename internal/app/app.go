package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	listingHTTP "github.com/waltonseymour/Bazaar/internal/controller/http"
	"github.com/waltonseymour/Bazaar/internal/repo/persistent"
	"github.com/waltonseymour/Bazaar/internal/usecase"
	"github.com/waltonseymour/Bazaar/pkg/config"
	"github.com/waltonseymour/Bazaar/pkg/jwt"
	"github.com/waltonseymour/Bazaar/pkg/logger"
	"github.com/waltonseymour/Bazaar/pkg/middleware"
	"github.com/waltonseymour/Bazaar/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/waltonseymour/Bazaar/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	postRepo := persistent.NewPostRepository(db)
	photoRepo := persistent.NewPhotoRepository(db)
	categoryRepo := persistent.NewCategoryRepository(db)

	// Initialize use cases
	listingUseCase := usecase.NewListingUseCase(postRepo, photoRepo, categoryRepo, s3Client, cfg.PresignTTL, log)

	// Initialize HTTP handlers
	postHandler := listingHTTP.NewPostHandler(listingUseCase, log)
	photoHandler := listingHTTP.NewPhotoHandler(listingUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/")
	api.Use(middleware.AuthMiddleware(jwtService))
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	{
		api.GET("/posts", postHandler.ListPosts)
		// lives under /search because gin cannot mix a static segment
		// with the :id wildcard under /posts
		api.GET("/search/:query", postHandler.SearchPosts)
		api.POST("/posts", postHandler.CreatePost)
		api.GET("/posts/:id", postHandler.GetPost)
		api.PUT("/posts/:id", postHandler.UpdatePost)
		api.DELETE("/posts/:id", postHandler.DeletePost)
		api.POST("/posts/:id/photos", photoHandler.IssueUploadURLs)
		api.GET("/posts/:id/photos", photoHandler.ListPhotoURLs)
		api.GET("/posts/:id/photos/:photoID", photoHandler.GetPhoto)
		api.DELETE("/posts/:id/photos/:photoID", photoHandler.DeletePhoto)
		api.GET("/categories", postHandler.ListCategories)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Listing service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down listing service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Listing service exited")
}
