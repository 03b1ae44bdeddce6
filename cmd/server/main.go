package main

import (
	"github.com/waltonseymour/Bazaar/internal/app"
	"github.com/waltonseymour/Bazaar/pkg/cache"
	"github.com/waltonseymour/Bazaar/pkg/config"
	"github.com/waltonseymour/Bazaar/pkg/database"
	"github.com/waltonseymour/Bazaar/pkg/logger"
	"github.com/waltonseymour/Bazaar/pkg/s3"
)

// @title           Bazaar Listing API
// @version         1.0
// @description     Local marketplace listing service: post CRUD and presigned photo upload.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	app.Run(cfg, log, db, s3Client, redisClient)
}
