package main

import (
	"fmt"
	"math/rand"

	"github.com/waltonseymour/Bazaar/internal/model"
	"github.com/waltonseymour/Bazaar/pkg/config"
	"github.com/waltonseymour/Bazaar/pkg/database"
	"github.com/waltonseymour/Bazaar/pkg/jwt"
	"github.com/waltonseymour/Bazaar/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Demo data centered on downtown Seattle.
const (
	seedLatitude  = 47.6062
	seedLongitude = -122.3321
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	if err := seedDatabase(db, jwtService, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, jwtService *jwt.Service, log *logger.Logger) error {
	categoryNames := []string{"Furniture", "Electronics", "Bikes", "Books", "Free Stuff"}
	categoryIDs := make([]string, 0, len(categoryNames))

	for _, name := range categoryNames {
		var existing model.CategoryModel
		result := db.Where("name = ?", name).First(&existing)
		if result.Error == nil {
			categoryIDs = append(categoryIDs, existing.ID)
			continue
		}

		category := &model.CategoryModel{Name: name}
		if err := db.Create(category).Error; err != nil {
			return fmt.Errorf("failed to create category %s: %w", name, err)
		}
		log.Info("Created category: %s", name)
		categoryIDs = append(categoryIDs, category.ID)
	}

	testUsers := []struct {
		email    string
		password string
	}{
		{"alice@test.com", "password123"},
		{"bob@test.com", "password123"},
		{"charlie@test.com", "password123"},
	}

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &model.UserModel{
			Email:    userData.email,
			Password: string(hashedPassword),
		}

		var existingUser model.UserModel
		result := db.Where("email = ?", user.Email).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Email)
			user = &existingUser
		} else {
			if err := db.Create(user).Error; err != nil {
				log.Error("Failed to create user %s: %v", user.Email, err)
				continue
			}
			log.Info("Created user: %s", user.Email)

			postsCount := 3
			for i := 0; i < postsCount; i++ {
				post := &model.PostModel{
					UserID:      user.ID,
					Title:       fmt.Sprintf("Demo listing %d from %s", i+1, user.Email),
					Description: "Lightly used, pickup only.",
					Price:       float64(rand.Intn(20)) * 5,
					Latitude:    seedLatitude + (rand.Float64()-0.5)*0.05,
					Longitude:   seedLongitude + (rand.Float64()-0.5)*0.05,
					CategoryID:  categoryIDs[rand.Intn(len(categoryIDs))],
				}
				if err := db.Create(post).Error; err != nil {
					log.Error("Failed to create post for user %s: %v", user.Email, err)
				}
			}
		}

		token, err := jwtService.GenerateToken(user.ID, "member")
		if err != nil {
			log.Error("Failed to generate token for %s: %v", user.Email, err)
			continue
		}
		log.Info("Token for %s: %s", user.Email, token)
	}

	return nil
}
