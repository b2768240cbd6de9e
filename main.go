package main

import (
	"log"
	"os"

	api "vidtube-backend/cmd/api"
	userdomain "vidtube-backend/internal/user/domain"
	userRepo "vidtube-backend/internal/user/repository"
	userUsecase "vidtube-backend/internal/user/usecase"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/database"
	"vidtube-backend/pkg/media"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&userdomain.User{}, &userdomain.Subscription{}, &userdomain.WatchEvent{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Temp dir for multipart uploads before they go to the media store
	if err := os.MkdirAll(cfg.TempUploadDir, 0o755); err != nil {
		log.Fatal("Failed to create temp upload dir:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := userRepo.NewUserRepository(db)
	subscriptionRepository := userRepo.NewSubscriptionRepository(db)

	// Initialize media uploader
	uploader := media.NewS3Uploader(cfg)

	// Initialize use cases
	tokenService := userUsecase.NewTokenService(cfg)
	sessionUsecase := userUsecase.NewSessionUsecase(userRepository, tokenService, uploader)
	profileUsecase := userUsecase.NewProfileUsecase(userRepository, subscriptionRepository, uploader)

	// Initialize HTTP handler
	handler := api.NewHandler(sessionUsecase, profileUsecase, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
