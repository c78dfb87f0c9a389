package main

import (
	"context"
	"log"

	api "stravarace-backend/cmd/api"
	authdomain "stravarace-backend/internal/auth/domain"
	authRepo "stravarace-backend/internal/auth/repository"
	authUsecase "stravarace-backend/internal/auth/usecase"
	eventdomain "stravarace-backend/internal/event/domain"
	eventRepo "stravarace-backend/internal/event/repository"
	eventUsecase "stravarace-backend/internal/event/usecase"
	webhookUsecase "stravarace-backend/internal/webhook/usecase"
	"stravarace-backend/pkg/config"
	"stravarace-backend/pkg/database"
	"stravarace-backend/pkg/strava"
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
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.Token{},
		&eventdomain.Segment{},
		&eventdomain.Event{},
		&eventdomain.EventCompetitor{},
		&eventdomain.EventSegment{},
		&eventdomain.Result{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	tokenRepository := authRepo.NewTokenRepository(db)
	eventRepository := eventRepo.NewEventRepository(db)
	segmentRepository := eventRepo.NewSegmentRepository(db)

	// Strava API client and per-user token manager
	stravaClient := strava.NewClient(cfg.StravaAPIBaseURL)
	tokenManager := authUsecase.NewTokenManager(tokenRepository, cfg)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, tokenRepository, stravaClient, cfg)
	segmentResolver := eventUsecase.NewSegmentResolver(segmentRepository, tokenManager, stravaClient)
	eventUsecaseInstance := eventUsecase.NewEventUsecase(eventRepository, userRepository, segmentResolver)
	ingestor := webhookUsecase.NewIngestor(userRepository, eventRepository, tokenManager, stravaClient, eventUsecaseInstance)

	// Register the webhook subscription with Strava if a callback URL is configured
	if cfg.WebhookCallbackURL != "" {
		if err := stravaClient.SubscribeWebhook(context.Background(), cfg.StravaClientID, cfg.StravaClientSecret, cfg.WebhookCallbackURL, cfg.WebhookVerifyToken); err != nil {
			log.Printf("[WARN] Failed to register webhook subscription: %v", err)
		} else {
			log.Printf("[Webhook] Subscription registered for %s", cfg.WebhookCallbackURL)
		}
	}

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, tokenManager, eventUsecaseInstance, ingestor, stravaClient, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
