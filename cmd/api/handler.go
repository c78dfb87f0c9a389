package api

import (
	"net/http"

	authDelivery "stravarace-backend/internal/auth/delivery"
	authUsecase "stravarace-backend/internal/auth/usecase"
	eventDelivery "stravarace-backend/internal/event/delivery"
	eventUsecasePkg "stravarace-backend/internal/event/usecase"
	webhookDelivery "stravarace-backend/internal/webhook/delivery"
	webhookUsecase "stravarace-backend/internal/webhook/usecase"
	"stravarace-backend/pkg/config"
	"stravarace-backend/pkg/strava"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authHandler    *authDelivery.AuthHandler
	eventHandler   *eventDelivery.EventHandler
	webhookHandler *webhookDelivery.WebhookHandler
	authUsecase    authUsecase.AuthUsecase
	config         *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, tokens authUsecase.AccessTokenProvider, eventUc eventUsecasePkg.EventUsecase, ingestor *webhookUsecase.Ingestor, stravaClient *strava.Client, cfg *config.Config) *Handler {
	return &Handler{
		authHandler:    authDelivery.NewAuthHandler(authUc, tokens, stravaClient),
		eventHandler:   eventDelivery.NewEventHandler(eventUc),
		webhookHandler: webhookDelivery.NewWebhookHandler(ingestor, cfg),
		authUsecase:    authUc,
		config:         cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	SetupRoutes(r, h)

	return r.Run(addr)
}
