package api

import (
	"net/http"

	"stravarace-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	// Strava webhook callback lives outside /api; the path is registered
	// with Strava when the subscription is created.
	r.GET("/webhook", h.webhookHandler.Verify)
	r.POST("/webhook", h.webhookHandler.Receive)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/strava", h.authHandler.StravaSignIn)
			auth.GET("/me", delivery.AuthMiddleware(h.authUsecase), h.authHandler.Me)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			users.GET("/starred", h.authHandler.GetStarredSegments)
			users.GET("/:id", h.authHandler.GetUser)
			users.DELETE("/:id", h.authHandler.DeleteUser)
		}

		// Event routes (protected)
		events := api.Group("/events")
		events.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			events.GET("", h.eventHandler.GetAllEvents)
			events.POST("", h.eventHandler.CreateEvent)
			events.GET("/:id", h.eventHandler.GetEvent)
			events.PUT("/:id/competitors", h.eventHandler.AddCompetitors)
			events.DELETE("/:id/competitors", h.eventHandler.RemoveCompetitors)
			events.PUT("/:id/segments", h.eventHandler.AddSegments)
			events.DELETE("/:id/segments", h.eventHandler.RemoveSegments)
			events.PUT("/:id/results", h.eventHandler.AddResult)
		}
	}
}
