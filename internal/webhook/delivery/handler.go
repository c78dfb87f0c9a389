package delivery

import (
	"log"
	"net/http"

	webhookdto "stravarace-backend/internal/webhook/dto"
	"stravarace-backend/internal/webhook/usecase"
	"stravarace-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	ingestor *usecase.Ingestor
	config   *config.Config
}

func NewWebhookHandler(ingestor *usecase.Ingestor, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{
		ingestor: ingestor,
		config:   cfg,
	}
}

// Verify answers Strava's subscription handshake: echo the challenge only
// for a subscribe request carrying the configured verify token.
func (h *WebhookHandler) Verify(c *gin.Context) {
	var req webhookdto.SubscriptionValidation
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid verification request"})
		return
	}

	if req.HubMode != "subscribe" || req.HubVerifyToken != h.config.WebhookVerifyToken {
		c.JSON(http.StatusForbidden, gin.H{"error": "verification failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hub.challenge": req.HubChallenge})
}

// Receive acknowledges the delivery with 200 regardless of ingestion outcome;
// Strava redelivers on anything else and the pipeline is idempotent anyway.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var notification webhookdto.ActivityNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}

	if err := h.ingestor.HandleActivityEvent(c.Request.Context(), &notification); err != nil {
		log.Printf("[Webhook] Ingestion error for object %d: %v", notification.ObjectID, err)
	}

	c.Status(http.StatusOK)
}
