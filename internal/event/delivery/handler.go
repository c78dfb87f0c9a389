package delivery

import (
	"net/http"
	"time"

	authdelivery "stravarace-backend/internal/auth/delivery"
	eventdto "stravarace-backend/internal/event/dto"
	"stravarace-backend/internal/event/usecase"
	"stravarace-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventUsecase usecase.EventUsecase
}

func NewEventHandler(eventUsecase usecase.EventUsecase) *EventHandler {
	return &EventHandler{
		eventUsecase: eventUsecase,
	}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req eventdto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.CreatorID = authdelivery.CurrentUser(c).ID

	event, err := h.eventUsecase.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) GetAllEvents(c *gin.Context) {
	events, err := h.eventUsecase.GetAllEvents()
	if err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventUsecase.GetEvent(c.Param("id"))
	if err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) AddCompetitors(c *gin.Context) {
	eventID := c.Param("id")

	var req eventdto.ModifyCompetitorsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Competitors) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "competitors are required"})
		return
	}

	if !h.callerIsCreator(c, eventID) {
		return
	}

	if err := h.eventUsecase.AddCompetitors(eventID, req.Competitors); err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "competitors added"})
}

func (h *EventHandler) RemoveCompetitors(c *gin.Context) {
	eventID := c.Param("id")

	var req eventdto.ModifyCompetitorsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Competitors) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "competitors are required"})
		return
	}

	if !h.callerIsCreator(c, eventID) {
		return
	}

	if err := h.eventUsecase.RemoveCompetitors(eventID, req.Competitors); err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *EventHandler) AddSegments(c *gin.Context) {
	eventID := c.Param("id")

	var req eventdto.ModifySegmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Segments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "segments are required"})
		return
	}

	if !h.callerIsCreator(c, eventID) {
		return
	}

	actorID := authdelivery.CurrentUser(c).ID
	if err := h.eventUsecase.AddSegments(c.Request.Context(), actorID, eventID, req.Segments); err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "segments added"})
}

func (h *EventHandler) RemoveSegments(c *gin.Context) {
	eventID := c.Param("id")

	var req eventdto.ModifySegmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Segments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "segments are required"})
		return
	}

	if !h.callerIsCreator(c, eventID) {
		return
	}

	if err := h.eventUsecase.RemoveSegments(eventID, req.Segments); err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// AddResult records a result for the authenticated competitor. The event
// window is enforced here; the engine only validates membership and
// duplicates.
func (h *EventHandler) AddResult(c *gin.Context) {
	eventID := c.Param("id")

	var req eventdto.AddResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventUsecase.GetEvent(eventID)
	if err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	if now.Before(event.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event not started yet"})
		return
	}
	if now.After(event.EndDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event already ended"})
		return
	}

	userID := authdelivery.CurrentUser(c).ID
	if err := h.eventUsecase.AddResult(userID, eventID, req.SegmentID, req.Time); err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "result recorded"})
}

// callerIsCreator writes the error response itself when the check fails.
func (h *EventHandler) callerIsCreator(c *gin.Context, eventID string) bool {
	event, err := h.eventUsecase.GetEvent(eventID)
	if err != nil {
		c.JSON(apperr.StatusCode(err), gin.H{"error": err.Error()})
		return false
	}
	if event.CreatorID != authdelivery.CurrentUser(c).ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the event creator can modify the event"})
		return false
	}
	return true
}
