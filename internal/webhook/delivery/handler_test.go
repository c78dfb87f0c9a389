package delivery_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stravarace-backend/internal/webhook/delivery"
	"stravarace-backend/internal/webhook/usecase"
	"stravarace-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{WebhookVerifyToken: "verify-me"}
	// The ingestor's collaborators are never reached in these tests: the
	// payloads are filtered out before any lookup happens.
	handler := delivery.NewWebhookHandler(usecase.NewIngestor(nil, nil, nil, nil, nil), cfg)

	r := gin.New()
	r.GET("/webhook", handler.Verify)
	r.POST("/webhook", handler.Receive)
	return r
}

func TestVerify_EchoesChallenge(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.challenge=abc123&hub.verify_token=verify-me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"hub.challenge":"abc123"`) {
		t.Fatalf("challenge not echoed: %s", w.Body.String())
	}
}

func TestVerify_RejectsBadToken(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=subscribe&hub.challenge=abc123&hub.verify_token=wrong", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestVerify_RejectsNonSubscribeMode(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodGet, "/webhook?hub.mode=unsubscribe&hub.challenge=abc123&hub.verify_token=verify-me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestReceive_AcksFilteredNotification(t *testing.T) {
	r := newRouter()

	body := `{"object_type":"activity","object_id":123,"aspect_type":"update","owner_id":2,"event_time":1756600000}`
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestReceive_RejectsMalformedPayload(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
