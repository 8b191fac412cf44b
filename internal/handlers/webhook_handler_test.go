package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/balajimuthu0107/codance/internal/handlers"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
	"github.com/balajimuthu0107/codance/internal/services"
)

func setupWebhookRouter(secret string) (*gin.Engine, *services.InboundBuffer) {
	gin.SetMode(gin.TestMode)

	buffer := services.NewInboundBuffer(services.InboundBufferCapacity)
	handler := handlers.NewWebhookHandler(buffer, secret, logger.NewNop())

	router := gin.New()
	router.POST("/api/webhooks/n8n", handler.Receive)
	router.GET("/api/webhooks/n8n", handler.Status)
	return router, buffer
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	router, buffer := setupWebhookRouter("topsecret")

	body := `{"type":"workflow.done","data":{"n":1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/n8n", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-n8n-secret", "wrong")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	if buffer.Len() != 0 {
		t.Error("rejected requests must not touch the buffer")
	}

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Unauthorized" {
		t.Errorf("expected Unauthorized error, got %v", resp["error"])
	}
}

func TestWebhookAcceptsWithSecret(t *testing.T) {
	router, buffer := setupWebhookRouter("topsecret")

	body := `{"type":"workflow.done","data":{"n":1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/n8n", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-n8n-secret", "topsecret")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if buffer.Len() != 1 {
		t.Errorf("expected 1 buffered event, got %d", buffer.Len())
	}
}

func TestWebhookNoSecretConfigured(t *testing.T) {
	router, buffer := setupWebhookRouter("")

	body := `{"type":"anything","data":{}}`
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/n8n", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with no secret configured, got %d", w.Code)
	}
	if buffer.Len() != 1 {
		t.Errorf("expected 1 buffered event, got %d", buffer.Len())
	}
}

func TestWebhookInvalidJSON(t *testing.T) {
	router, _ := setupWebhookRouter("")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/n8n", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["error"] != "Invalid JSON body" {
		t.Errorf("expected invalid-JSON error, got %v", resp["error"])
	}
}

func TestWebhookInvalidPayload(t *testing.T) {
	router, buffer := setupWebhookRouter("")

	cases := []string{
		`{"data":{"n":1}}`,
		`{"type":"workflow.done"}`,
		`{"type":42,"data":{"n":1}}`,
		`{"type":"workflow.done","data":[1,2]}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/webhooks/n8n", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, w.Code)
		}

		var resp map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["error"] != "Invalid event payload" {
			t.Errorf("%s: expected invalid-payload error, got %v", body, resp["error"])
		}
	}
	if buffer.Len() != 0 {
		t.Error("invalid payloads must not be buffered")
	}
}

func TestWebhookAcceptsEmptyType(t *testing.T) {
	router, buffer := setupWebhookRouter("")

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/n8n",
		bytes.NewBufferString(`{"type":"","data":{}}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("an empty type string is still a valid payload, got %d", w.Code)
	}
	if buffer.Len() != 1 {
		t.Errorf("expected the event to be buffered, got %d entries", buffer.Len())
	}
}

func TestWebhookStatus(t *testing.T) {
	router, buffer := setupWebhookRouter("")

	for i := 0; i < 12; i++ {
		body := `{"type":"workflow.done","data":{"n":1}}`
		req := httptest.NewRequest(http.MethodPost, "/api/webhooks/n8n", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
	if buffer.Len() != 12 {
		t.Fatalf("expected 12 buffered events, got %d", buffer.Len())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/webhooks/n8n", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		OK      bool                     `json:"ok"`
		Message string                   `json:"message"`
		Events  []map[string]interface{} `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid status body: %v", err)
	}
	if !resp.OK || resp.Message != "n8n webhook up" {
		t.Errorf("unexpected status envelope: %+v", resp)
	}
	if len(resp.Events) != 10 {
		t.Errorf("status should return at most 10 recent events, got %d", len(resp.Events))
	}
}
