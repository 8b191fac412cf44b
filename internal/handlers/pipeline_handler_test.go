package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/balajimuthu0107/codance/internal/handlers"
	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
)

type mockClassifier struct{}

func (m *mockClassifier) Classify(_ context.Context, _, channel string) *models.Classification {
	return &models.Classification{
		Source:     models.SourceMock,
		Categories: []string{"billing"},
		Priority:   models.PriorityMedium,
		Sentiment:  models.SentimentNegative,
		Entities:   []string{},
	}
}

type mockResponder struct{}

func (m *mockResponder) Respond(_ context.Context, _ *models.RespondRequest) *models.Draft {
	return &models.Draft{
		Source:   models.SourceMock,
		Reply:    "Thanks for reaching out!",
		Tone:     "professional",
		Language: "en",
	}
}

func setupPipelineRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := handlers.NewPipelineHandler(&mockClassifier{}, &mockResponder{}, logger.NewNop())

	router := gin.New()
	router.POST("/api/classify", handler.Classify)
	router.POST("/api/respond", handler.Respond)
	return router
}

func TestClassifyEndpoint(t *testing.T) {
	router := setupPipelineRouter()

	w := postJSON(router, "/api/classify", `{"message":"charged twice","channel":"email"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.Classification
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Source != models.SourceMock {
		t.Errorf("expected source mock, got %s", result.Source)
	}
	if len(result.Categories) != 1 || result.Categories[0] != "billing" {
		t.Errorf("unexpected categories: %v", result.Categories)
	}
}

func TestClassifyRequiresMessage(t *testing.T) {
	router := setupPipelineRouter()

	w := postJSON(router, "/api/classify", `{"channel":"email"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a message, got %d", w.Code)
	}
}

func TestRespondEndpoint(t *testing.T) {
	router := setupPipelineRouter()

	w := postJSON(router, "/api/respond", `{"message":"need help","sentiment":"neutral"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var draft models.Draft
	if err := json.Unmarshal(w.Body.Bytes(), &draft); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if draft.Reply == "" {
		t.Error("expected a non-empty reply")
	}
}

func TestRespondRequiresMessage(t *testing.T) {
	router := setupPipelineRouter()

	w := postJSON(router, "/api/respond", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a message, got %d", w.Code)
	}
}
