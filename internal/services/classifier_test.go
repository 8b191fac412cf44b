package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/balajimuthu0107/codance/internal/config"
	"github.com/balajimuthu0107/codance/internal/events"
	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
	"github.com/balajimuthu0107/codance/internal/services"
)

type failingClassifier struct{}

func (f *failingClassifier) Name() string { return "failing" }

func (f *failingClassifier) Classify(_ context.Context, _, _ string) (*models.Classification, error) {
	return nil, errors.New("provider unavailable")
}

type fixedClassifier struct {
	result models.Classification
}

func (f *fixedClassifier) Name() string { return "fixed" }

func (f *fixedClassifier) Classify(_ context.Context, _, _ string) (*models.Classification, error) {
	out := f.result
	return &out, nil
}

func newTestForwarder() *services.Forwarder {
	return services.NewForwarder(config.N8NConfig{}, logger.NewNop())
}

func TestClassifierFallsThroughToHeuristic(t *testing.T) {
	bus := events.NewMemoryBus()
	classifier := services.NewClassifier(
		[]services.ClassificationProvider{&failingClassifier{}},
		bus, newTestForwarder(), logger.NewNop())

	result := classifier.Classify(context.Background(), "my payment failed", "email")

	if result == nil {
		t.Fatal("classify must always return a result")
	}
	if result.Source != models.SourceMock {
		t.Errorf("expected heuristic source after provider failure, got %s", result.Source)
	}
	if result.Priority != models.PriorityUrgent {
		t.Errorf("expected urgent priority, got %s", result.Priority)
	}
	if result.Error == "" {
		t.Error("expected the provider error to be attached to the fallback result")
	}
}

func TestClassifierUsesFirstHealthyProvider(t *testing.T) {
	bus := events.NewMemoryBus()
	want := models.Classification{
		Source:     models.SourceOpenAI,
		Categories: []string{"billing"},
		Priority:   models.PriorityHigh,
		Sentiment:  models.SentimentNegative,
		Entities:   []string{},
	}
	classifier := services.NewClassifier(
		[]services.ClassificationProvider{&failingClassifier{}, &fixedClassifier{result: want}},
		bus, newTestForwarder(), logger.NewNop())

	result := classifier.Classify(context.Background(), "charged twice", "email")

	if result.Source != models.SourceOpenAI {
		t.Errorf("expected the second provider's result, got source %s", result.Source)
	}
	if result.Error != "" {
		t.Errorf("successful provider result should carry no error, got %q", result.Error)
	}
}

func TestClassifierPublishesEvent(t *testing.T) {
	bus := events.NewMemoryBus()
	classifier := services.NewClassifier(nil, bus, newTestForwarder(), logger.NewNop())

	var received []models.AppEvent
	unsubscribe := bus.Subscribe(func(event models.AppEvent) {
		received = append(received, event)
	})
	defer unsubscribe()

	classifier.Classify(context.Background(), "hello", "chat")

	if len(received) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(received))
	}
	if received[0].Type != models.EventClassificationCreated {
		t.Errorf("expected %s event, got %s", models.EventClassificationCreated, received[0].Type)
	}
	if received[0].Data["companyEmail"] != models.CompanyEmail {
		t.Error("event payload should carry the company email")
	}
	if received[0].Data["channel"] != "chat" {
		t.Errorf("event payload should echo the channel, got %v", received[0].Data["channel"])
	}
}

type failingResponder struct{}

func (f *failingResponder) Name() string { return "failing" }

func (f *failingResponder) Draft(_ context.Context, _ *models.RespondRequest) (*models.Draft, error) {
	return nil, errors.New("workflow timed out")
}

func TestResponderFallsThroughToHeuristic(t *testing.T) {
	bus := events.NewMemoryBus()
	responder := services.NewResponder(
		[]services.DraftProvider{&failingResponder{}},
		bus, newTestForwarder(), logger.NewNop())

	draft := responder.Respond(context.Background(), &models.RespondRequest{
		Message: "my payment failed",
	})

	if draft == nil {
		t.Fatal("respond must always return a draft")
	}
	if draft.Source != models.SourceMock {
		t.Errorf("expected heuristic draft after provider failure, got %s", draft.Source)
	}
	if draft.Reply == "" {
		t.Error("fallback draft must contain a reply")
	}
	if draft.Error == "" {
		t.Error("expected the provider error to be attached to the fallback draft")
	}
}

func TestResponderPublishesEvent(t *testing.T) {
	bus := events.NewMemoryBus()
	responder := services.NewResponder(nil, bus, newTestForwarder(), logger.NewNop())

	var eventType string
	unsubscribe := bus.Subscribe(func(event models.AppEvent) {
		eventType = event.Type
	})
	defer unsubscribe()

	responder.Respond(context.Background(), &models.RespondRequest{Message: "refund please"})

	if eventType != models.EventResponseDrafted {
		t.Errorf("expected %s event, got %s", models.EventResponseDrafted, eventType)
	}
}
