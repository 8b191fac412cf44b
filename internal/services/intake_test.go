package services_test

import (
	"context"
	"testing"

	"github.com/balajimuthu0107/codance/internal/events"
	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
	"github.com/balajimuthu0107/codance/internal/services"
)

func newTestIntake(bus events.Bus) *services.IntakeOrchestrator {
	forwarder := newTestForwarder()
	log := logger.NewNop()
	classifier := services.NewClassifier(nil, bus, forwarder, log)
	responder := services.NewResponder(nil, bus, forwarder, log)
	sender := services.NewSender(bus, forwarder, log)
	return services.NewIntakeOrchestrator(classifier, responder, sender, bus, forwarder, log)
}

func TestIntakeFullPipeline(t *testing.T) {
	bus := events.NewMemoryBus()
	intake := newTestIntake(bus)

	var published []string
	unsubscribe := bus.Subscribe(func(event models.AppEvent) {
		published = append(published, event.Type)
	})
	defer unsubscribe()

	result := intake.Intake(context.Background(), &models.IntakeRequest{
		From:    "customer@example.com",
		Subject: "Payment problem",
		Message: "my payment failed",
	})

	if result.Intake.Channel != models.ChannelEmail {
		t.Errorf("expected default email channel, got %s", result.Intake.Channel)
	}
	if result.Intake.CompanyEmail != models.CompanyEmail {
		t.Errorf("intake summary should carry the company email, got %s", result.Intake.CompanyEmail)
	}
	if result.Classification == nil || result.Classification.Priority != models.PriorityUrgent {
		t.Error("expected an urgent classification for a failed-payment message")
	}
	if result.Draft == nil || result.Draft.Reply == "" {
		t.Error("expected a non-empty draft")
	}

	receipt, ok := result.AutoSend.(*models.SendReceipt)
	if !ok {
		t.Fatalf("expected an auto-send receipt, got %T", result.AutoSend)
	}
	if receipt.To != "customer@example.com" {
		t.Errorf("auto-send addressed to %s", receipt.To)
	}
	if receipt.Subject != "Re: Payment problem" {
		t.Errorf("expected reply subject, got %q", receipt.Subject)
	}
	if receipt.Status != "queued" {
		t.Errorf("expected queued receipt, got %q", receipt.Status)
	}
	if auto, _ := receipt.Meta["auto"].(bool); !auto {
		t.Error("auto-send receipt meta should mark auto=true")
	}

	// classification.created, response.drafted, inbox.send, inbox.intake
	if len(published) != 4 {
		t.Fatalf("expected 4 published events, got %d: %v", len(published), published)
	}
	if published[len(published)-1] != models.EventInboxIntake {
		t.Errorf("expected the intake event last, got %s", published[len(published)-1])
	}
}

func TestIntakeSkipsAutoSendWithoutSender(t *testing.T) {
	bus := events.NewMemoryBus()
	intake := newTestIntake(bus)

	result := intake.Intake(context.Background(), &models.IntakeRequest{
		Message: "the app is not loading",
	})

	if result.AutoSend != nil {
		t.Errorf("expected no auto-send without a from address, got %v", result.AutoSend)
	}
	if result.Classification == nil || result.Draft == nil {
		t.Error("classification and draft must still be produced")
	}
}

func TestIntakeDefaultReplySubject(t *testing.T) {
	bus := events.NewMemoryBus()
	intake := newTestIntake(bus)

	result := intake.Intake(context.Background(), &models.IntakeRequest{
		From:    "customer@example.com",
		Message: "where is my refund",
	})

	receipt, ok := result.AutoSend.(*models.SendReceipt)
	if !ok {
		t.Fatalf("expected an auto-send receipt, got %T", result.AutoSend)
	}
	if receipt.Subject != "Re: Your message" {
		t.Errorf("expected default reply subject, got %q", receipt.Subject)
	}
}

func TestIntakeReportError(t *testing.T) {
	bus := events.NewMemoryBus()
	intake := newTestIntake(bus)

	var errorEvent *models.AppEvent
	unsubscribe := bus.Subscribe(func(event models.AppEvent) {
		if event.Type == models.EventInboxIntakeError {
			copied := event
			errorEvent = &copied
		}
	})
	defer unsubscribe()

	result := intake.ReportError(&models.IntakeRequest{
		From:    "customer@example.com",
		Subject: "broken",
	}, "pipeline exploded")

	if result["error"] != "pipeline exploded" {
		t.Errorf("expected error text in the result, got %v", result["error"])
	}
	if result["companyEmail"] != models.CompanyEmail {
		t.Error("error report should carry the company email")
	}
	if errorEvent == nil {
		t.Fatal("expected an intake-error event on the bus")
	}
}
