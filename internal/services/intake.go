package services

import (
	"context"
	"time"

	"github.com/balajimuthu0107/codance/internal/events"
	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
)

// IntakeOrchestrator sequences classify → draft → conditional auto-send for
// one inbound message. Every stage tolerates partial failure; the caller
// always receives a complete result.
type IntakeOrchestrator struct {
	classifier *Classifier
	responder  *Responder
	sender     *Sender
	bus        events.Bus
	forwarder  *Forwarder
	logger     *logger.Logger
}

func NewIntakeOrchestrator(classifier *Classifier, responder *Responder, sender *Sender, bus events.Bus, forwarder *Forwarder, log *logger.Logger) *IntakeOrchestrator {
	return &IntakeOrchestrator{
		classifier: classifier,
		responder:  responder,
		sender:     sender,
		bus:        bus,
		forwarder:  forwarder,
		logger:     log,
	}
}

func (o *IntakeOrchestrator) Intake(ctx context.Context, req *models.IntakeRequest) *models.IntakeResult {
	startTime := time.Now()

	channel := req.Channel
	if channel == "" {
		channel = models.ChannelEmail
	}

	classification := o.classifier.Classify(ctx, req.Message, channel)

	draft := o.responder.Respond(ctx, &models.RespondRequest{
		Message:   req.Message,
		Sentiment: classification.Sentiment,
		Customer:  map[string]interface{}{"email": req.From},
	})

	var autoSend interface{}
	if req.From != "" && draft.Reply != "" {
		autoSend = o.autoSend(ctx, req, channel, draft, classification)
	}

	result := &models.IntakeResult{
		Intake: models.IntakeSummary{
			Channel:      channel,
			From:         req.From,
			Subject:      req.Subject,
			Message:      req.Message,
			CompanyEmail: models.CompanyEmail,
		},
		Classification: classification,
		Draft:          draft,
		AutoSend:       autoSend,
	}

	o.logger.LogService("intake", "orchestrate", time.Since(startTime), map[string]interface{}{
		"channel":      channel,
		"auto_send":    autoSend != nil,
		"class_source": classification.Source,
		"draft_source": draft.Source,
	}, nil)

	event := models.AppEvent{
		Type: models.EventInboxIntake,
		Data: map[string]interface{}{
			"intake":         result.Intake,
			"classification": result.Classification,
			"draft":          result.Draft,
			"autoSend":       result.AutoSend,
		},
	}
	o.bus.Publish(event)
	o.forwarder.Forward(event)

	return result
}

// autoSend wraps the send step so its failure never aborts the intake.
func (o *IntakeOrchestrator) autoSend(ctx context.Context, req *models.IntakeRequest, channel string, draft *models.Draft, classification *models.Classification) (result interface{}) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Warn("Auto-send panicked, degrading", "recovered", r)
			result = map[string]interface{}{"ok": false, "error": "auto-send-failed"}
		}
	}()

	subject := "Re: Your message"
	if req.Subject != "" {
		subject = "Re: " + req.Subject
	}

	return o.sender.Send(ctx, &models.SendRequest{
		To:      req.From,
		Subject: subject,
		Body:    draft.Reply,
		Channel: channel,
		Meta: map[string]interface{}{
			"auto":           true,
			"classification": classification,
		},
	})
}

// ReportError publishes the intake-failure event emitted when the handler
// recovers from an unexpected pipeline error.
func (o *IntakeOrchestrator) ReportError(req *models.IntakeRequest, errText string) map[string]interface{} {
	result := map[string]interface{}{
		"error":        errText,
		"channel":      req.Channel,
		"from":         req.From,
		"subject":      req.Subject,
		"companyEmail": models.CompanyEmail,
	}

	event := models.AppEvent{Type: models.EventInboxIntakeError, Data: result}
	o.bus.Publish(event)
	o.forwarder.Forward(event)

	return result
}
