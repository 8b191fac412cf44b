package services

import (
	"context"

	"github.com/balajimuthu0107/codance/internal/events"
	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
)

// Sender simulates outbound message delivery. No channel provider is wired;
// the queued payload is echoed to the caller and forwarded to n8n for
// analytics and ROI tracking.
type Sender struct {
	bus       events.Bus
	forwarder *Forwarder
	logger    *logger.Logger
}

func NewSender(bus events.Bus, forwarder *Forwarder, log *logger.Logger) *Sender {
	return &Sender{bus: bus, forwarder: forwarder, logger: log}
}

func (s *Sender) Send(_ context.Context, req *models.SendRequest) *models.SendReceipt {
	channel := req.Channel
	if channel == "" {
		channel = models.ChannelEmail
	}
	meta := req.Meta
	if meta == nil {
		meta = map[string]interface{}{}
	}

	receipt := &models.SendReceipt{
		OK:       true,
		From:     models.CompanyEmail,
		To:       req.To,
		Subject:  req.Subject,
		Body:     req.Body,
		Channel:  channel,
		Meta:     meta,
		Status:   "queued",
		QueuedAt: models.NowMillis(),
	}

	event := models.AppEvent{
		Type: models.EventInboxSend,
		Data: map[string]interface{}{
			"from":     receipt.From,
			"to":       receipt.To,
			"subject":  receipt.Subject,
			"body":     receipt.Body,
			"channel":  receipt.Channel,
			"meta":     receipt.Meta,
			"status":   receipt.Status,
			"queuedAt": receipt.QueuedAt,
		},
	}
	s.bus.Publish(event)
	s.forwarder.Forward(event)

	s.logger.Debug("Simulated send queued", "to", req.To, "channel", channel)
	return receipt
}
