package services

import (
	"context"
	"time"

	"github.com/balajimuthu0107/codance/internal/events"
	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
)

// Responder drafts replies through an ordered provider chain: the Sim.ai
// workflow first when configured, then OpenAI, then the knowledge-base
// template that cannot fail.
type Responder struct {
	providers []DraftProvider
	heuristic *HeuristicResponder
	bus       events.Bus
	forwarder *Forwarder
	logger    *logger.Logger
}

func NewResponder(providers []DraftProvider, bus events.Bus, forwarder *Forwarder, log *logger.Logger) *Responder {
	return &Responder{
		providers: providers,
		heuristic: NewHeuristicResponder(),
		bus:       bus,
		forwarder: forwarder,
		logger:    log,
	}
}

// Respond never fails; upstream errors degrade to the heuristic draft with
// the error text attached.
func (r *Responder) Respond(ctx context.Context, req *models.RespondRequest) *models.Draft {
	startTime := time.Now()
	draft := r.run(ctx, req)

	r.logger.LogService("responder", "respond", time.Since(startTime), map[string]interface{}{
		"source":       draft.Source,
		"tone":         draft.Tone,
		"reply_length": len(draft.Reply),
	}, nil)

	event := models.AppEvent{
		Type: models.EventResponseDrafted,
		Data: map[string]interface{}{
			"message":      req.Message,
			"customer":     req.Customer,
			"sentiment":    req.Sentiment,
			"result":       draft,
			"companyEmail": models.CompanyEmail,
		},
	}
	r.bus.Publish(event)
	r.forwarder.Forward(event)

	return draft
}

func (r *Responder) run(ctx context.Context, req *models.RespondRequest) *models.Draft {
	var lastErr error

	for _, provider := range r.providers {
		draft, err := provider.Draft(ctx, req)
		if err == nil {
			return draft
		}
		lastErr = err
		r.logger.WithError(err).Warn("Draft provider failed, falling back",
			"provider", provider.Name())
	}

	draft, _ := r.heuristic.Draft(ctx, req)
	if lastErr != nil {
		draft.Error = lastErr.Error()
	}
	return draft
}
