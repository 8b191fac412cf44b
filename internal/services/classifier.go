package services

import (
	"context"
	"time"

	"github.com/balajimuthu0107/codance/internal/events"
	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
)

// Classifier runs an ordered chain of classification providers and falls
// through to the terminal heuristic, so it always produces a result. Every
// result is published on the event bus and forwarded to n8n, independently
// of each other.
type Classifier struct {
	providers []ClassificationProvider
	heuristic *HeuristicClassifier
	bus       events.Bus
	forwarder *Forwarder
	logger    *logger.Logger
}

func NewClassifier(providers []ClassificationProvider, bus events.Bus, forwarder *Forwarder, log *logger.Logger) *Classifier {
	return &Classifier{
		providers: providers,
		heuristic: NewHeuristicClassifier(),
		bus:       bus,
		forwarder: forwarder,
		logger:    log,
	}
}

// Classify never fails: provider errors degrade to the heuristic result with
// the raw error text attached for observability.
func (c *Classifier) Classify(ctx context.Context, message, channel string) *models.Classification {
	startTime := time.Now()
	result := c.run(ctx, message, channel)

	c.logger.LogService("classifier", "classify", time.Since(startTime), map[string]interface{}{
		"channel":    channel,
		"source":     result.Source,
		"categories": result.Categories,
		"priority":   result.Priority,
	}, nil)

	event := models.AppEvent{
		Type: models.EventClassificationCreated,
		Data: map[string]interface{}{
			"channel":      channel,
			"message":      message,
			"result":       result,
			"companyEmail": models.CompanyEmail,
		},
	}
	c.bus.Publish(event)
	c.forwarder.Forward(event)

	return result
}

func (c *Classifier) run(ctx context.Context, message, channel string) *models.Classification {
	var lastErr error

	for _, provider := range c.providers {
		result, err := provider.Classify(ctx, message, channel)
		if err == nil {
			return result
		}
		lastErr = err
		c.logger.WithError(err).Warn("Classification provider failed, falling back",
			"provider", provider.Name())
	}

	result, _ := c.heuristic.Classify(ctx, message, channel)
	if lastErr != nil {
		result.Error = lastErr.Error()
	}
	return result
}
