package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/balajimuthu0107/codance/internal/config"
	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
	backoff "github.com/cenkalti/backoff/v5"
)

// Forwarder pushes every internal event to the configured n8n webhook for
// analytics and automation. Delivery is strictly best-effort: failures are
// retried briefly off the request path and then dropped, never surfaced to
// the caller.
type Forwarder struct {
	config config.N8NConfig
	client *http.Client
	logger *logger.Logger
	wg     sync.WaitGroup
}

func NewForwarder(cfg config.N8NConfig, log *logger.Logger) *Forwarder {
	return &Forwarder{
		config: cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
		logger: log,
	}
}

// Forward hands the event to a background delivery attempt. No-op when no
// webhook URL is configured.
func (f *Forwarder) Forward(event models.AppEvent) {
	if f.config.WebhookURL == "" {
		return
	}

	envelope := map[string]interface{}{
		"source":       models.EventSource,
		"companyEmail": models.CompanyEmail,
		"timestamp":    models.NowMillis(),
		"type":         event.Type,
		"data":         event.Data,
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.deliver(envelope, event.Type)
	}()
}

func (f *Forwarder) deliver(envelope map[string]interface{}, eventType string) {
	body, err := json.Marshal(envelope)
	if err != nil {
		f.logger.WithError(err).Warn("Failed to encode forwarded event", "type", eventType)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 250 * time.Millisecond

	operation := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.config.WebhookURL, bytes.NewReader(body))
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := f.client.Do(req)
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return struct{}{}, fmt.Errorf("webhook returned status %d", resp.StatusCode)
		}
		return struct{}{}, nil
	}

	_, err = backoff.Retry(ctx, operation,
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(uint(f.config.ForwardRetries)))
	if err != nil {
		// Best-effort channel: log and move on.
		f.logger.WithError(err).Debug("Event forward dropped", "type", eventType)
		return
	}

	f.logger.Debug("Event forwarded", "type", eventType)
}

// Flush waits for in-flight deliveries. Called on shutdown and in tests.
func (f *Forwarder) Flush() {
	f.wg.Wait()
}
