package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/balajimuthu0107/codance/internal/config"
	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
	"github.com/sony/gobreaker"
)

// SimAIService calls the hosted Sim.ai support workflow. The workflow's
// response shape is not contractually fixed, so the reply is probed out of
// several known nesting paths.
type SimAIService struct {
	config  config.SimAIConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logger.Logger
}

func NewSimAIService(cfg config.SimAIConfig, log *logger.Logger) *SimAIService {
	return &SimAIService{
		config: cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "sim.ai",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
		logger: log,
	}
}

func (service *SimAIService) Name() string {
	return models.SourceSimAI
}

func (service *SimAIService) Draft(ctx context.Context, req *models.RespondRequest) (*models.Draft, error) {
	startTime := time.Now()
	kbContext, articles := kbContextFor(req.Message)

	payload := map[string]interface{}{
		"input": map[string]interface{}{
			"message":   req.Message,
			"customer":  req.Customer,
			"sentiment": req.Sentiment,
			"kbContext": kbContext,
		},
	}

	raw, err := service.execute(ctx, payload)
	if err != nil {
		service.logger.LogService("sim.ai", "draft", time.Since(startTime), map[string]interface{}{
			"workflow_url": service.config.WorkflowURL,
		}, err)
		return nil, models.WrapExternalError("SIM_AI", err)
	}

	draft := &models.Draft{
		Source:   models.SourceSimAI,
		Reply:    extractReply(raw),
		Tone:     extractString(raw, "tone"),
		Language: extractString(raw, "language"),
		Articles: articles,
		Raw:      raw,
	}

	if draft.Tone == "" {
		if strings.Contains(strings.ToLower(req.Sentiment), "neg") {
			draft.Tone = "empathetic"
		} else {
			draft.Tone = "professional"
		}
	}
	if draft.Language == "" {
		draft.Language = "en"
	}

	service.logger.LogService("sim.ai", "draft", time.Since(startTime), map[string]interface{}{
		"reply_length": len(draft.Reply),
	}, nil)

	return draft, nil
}

func (service *SimAIService) execute(ctx context.Context, payload map[string]interface{}) (interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	raw, err := service.breaker.Execute(func() (interface{}, error) {
		reqCtx, cancel := context.WithTimeout(ctx, service.config.RequestTimeout)
		defer cancel()

		httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, service.config.WorkflowURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+service.config.APIKey)

		resp, err := service.client.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("workflow returned status %d: %s", resp.StatusCode, respBody)
		}

		var data interface{}
		if err := json.Unmarshal(respBody, &data); err != nil {
			// Some workflow configurations return the reply as plain text.
			return string(respBody), nil
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// extractReply normalizes the workflow response shape: reply, output.reply,
// result.reply, data.reply, or the whole body as text.
func extractReply(raw interface{}) string {
	if s, ok := raw.(string); ok {
		return s
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		encoded, _ := json.Marshal(raw)
		return string(encoded)
	}

	if reply, ok := obj["reply"].(string); ok {
		return reply
	}
	for _, key := range []string{"output", "result", "data"} {
		if nested, ok := obj[key].(map[string]interface{}); ok {
			if reply, ok := nested["reply"].(string); ok {
				return reply
			}
		}
	}

	encoded, _ := json.Marshal(obj)
	return string(encoded)
}

func extractString(raw interface{}, key string) string {
	if obj, ok := raw.(map[string]interface{}); ok {
		if value, ok := obj[key].(string); ok {
			return value
		}
	}
	return ""
}
