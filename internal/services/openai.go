package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/balajimuthu0107/codance/internal/config"
	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

// OpenAIService is the LLM provider for both classification and reply
// drafting. A circuit breaker sits in front of the API so a failing upstream
// trips straight to the heuristic fallback instead of waiting out the full
// request timeout on every call.
type OpenAIService struct {
	client  *openai.Client
	config  config.OpenAIConfig
	breaker *gobreaker.CircuitBreaker
	logger  *logger.Logger
}

func NewOpenAIService(cfg config.OpenAIConfig, log *logger.Logger) *OpenAIService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "openai",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &OpenAIService{
		client:  openai.NewClient(cfg.APIKey),
		config:  cfg,
		breaker: breaker,
		logger:  log,
	}
}

func (service *OpenAIService) Name() string {
	return models.SourceOpenAI
}

type classificationPayload struct {
	Categories []string `json:"categories"`
	Priority   string   `json:"priority"`
	Sentiment  string   `json:"sentiment"`
	Entities   []string `json:"entities"`
}

func (service *OpenAIService) Classify(ctx context.Context, message, channel string) (*models.Classification, error) {
	sys := fmt.Sprintf(`You are an AI that classifies customer support messages. Return STRICT JSON with keys: categories (array from ["billing", "technical", "product_inquiry", "feedback", "refund"]), priority (one of low, medium, high, urgent), sentiment (positive, neutral, negative), entities (array of strings). Consider the channel: %s.`, channel)
	user := fmt.Sprintf("Message: %s", message)

	content, err := service.completeJSON(ctx, "classify", sys, user, 0.2)
	if err != nil {
		return nil, err
	}

	var payload classificationPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, models.NewExternalError("OPENAI_PARSE_FAILED", "malformed classification response").WithCause(err)
	}

	result := &models.Classification{
		Source:     models.SourceOpenAI,
		Categories: payload.Categories,
		Priority:   payload.Priority,
		Sentiment:  payload.Sentiment,
		Entities:   payload.Entities,
	}
	if result.Categories == nil {
		result.Categories = []string{}
	}
	if result.Entities == nil {
		result.Entities = []string{}
	}
	return result, nil
}

type draftPayload struct {
	Reply    string `json:"reply"`
	Tone     string `json:"tone"`
	Language string `json:"language"`
}

func (service *OpenAIService) Draft(ctx context.Context, req *models.RespondRequest) (*models.Draft, error) {
	kbContext, articles := kbContextFor(req.Message)

	customerJSON, err := json.Marshal(req.Customer)
	if err != nil {
		customerJSON = []byte("{}")
	}

	sentiment := req.Sentiment
	if sentiment == "" {
		sentiment = "unknown"
	}

	sys := `You are a customer support copilot. Write a concise, helpful reply. Use empathetic tone if sentiment is negative. Include concrete steps. If you cite knowledge, it must come from the provided Knowledge Base context. Reply in the customer's language if detectable, else English. Return STRICT JSON with keys: reply (string), tone (string), language (string).`
	user := fmt.Sprintf("Customer profile: %s\nSentiment: %s\nMessage: %s\n\nKnowledge Base:\n%s",
		customerJSON, sentiment, req.Message, kbContext)

	content, err := service.completeJSON(ctx, "draft", sys, user, 0.5)
	if err != nil {
		return nil, err
	}

	var payload draftPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, models.NewExternalError("OPENAI_PARSE_FAILED", "malformed draft response").WithCause(err)
	}

	return &models.Draft{
		Source:   models.SourceOpenAI,
		Reply:    payload.Reply,
		Tone:     payload.Tone,
		Language: payload.Language,
		Articles: articles,
	}, nil
}

func (service *OpenAIService) completeJSON(ctx context.Context, operation, sys, user string, temperature float32) (string, error) {
	startTime := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, service.config.RequestTimeout)
	defer cancel()

	var content string
	var err error

	for attempt := 1; attempt <= service.config.MaxRetries; attempt++ {
		content, err = service.makeCompletionRequest(reqCtx, sys, user, temperature)
		if err == nil {
			break
		}

		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			// Breaker is open: no point retrying, fall back now.
			break
		}

		if attempt < service.config.MaxRetries {
			service.logger.WithFields(logger.Fields{
				"attempt":     attempt,
				"max_retries": service.config.MaxRetries,
				"operation":   operation,
				"error":       err,
			}).Warn("OpenAI request failed, retrying")

			select {
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			case <-reqCtx.Done():
				return "", models.NewTimeoutError("OPENAI_TIMEOUT", "completion timed out").WithCause(reqCtx.Err())
			}
		}
	}

	duration := time.Since(startTime)
	if err != nil {
		service.logger.LogService("openai", operation, duration, map[string]interface{}{
			"model": service.config.Model,
		}, err)
		return "", models.WrapExternalError("OPENAI", err)
	}

	service.logger.LogService("openai", operation, duration, map[string]interface{}{
		"model":           service.config.Model,
		"response_length": len(content),
	}, nil)

	return stripJSONFences(content), nil
}

func (service *OpenAIService) makeCompletionRequest(ctx context.Context, sys, user string, temperature float32) (string, error) {
	result, err := service.breaker.Execute(func() (interface{}, error) {
		resp, err := service.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       service.config.Model,
			Temperature: temperature,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: sys},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no completion choices returned")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func stripJSONFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}
