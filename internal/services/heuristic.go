package services

import (
	"context"
	"strings"

	"github.com/balajimuthu0107/codance/internal/kb"
	"github.com/balajimuthu0107/codance/internal/models"
)

// categoryKeywords maps each category to the literal substrings that select
// it. Categories are additive: a message may match several.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"billing", []string{"payment", "card", "charge"}},
	{"technical", []string{"not loading", "error", "bug"}},
	{"refund", []string{"refund", "cancel"}},
	{"product_inquiry", []string{"feature", "roadmap"}},
	{"feedback", []string{"feedback", "love"}},
}

var (
	negativeKeywords = []string{"angry", "frustrated", "terrible"}
	positiveKeywords = []string{"great", "love", "awesome"}

	// Priority rules in evaluation order; the first match wins, so the
	// urgent set dominates the high set.
	urgentKeywords = []string{"compromised", "hacked", "payment failed"}
	highKeywords   = []string{"not loading", "down"}
)

// HeuristicClassifier is the terminal classification provider. It cannot
// fail, which is what lets the endpoint always answer.
type HeuristicClassifier struct{}

func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

func (h *HeuristicClassifier) Name() string {
	return models.SourceMock
}

func (h *HeuristicClassifier) Classify(_ context.Context, message, _ string) (*models.Classification, error) {
	m := strings.ToLower(message)

	categories := []string{}
	for _, entry := range categoryKeywords {
		if containsAny(m, entry.keywords) {
			categories = append(categories, entry.category)
		}
	}

	sentiment := models.SentimentNeutral
	if containsAny(m, negativeKeywords) {
		sentiment = models.SentimentNegative
	} else if containsAny(m, positiveKeywords) {
		sentiment = models.SentimentPositive
	}

	priority := models.PriorityMedium
	if containsAny(m, urgentKeywords) {
		priority = models.PriorityUrgent
	} else if containsAny(m, highKeywords) {
		priority = models.PriorityHigh
	}

	return &models.Classification{
		Source:     models.SourceMock,
		Categories: categories,
		Priority:   priority,
		Sentiment:  sentiment,
		Entities:   []string{},
	}, nil
}

// HeuristicResponder is the terminal draft provider: a templated reply built
// from the top knowledge-base matches.
type HeuristicResponder struct{}

func NewHeuristicResponder() *HeuristicResponder {
	return &HeuristicResponder{}
}

func (h *HeuristicResponder) Name() string {
	return models.SourceMock
}

func (h *HeuristicResponder) Draft(_ context.Context, req *models.RespondRequest) (*models.Draft, error) {
	articles := kb.Retrieve(req.Message, 2)

	titles := make([]string, 0, len(articles))
	for _, a := range articles {
		titles = append(titles, "- "+a.Title)
	}

	tone := "professional"
	if strings.Contains(strings.ToLower(req.Message), "angry") {
		tone = "empathetic"
	}

	return &models.Draft{
		Source: models.SourceMock,
		Reply: "Thanks for reaching out! Based on your message, here are helpful resources:\n" +
			strings.Join(titles, "\n") +
			"\n\nIf this doesn't resolve the issue, please share more details and we'll gladly assist further.",
		Tone:     tone,
		Language: "en",
		Articles: articles,
	}, nil
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
