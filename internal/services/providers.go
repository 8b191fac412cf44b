package services

import (
	"context"

	"github.com/balajimuthu0107/codance/internal/kb"
	"github.com/balajimuthu0107/codance/internal/models"
)

// ClassificationProvider is one entry in the classifier's ordered fallback
// chain.
type ClassificationProvider interface {
	Name() string
	Classify(ctx context.Context, message, channel string) (*models.Classification, error)
}

// DraftProvider is one entry in the responder's ordered fallback chain.
type DraftProvider interface {
	Name() string
	Draft(ctx context.Context, req *models.RespondRequest) (*models.Draft, error)
}

func kbContextFor(message string) (string, []models.KBArticle) {
	return kb.ContextBlock(message, 3)
}
