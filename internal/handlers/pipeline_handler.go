package handlers

import (
	"context"
	"net/http"

	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ClassifierService produces a best-effort classification; it cannot fail.
type ClassifierService interface {
	Classify(ctx context.Context, message, channel string) *models.Classification
}

// ResponderService produces a best-effort reply draft; it cannot fail.
type ResponderService interface {
	Respond(ctx context.Context, req *models.RespondRequest) *models.Draft
}

type PipelineHandler struct {
	classifier ClassifierService
	responder  ResponderService
	logger     *logger.Logger
}

func NewPipelineHandler(classifier ClassifierService, responder ResponderService, log *logger.Logger) *PipelineHandler {
	return &PipelineHandler{classifier: classifier, responder: responder, logger: log}
}

// Classify handles POST /api/classify. Provider failures never surface as
// non-200; the response degrades to the heuristic result instead.
func (h *PipelineHandler) Classify(c *gin.Context) {
	var req models.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.classifier.Classify(c.Request.Context(), req.Message, req.Channel)
	c.JSON(http.StatusOK, result)
}

// Respond handles POST /api/respond.
func (h *PipelineHandler) Respond(c *gin.Context) {
	var req models.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := h.responder.Respond(c.Request.Context(), &req)
	c.JSON(http.StatusOK, draft)
}
