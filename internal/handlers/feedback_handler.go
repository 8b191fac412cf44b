package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
)

// FeedbackHandler collects dashboard feedback and forwards it to the
// automation tool for follow-up.
type FeedbackHandler struct {
	forwarder EventForwarder
	logger    *logger.Logger
}

func NewFeedbackHandler(forwarder EventForwarder, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		forwarder: forwarder,
		logger:    log,
	}
}

func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	data := map[string]interface{}{
		"message":   req.Message,
		"email":     req.Email,
		"path":      "/",
		"userAgent": c.GetHeader("User-Agent"),
	}
	if req.Rating != nil {
		data["rating"] = *req.Rating
	}

	h.forwarder.Forward(models.AppEvent{
		Type: models.EventFeedbackCreated,
		Data: data,
	})
	h.logger.Info("feedback received", "hasEmail", req.Email != "")

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
