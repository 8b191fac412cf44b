package handlers

import (
	"net/http"

	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
	"github.com/balajimuthu0107/codance/internal/services"
	"github.com/gin-gonic/gin"
)

// WebhookHandler receives events pushed back by the external automation tool
// and keeps a short in-memory trail of them for the dashboard.
type WebhookHandler struct {
	buffer *services.InboundBuffer
	secret string
	logger *logger.Logger
}

func NewWebhookHandler(buffer *services.InboundBuffer, secret string, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		buffer: buffer,
		secret: secret,
		logger: log,
	}
}

// Receive ingests one automation event. When an inbound secret is configured,
// the x-n8n-secret header must match before the body is even parsed.
func (h *WebhookHandler) Receive(c *gin.Context) {
	if h.secret != "" && c.GetHeader("x-n8n-secret") != h.secret {
		h.logger.Warn("inbound webhook rejected", "reason", "bad secret")
		c.JSON(http.StatusUnauthorized, gin.H{
			"ok":    false,
			"error": "Unauthorized",
		})
		return
	}

	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":    false,
			"error": "Invalid JSON body",
		})
		return
	}

	// type must be a string (empty is fine) and data a JSON object.
	eventType, typeOK := raw["type"].(string)
	data, dataOK := raw["data"].(map[string]interface{})
	if !typeOK || !dataOK {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":    false,
			"error": "Invalid event payload",
		})
		return
	}

	event := models.AppEvent{Type: eventType, Data: data}
	entry := h.buffer.Accept(event)
	h.logger.Debug("inbound webhook event buffered", "type", event.Type, "ts", entry.TS)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Status reports liveness plus the most recent buffered events.
func (h *WebhookHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "n8n webhook up",
		"events":  h.buffer.Recent(10),
	})
}
