package handlers

import (
	"net/http"

	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// EventForwarder is the best-effort outbound channel to the automation tool.
type EventForwarder interface {
	Forward(event models.AppEvent)
}

// EmailHandler accepts structured email commands and forwards them to the
// automation tool. These are strict-input endpoints: they validate and fail
// fast instead of degrading.
type EmailHandler struct {
	forwarder EventForwarder
	logger    *logger.Logger
}

func NewEmailHandler(forwarder EventForwarder, log *logger.Logger) *EmailHandler {
	return &EmailHandler{forwarder: forwarder, logger: log}
}

// Send handles POST /api/email/send.
func (h *EmailHandler) Send(c *gin.Context) {
	var req models.EmailSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid JSON body"})
		return
	}

	if !hasRecipient(req.To) || req.Subject == "" || (req.HTML == "" && req.Text == "") {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":    false,
			"error": "Missing required fields: to, subject, and one of html or text",
		})
		return
	}

	h.forwarder.Forward(models.AppEvent{
		Type: models.EventEmailSend,
		Data: map[string]interface{}{
			"to":       req.To,
			"subject":  req.Subject,
			"html":     req.HTML,
			"text":     req.Text,
			"cc":       req.CC,
			"bcc":      req.BCC,
			"threadId": req.ThreadID,
			"replyTo":  req.ReplyTo,
		},
	})

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Reply handles POST /api/email/reply.
func (h *EmailHandler) Reply(c *gin.Context) {
	var req models.EmailReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid JSON body"})
		return
	}

	if req.ThreadID == "" || (req.HTML == "" && req.Text == "") {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":    false,
			"error": "Missing required fields: threadId and one of html or text",
		})
		return
	}

	h.forwarder.Forward(models.AppEvent{
		Type: models.EventEmailReply,
		Data: map[string]interface{}{
			"threadId": req.ThreadID,
			"html":     req.HTML,
			"text":     req.Text,
			"to":       req.To,
			"cc":       req.CC,
			"bcc":      req.BCC,
		},
	})

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// hasRecipient accepts a single address or a non-empty list, matching the
// loose shape external callers send.
func hasRecipient(to interface{}) bool {
	switch v := to.(type) {
	case string:
		return v != ""
	case []interface{}:
		return len(v) > 0
	default:
		return false
	}
}
