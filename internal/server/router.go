// Package server assembles the HTTP surface: middleware, routes, and the
// handler wiring for the support pipeline API.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/balajimuthu0107/codance/internal/handlers"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Pipeline  *handlers.PipelineHandler
	Inbox     *handlers.InboxHandler
	Email     *handlers.EmailHandler
	Feedback  *handlers.FeedbackHandler
	Webhook   *handlers.WebhookHandler
	Events    *handlers.EventsHandler
	Analytics *handlers.AnalyticsHandler
}

// New builds the gin engine with request-id and access-log middleware and
// mounts all API routes.
func New(h Handlers, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(accessLog(log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "status": "healthy"})
	})

	api := router.Group("/api")
	{
		api.POST("/classify", h.Pipeline.Classify)
		api.POST("/respond", h.Pipeline.Respond)

		api.POST("/inbox/intake", h.Inbox.Intake)
		api.POST("/inbox/send", h.Inbox.Send)
		api.GET("/inbox/tickets", h.Inbox.Tickets)
		api.POST("/inbox/analyze", h.Inbox.AnalyzeAll)

		api.POST("/email/send", h.Email.Send)
		api.POST("/email/reply", h.Email.Reply)

		api.POST("/feedback", h.Feedback.Submit)

		api.POST("/webhooks/n8n", h.Webhook.Receive)
		api.GET("/webhooks/n8n", h.Webhook.Status)

		api.GET("/events/stream", h.Events.Stream)
		api.GET("/analytics", h.Analytics.Snapshot)
	}

	return router
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func accessLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// The SSE stream is long-lived; logging it on disconnect is noise.
		if c.Writer.Header().Get("Content-Type") == "text/event-stream" {
			return
		}

		requestID := c.GetString("requestID")
		log.LogHTTP(c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), requestID)
	}
}
