package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"github.com/balajimuthu0107/codance/internal/events"
	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
)

const (
	// streamBuffer is the per-client event queue. A client that falls this
	// far behind starts losing events rather than blocking publishers.
	streamBuffer = 64

	defaultHeartbeat = 25 * time.Second
)

// EventsHandler streams bus events to dashboard clients over SSE.
type EventsHandler struct {
	bus       events.Bus
	heartbeat time.Duration
	logger    *logger.Logger
}

func NewEventsHandler(bus events.Bus, log *logger.Logger) *EventsHandler {
	return &EventsHandler{
		bus:       bus,
		heartbeat: defaultHeartbeat,
		logger:    log,
	}
}

// WithHeartbeat overrides the keep-alive interval. Tests use this to avoid
// waiting the full production interval.
func (h *EventsHandler) WithHeartbeat(interval time.Duration) *EventsHandler {
	h.heartbeat = interval
	return h
}

// Stream subscribes the caller to the live event feed. Events are sent as SSE
// data frames; a comment heartbeat keeps idle connections open through
// proxies. The subscription is dropped when the client disconnects.
func (h *EventsHandler) Stream(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache, no-transform")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		return
	}

	fmt.Fprint(c.Writer, ": connected\n\n")
	flusher.Flush()

	queue := make(chan models.AppEvent, streamBuffer)
	unsubscribe := h.bus.Subscribe(func(event models.AppEvent) {
		select {
		case queue <- event:
		default:
			// Slow client: drop rather than stall the bus.
		}
	})
	defer unsubscribe()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-queue:
			if err := sse.Encode(c.Writer, sse.Event{Data: event}); err != nil {
				h.logger.Debug("sse write failed, closing stream", "error", err.Error())
				return
			}
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(c.Writer, ": ping %d\n\n", models.NowMillis())
			flusher.Flush()
		}
	}
}
