package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/balajimuthu0107/codance/internal/models"
)

// AnalyticsProvider produces the dashboard metric snapshot.
type AnalyticsProvider interface {
	Snapshot(now time.Time) models.AnalyticsSnapshot
}

type AnalyticsHandler struct {
	analytics AnalyticsProvider
}

func NewAnalyticsHandler(analytics AnalyticsProvider) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) Snapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.analytics.Snapshot(time.Now()))
}
