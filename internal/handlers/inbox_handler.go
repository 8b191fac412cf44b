package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

type IntakeService interface {
	Intake(ctx context.Context, req *models.IntakeRequest) *models.IntakeResult
	ReportError(req *models.IntakeRequest, errText string) map[string]interface{}
}

type SenderService interface {
	Send(ctx context.Context, req *models.SendRequest) *models.SendReceipt
}

type TicketProvider interface {
	Tickets() []models.Ticket
	AnalyzeAll(ctx context.Context) []models.TicketAnalysis
}

type InboxHandler struct {
	intake  IntakeService
	sender  SenderService
	tickets TicketProvider
	logger  *logger.Logger
}

func NewInboxHandler(intake IntakeService, sender SenderService, tickets TicketProvider, log *logger.Logger) *InboxHandler {
	return &InboxHandler{intake: intake, sender: sender, tickets: tickets, logger: log}
}

// Intake handles POST /api/inbox/intake. The pipeline never propagates a
// hard failure to the caller: any unexpected error is reported as an
// inbox.intake.error event inside an otherwise-200 response.
func (h *InboxHandler) Intake(c *gin.Context) {
	var req models.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Intake pipeline failed", "recovered", r)
			c.JSON(http.StatusOK, h.intake.ReportError(&req, fmt.Sprint(r)))
		}
	}()

	result := h.intake.Intake(c.Request.Context(), &req)
	c.JSON(http.StatusOK, result)
}

// Send handles POST /api/inbox/send: a simulated send echoed back for the UI.
func (h *InboxHandler) Send(c *gin.Context) {
	var req models.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt := h.sender.Send(c.Request.Context(), &req)
	c.JSON(http.StatusOK, receipt)
}

// Tickets handles GET /api/inbox/tickets.
func (h *InboxHandler) Tickets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tickets": h.tickets.Tickets()})
}

// AnalyzeAll handles POST /api/inbox/analyze: classify+draft for every demo
// ticket, fan-out/join, results keyed by ticket id.
func (h *InboxHandler) AnalyzeAll(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"results": h.tickets.AnalyzeAll(c.Request.Context())})
}
