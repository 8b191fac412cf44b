package services

import (
	"context"
	"sync"

	"github.com/balajimuthu0107/codance/internal/models"
	"github.com/balajimuthu0107/codance/internal/pkg/logger"
)

// demoTickets is the seeded unified-inbox content. There is no ticket store;
// classification and draft results are matched back to tickets by id.
var demoTickets = []models.Ticket{
	{
		ID:       "tkt-1001",
		Channel:  models.ChannelEmail,
		Customer: "Alice Johnson",
		Subject:  "Payment failed on checkout",
		Preview:  "My card keeps getting declined...",
		Message: "Hi team, my payment failed twice during checkout with a 'card declined' " +
			"message. I'm a bit frustrated because I need this today.",
		Time: "2m ago",
	},
	{
		ID:       "tkt-1002",
		Channel:  models.ChannelChat,
		Customer: "Diego Fernández",
		Subject:  "App not loading on Android",
		Preview:  "Stuck on splash screen",
		Message: "Hola, the app is not loading on my Android Pixel 7. It stays on the " +
			"splash screen. Any fix?",
		Time: "7m ago",
	},
	{
		ID:       "tkt-1003",
		Channel:  models.ChannelSocial,
		Customer: "@karen-tech",
		Subject:  "Refund for double charge",
		Preview:  "I was charged twice last month",
		Message: "Hey, I was charged twice for my subscription last month. This is " +
			"terrible service. Please refund ASAP!",
		Time: "12m ago",
	},
}

// TicketService serves the demo inbox and runs bulk analysis over it.
type TicketService struct {
	classifier *Classifier
	responder  *Responder
	logger     *logger.Logger
}

func NewTicketService(classifier *Classifier, responder *Responder, log *logger.Logger) *TicketService {
	return &TicketService{classifier: classifier, responder: responder, logger: log}
}

func (s *TicketService) Tickets() []models.Ticket {
	out := make([]models.Ticket, len(demoTickets))
	copy(out, demoTickets)
	return out
}

// AnalyzeAll classifies and drafts every ticket concurrently (start all,
// await all) so bulk latency is bounded by the slowest ticket, not the sum.
// Results are indexed by position and keyed by ticket id, never by
// completion order.
func (s *TicketService) AnalyzeAll(ctx context.Context) []models.TicketAnalysis {
	tickets := s.Tickets()
	results := make([]models.TicketAnalysis, len(tickets))

	var wg sync.WaitGroup
	for i, ticket := range tickets {
		wg.Add(1)
		go func(i int, ticket models.Ticket) {
			defer wg.Done()

			classification := s.classifier.Classify(ctx, ticket.Message, ticket.Channel)
			draft := s.responder.Respond(ctx, &models.RespondRequest{
				Message:   ticket.Message,
				Sentiment: classification.Sentiment,
				Customer:  map[string]interface{}{"name": ticket.Customer},
			})

			results[i] = models.TicketAnalysis{
				TicketID:       ticket.ID,
				Classification: classification,
				Draft:          draft,
			}
		}(i, ticket)
	}
	wg.Wait()

	s.logger.Info("Bulk ticket analysis completed", "tickets", len(tickets))
	return results
}
