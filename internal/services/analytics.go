package services

import (
	"math"
	"time"

	"github.com/balajimuthu0107/codance/internal/models"
)

const (
	humanResponseSeconds = 4 * 60 * 60
	costPerTicketHuman   = 3.50
	costPerTicketAI      = 0.35
)

// AnalyticsService generates the dashboard's mock real-time metrics. The
// numbers are a deterministic function of the wall-clock minute, not
// aggregated data: a clearly-labeled demo generator, stable within a minute
// and re-rolled on the next.
type AnalyticsService struct{}

func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{}
}

func (s *AnalyticsService) Snapshot(now time.Time) models.AnalyticsSnapshot {
	seed := now.UnixMilli() / 60000
	rnd := minuteRand(seed)

	responseTime := rnd(20, 60)
	if responseTime < 20 {
		responseTime = 20
	}
	ticketsToday := rnd(120, 320)
	resolvedToday := rnd(90, ticketsToday)

	roi := (costPerTicketHuman - costPerTicketAI) * float64(resolvedToday)

	series := make([]models.AnalyticsPoint, 24)
	for hour := range series {
		series[hour] = models.AnalyticsPoint{
			Hour:           hour,
			Tickets:        rnd(2, 30),
			ResolutionRate: rnd(60, 98),
			AvgResponse:    rnd(20, 120),
		}
	}

	return models.AnalyticsSnapshot{
		ResponseTimeSeconds:  responseTime,
		AIResponseSeconds:    responseTime,
		HumanResponseSeconds: humanResponseSeconds,
		TicketsToday:         ticketsToday,
		ResolvedToday:        resolvedToday,
		CSAT:                 rnd(78, 96),
		FCR:                  rnd(75, 90),
		Prevented:            rnd(20, 100),
		ROISavingsUSD:        math.Round(roi*100) / 100,
		Series:               series,
	}
}

// minuteRand is the single-sample pseudo-random formula: one sine draw per
// minute scaled into the requested range.
func minuteRand(seed int64) func(min, max int) int {
	x := math.Sin(float64(seed)) * 10000
	frac := x - math.Floor(x)
	return func(min, max int) int {
		return int(math.Floor(frac*float64(max-min+1))) + min
	}
}
