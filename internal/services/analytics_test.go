package services_test

import (
	"math"
	"testing"
	"time"

	"github.com/balajimuthu0107/codance/internal/services"
)

func TestAnalyticsSnapshotDeterministicWithinMinute(t *testing.T) {
	analytics := services.NewAnalyticsService()

	base := time.Date(2024, 6, 1, 12, 30, 5, 0, time.UTC)
	later := base.Add(40 * time.Second) // same minute

	first := analytics.Snapshot(base)
	second := analytics.Snapshot(later)

	if first.TicketsToday != second.TicketsToday ||
		first.ResolvedToday != second.ResolvedToday ||
		first.CSAT != second.CSAT {
		t.Error("snapshots within the same minute must be identical")
	}
}

func TestAnalyticsSnapshotRanges(t *testing.T) {
	analytics := services.NewAnalyticsService()
	snapshot := analytics.Snapshot(time.Now())

	if snapshot.ResponseTimeSeconds < 20 {
		t.Errorf("response time below floor: %d", snapshot.ResponseTimeSeconds)
	}
	if snapshot.AIResponseSeconds != snapshot.ResponseTimeSeconds {
		t.Error("AI response time should mirror the headline response time")
	}
	if snapshot.HumanResponseSeconds != 4*60*60 {
		t.Errorf("expected the 4h human baseline, got %d", snapshot.HumanResponseSeconds)
	}
	if snapshot.TicketsToday < 120 || snapshot.TicketsToday > 320 {
		t.Errorf("tickets out of range: %d", snapshot.TicketsToday)
	}
	if snapshot.ResolvedToday > snapshot.TicketsToday {
		t.Errorf("resolved (%d) cannot exceed tickets (%d)", snapshot.ResolvedToday, snapshot.TicketsToday)
	}
	if len(snapshot.Series) != 24 {
		t.Fatalf("expected a 24-point series, got %d", len(snapshot.Series))
	}
	for i, point := range snapshot.Series {
		if point.Hour != i {
			t.Errorf("series point %d labeled hour %d", i, point.Hour)
		}
	}
}

func TestAnalyticsROIFormula(t *testing.T) {
	analytics := services.NewAnalyticsService()
	snapshot := analytics.Snapshot(time.Now())

	want := math.Round((3.50-0.35)*float64(snapshot.ResolvedToday)*100) / 100
	if snapshot.ROISavingsUSD != want {
		t.Errorf("expected ROI %.2f, got %.2f", want, snapshot.ROISavingsUSD)
	}
}
