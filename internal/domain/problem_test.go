package domain

import (
	"math"
	"testing"
)

func TestTravelTimesLookup(t *testing.T) {
	tt := TravelTimes{
		{From: 1, To: 2}: 12.5,
	}

	if got := tt.Get(1, 2); got != 12.5 {
		t.Fatalf("forward lookup = %v, want 12.5", got)
	}

	// Sparse tables are treated as symmetric via reversed-pair fallback.
	if got := tt.Get(2, 1); got != 12.5 {
		t.Fatalf("reversed lookup = %v, want 12.5", got)
	}

	// Self-pairs cost zero without consulting the table.
	if got := tt.Get(7, 7); got != 0 {
		t.Fatalf("self lookup = %v, want 0", got)
	}

	// Unknown pairs are unreachable.
	if got := tt.Get(1, 3); !math.IsInf(got, 1) {
		t.Fatalf("missing lookup = %v, want +Inf", got)
	}
}

func TestNewProblemInstancePadsStayDurations(t *testing.T) {
	markets := []Market{
		{ID: 10, Opening: Clock(600), Closing: Clock(1200)},
		{ID: 20, Opening: Clock(600), Closing: Clock(1200)},
	}

	p := NewProblemInstance(markets, TravelTimes{}, 3, []int{45}, 5)

	if len(p.StayDurations) != 3 {
		t.Fatalf("stay durations len = %d, want 3", len(p.StayDurations))
	}
	for day := 1; day <= 3; day++ {
		if p.StayDuration(day) != 45 {
			t.Fatalf("day %d stay = %d, want 45", day, p.StayDuration(day))
		}
	}

	// Empty stay list falls back to the default dwell time.
	p = NewProblemInstance(markets, TravelTimes{}, 2, nil, 5)
	if p.StayDuration(1) != 30 || p.StayDuration(2) != 30 {
		t.Fatalf("default stays = %v, want [30 30]", p.StayDurations)
	}
}

func TestProblemInstanceIndex(t *testing.T) {
	markets := []Market{
		{ID: 7, Name: "Rathausplatz"},
		{ID: 3, Name: "Spittelberg"},
	}
	p := NewProblemInstance(markets, TravelTimes{}, 1, []int{30}, 0)

	if p.IndexOf(7) != 0 || p.IndexOf(3) != 1 {
		t.Fatalf("dense indices = %d,%d, want 0,1", p.IndexOf(7), p.IndexOf(3))
	}
	if p.IndexOf(99) != -1 {
		t.Fatalf("unknown id index = %d, want -1", p.IndexOf(99))
	}

	m, ok := p.MarketByID(3)
	if !ok || m.Name != "Spittelberg" {
		t.Fatalf("MarketByID(3) = %+v ok=%v", m, ok)
	}
	if _, ok := p.MarketByID(99); ok {
		t.Fatal("MarketByID(99) should miss")
	}
}

func TestProblemInstanceDayBounds(t *testing.T) {
	markets := []Market{
		{ID: 1, Opening: Clock(600), Closing: Clock(1290)},
		{ID: 2, Opening: Clock(540), Closing: Clock(1200)},
	}
	p := NewProblemInstance(markets, TravelTimes{}, 1, []int{30}, 0)

	if p.EarliestOpening() != Clock(540) {
		t.Fatalf("earliest opening = %v, want 09:00", p.EarliestOpening())
	}
	if p.LatestClosing() != Clock(1290) {
		t.Fatalf("latest closing = %v, want 21:30", p.LatestClosing())
	}
}
