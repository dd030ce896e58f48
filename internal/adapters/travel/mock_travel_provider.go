package travel

import (
	"context"
	"fmt"

	"market-tour-service/internal/domain"
)

type MockPair struct {
	From, To int
	Minutes  float64
}

// MockTravelProvider serves a fixed pair table for tests.
type MockTravelProvider struct {
	m map[domain.TravelKey]float64
}

func NewMockTravelProvider(pairs []MockPair) *MockTravelProvider {
	m := make(map[domain.TravelKey]float64, len(pairs))
	for _, p := range pairs {
		m[domain.TravelKey{From: p.From, To: p.To}] = p.Minutes
	}
	return &MockTravelProvider{m: m}
}

func (p *MockTravelProvider) GetTravelTime(_ context.Context, origin, destination domain.Market) (float64, error) {
	r, ok := p.m[domain.TravelKey{From: origin.ID, To: destination.ID}]
	if !ok {
		return 0, fmt.Errorf("missing pair %d -> %d", origin.ID, destination.ID)
	}
	return r, nil
}
