package ports

import (
	"context"

	"market-tour-service/internal/domain"
)

// Contract for retrieving travel durations between markets.
type TravelTimeProvider interface {
	// Return the travel duration in minutes between two markets.
	GetTravelTime(ctx context.Context, origin, destination domain.Market) (float64, error)
}
