package ports

import (
	"context"

	"market-tour-service/internal/domain"
)

// Optional extension of TravelTimeProvider that supports batched lookups.
type TravelMatrixProvider interface {
	TravelTimeProvider
	// Return travel minutes from one origin market to many destinations,
	// keyed by destination market ID.
	GetTravelTimes(ctx context.Context, origin domain.Market, destinations []domain.Market) (map[int]float64, error)
}
