package ports

import (
	"context"

	"market-tour-service/internal/domain"
)

// Port: a boundary for retrieving Market entities from a data source.
type MarketRepository interface {
	// Retrieve all markets available for planning.
	ListMarkets(ctx context.Context) ([]domain.Market, error)
}
