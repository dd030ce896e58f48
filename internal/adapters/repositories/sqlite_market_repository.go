package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"market-tour-service/internal/domain"
)

// SQLite-backed implementation of the MarketRepository port.
type SqliteMarketRepository struct{ DB *sql.DB }

func NewSqliteMarketRepository(db *sql.DB) *SqliteMarketRepository {
	return &SqliteMarketRepository{DB: db}
}

// Return all markets stored in the database, ordered by id.
func (s *SqliteMarketRepository) ListMarkets(ctx context.Context) ([]domain.Market, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite market repository: DB is nil")
	}

	query := `
	SELECT
		market_id,
		name,
		latitude,
		longitude,
		opening_time,
		closing_time,
		description
	FROM markets
	ORDER BY market_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list markets: query markets table: %w", err)
	}
	defer rows.Close()

	markets := make([]domain.Market, 0, 64)
	for rows.Next() {
		var (
			id               int
			name, desc       string
			lat, lon         float64
			opening, closing string
		)
		err := rows.Scan(&id, &name, &lat, &lon, &opening, &closing, &desc)
		if err != nil {
			return nil, fmt.Errorf("list markets: scan row: %w", err)
		}

		open, err := domain.ParseClock(opening)
		if err != nil {
			return nil, fmt.Errorf("list markets: market %d opening time: %w", id, err)
		}
		closeAt, err := domain.ParseClock(closing)
		if err != nil {
			return nil, fmt.Errorf("list markets: market %d closing time: %w", id, err)
		}

		markets = append(markets, domain.Market{
			ID:          id,
			Name:        name,
			Lat:         lat,
			Lon:         lon,
			Opening:     open,
			Closing:     closeAt,
			Description: desc,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list markets: row iteration: %w", err)
	}

	return markets, nil
}
