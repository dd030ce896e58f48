package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLTravelCache is a Postgres-backed cache for origin->destination travel
// durations, for deployments that share one cache between instances.
type SQLTravelCache struct {
	DB *sql.DB
}

func NewSQLTravelCache(db *sql.DB) *SQLTravelCache {
	return &SQLTravelCache{DB: db}
}

// Fetch cached travel minutes for one origin market and many destinations.
func (s *SQLTravelCache) GetMany(ctx context.Context, originID int, destinationIDs []int) (map[int]float64, error) {
	if s.DB == nil {
		return nil, errors.New("travel cache: db is nil")
	}

	if len(destinationIDs) == 0 {
		return map[int]float64{}, nil
	}

	seen := map[int]struct{}{}
	uniq := make([]int, 0, len(destinationIDs))
	for _, id := range destinationIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	q := `
	SELECT destination_id, minutes
	FROM travel_time_cache
	WHERE origin_id = $1
		AND destination_id = ANY($2::int[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, originID, uniq)
	if err != nil {
		return nil, fmt.Errorf("get travel cache: query travel_time_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[int]float64, len(uniq))
	for rows.Next() {
		var dest int
		var minutes float64
		if err := rows.Scan(&dest, &minutes); err != nil {
			return nil, fmt.Errorf("get travel cache: scan rows: %w", err)
		}
		out[dest] = minutes
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get travel cache: row iteration: %w", err)
	}

	return out, nil
}

// Store many travel durations for a single origin market.
func (s *SQLTravelCache) PutMany(ctx context.Context, originID int, minutes map[int]float64) error {
	if s.DB == nil {
		return errors.New("travel cache: db is nil")
	}

	if len(minutes) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert travel cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO travel_time_cache (origin_id, destination_id, minutes)
	VALUES ($1, $2, $3)
	ON CONFLICT (origin_id, destination_id) DO UPDATE
	SET minutes = EXCLUDED.minutes;
	`)
	if err != nil {
		return fmt.Errorf("insert travel cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, m := range minutes {
		if _, err := stmt.ExecContext(ctx, originID, dest, m); err != nil {
			return fmt.Errorf("insert travel cache dest=%d: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert travel cache commit: %w", err)
	}

	return nil
}
