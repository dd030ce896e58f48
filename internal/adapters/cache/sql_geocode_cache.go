package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"market-tour-service/internal/domain"
)

// SQLGeocodeCache stores resolved market coordinates in Postgres.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

func (s *SQLGeocodeCache) GetMany(ctx context.Context, names []string) (map[string]domain.Coordinates, error) {
	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	if len(names) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		uniq = append(uniq, n)
	}

	q := `
	SELECT name, lon, lat
	FROM geocode_cache
	WHERE name = ANY($1::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, uniq)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var name string
		var c domain.Coordinates
		if err := rows.Scan(&name, &c.Lon, &c.Lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[name] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

func (s *SQLGeocodeCache) PutMany(ctx context.Context, coords map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(coords) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (name, lon, lat)
	VALUES ($1, $2, $3)
	ON CONFLICT (name) DO UPDATE
	SET lon = EXCLUDED.lon, lat = EXCLUDED.lat;
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for name, c := range coords {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, name, c.Lon, c.Lat); err != nil {
			return fmt.Errorf("insert geocode cache name=%q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
