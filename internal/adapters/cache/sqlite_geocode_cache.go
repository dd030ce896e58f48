package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"market-tour-service/internal/domain"
)

// SQLite-backed cache mapping market names to geographic coordinates.
// Name keys are expected to be consistent across callers.
type SqliteGeocodeCache struct {
	DB *sql.DB
}

func NewSqliteGeocodeCache(db *sql.DB) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db}
}

// Fetch cached coordinates for the given market names.
func (s *SqliteGeocodeCache) GetMany(ctx context.Context, names []string) (map[string]domain.Coordinates, error) {
	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	if len(names) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(names))
	ph := make([]string, 0, len(names))
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
		ph = append(ph, "?")
	}

	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	args := make([]any, 0, len(uniq))
	for _, n := range uniq {
		args = append(args, n)
	}

	q := fmt.Sprintf(`
	SELECT name, lon, lat
	FROM geocode_cache
	WHERE name IN (%s);
	`, strings.Join(ph, ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var name string
		var lon, lat float64
		if err := rows.Scan(&name, &lon, &lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[name] = domain.Coordinates{Lon: lon, Lat: lat}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store name -> coordinate mappings in the cache.
func (s *SqliteGeocodeCache) PutMany(ctx context.Context, coords map[string]domain.Coordinates) error {
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
	INSERT OR REPLACE INTO geocode_cache (name, lon, lat)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for name, c := range coords {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("insert geocode cache: empty name key")
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
