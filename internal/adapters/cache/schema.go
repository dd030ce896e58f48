package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the cache tables. The DDL is portable between SQLite
// and Postgres so both backends share it.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init cache schema: DB is nil")
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS travel_time_cache (
			origin_id INTEGER NOT NULL,
			destination_id INTEGER NOT NULL,
			minutes REAL NOT NULL,
			PRIMARY KEY (origin_id, destination_id)
		);`,
		`CREATE TABLE IF NOT EXISTS geocode_cache (
			name TEXT PRIMARY KEY,
			lon REAL NOT NULL,
			lat REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_travel_time_cache_destination_origin
		ON travel_time_cache(destination_id, origin_id);`,
	}

	for i, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init cache schema: exec statement #%d: %w", i+1, err)
		}
	}

	return nil
}
