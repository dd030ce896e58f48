package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"market-tour-service/internal/domain"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createMarketsQuery := `
	CREATE TABLE IF NOT EXISTS markets (
		market_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		opening_time TEXT NOT NULL,
		closing_time TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);
	`

	if _, err := tx.Exec(createMarketsQuery); err != nil {
		return fmt.Errorf("init schema: create markets table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type MarketSeed struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	OpeningTime string  `json:"opening_time"`
	ClosingTime string  `json:"closing_time"`
	Description string  `json:"description"`
}

// Read and validate a markets JSON file. Shared between the seeder and the
// CLI planner, which builds a problem instance straight from the file.
func LoadMarketsJSON(jsonPath string) ([]domain.Market, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load markets: read %q: %w", jsonPath, err)
	}

	var data []MarketSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("load markets: parse json: %w", err)
	}

	markets := make([]domain.Market, 0, len(data))
	for i, item := range data {
		if item.ID <= 0 {
			return nil, fmt.Errorf("load markets: invalid id at index %d: %d", i+1, item.ID)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("load markets: item at index %d: name cannot be empty", i+1)
		}

		open, err := domain.ParseClock(item.OpeningTime)
		if err != nil {
			return nil, fmt.Errorf("load markets: item %d opening time: %w", item.ID, err)
		}
		closeAt, err := domain.ParseClock(item.ClosingTime)
		if err != nil {
			return nil, fmt.Errorf("load markets: item %d closing time: %w", item.ID, err)
		}

		markets = append(markets, domain.Market{
			ID:          item.ID,
			Name:        name,
			Lat:         item.Latitude,
			Lon:         item.Longitude,
			Opening:     open,
			Closing:     closeAt,
			Description: strings.TrimSpace(item.Description),
		})
	}

	return markets, nil
}

// Populate the database with market data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	markets, err := LoadMarketsJSON(jsonPath)
	if err != nil {
		return fmt.Errorf("seed markets: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed markets: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR REPLACE INTO markets (
		market_id,
		name,
		latitude,
		longitude,
		opening_time,
		closing_time,
		description
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed markets: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range markets {
		_, err := stmt.Exec(m.ID, m.Name, m.Lat, m.Lon, m.Opening.String(), m.Closing.String(), m.Description)
		if err != nil {
			return fmt.Errorf("seed markets: insert market_id=%d: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed markets: commit tx: %w", err)
	}

	return nil
}
