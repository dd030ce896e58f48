package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"market-tour-service/internal/adapters/cache"
	"market-tour-service/internal/platform/db"
)

// dbtool prepares the shared Postgres cache database used when several
// server instances run with CACHE_BACKEND=postgres.
func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Str("component", "dbtool").Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	pg, err := db.OpenPostgres(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open postgres")
	}
	defer pg.Close()

	log.Info().Msg("initializing cache schema")
	if err := cache.InitSchema(pg); err != nil {
		log.Fatal().Err(err).Msg("cache schema initialization failed")
	}
	log.Info().Msg("cache schema ready")
}
