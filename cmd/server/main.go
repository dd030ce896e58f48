package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"market-tour-service/internal/adapters/cache"
	"market-tour-service/internal/adapters/repositories"
	"market-tour-service/internal/adapters/travel"
	"market-tour-service/internal/api"
	"market-tour-service/internal/config"
	"market-tour-service/internal/platform/db"
	"market-tour-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, ORS, Redis) behind ports and starts
// the HTTP server.
func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Str("component", "server").Logger()
	zlog.Logger = log

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/markets.json")
	port := config.Get("PORT", "8080")

	sqlDB, err := db.OpenSqlite(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer sqlDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := repositories.InitSchema(sqlDB); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}
	if err := cache.InitSchema(sqlDB); err != nil {
		log.Fatal().Err(err).Msg("init cache schema")
	}
	if err := repositories.SeedFromJSON(sqlDB, seedPath); err != nil {
		log.Fatal().Err(err).Msg("seed markets")
	}

	provider, err := buildTravelProvider(sqlDB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build travel provider")
	}

	repo := repositories.NewSqliteMarketRepository(sqlDB)
	router := api.NewRouter(repo, provider, log)

	// Timeouts are tuned for cold-cache tour planning (external API latency).
	log.Info().Str("addr", ":"+port).Msg("server listening")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

// buildTravelProvider selects the travel-time source. A static JSON table
// serves fully offline runs; otherwise ORS backed by the configured cache.
func buildTravelProvider(sqlDB *sql.DB, log zerolog.Logger) (ports.TravelTimeProvider, error) {
	if path := strings.TrimSpace(os.Getenv("TRAVEL_TIMES_PATH")); path != "" {
		log.Info().Str("path", path).Msg("using file travel provider")
		return travel.NewFileTravelProvider(path)
	}

	orsKey := strings.TrimSpace(os.Getenv("ORS_API_KEY"))
	if orsKey == "" {
		return nil, fmt.Errorf("build travel provider: ORS_API_KEY is required unless TRAVEL_TIMES_PATH is set")
	}

	var travelCache travel.TravelCache
	geocodeCache := travel.GeocodeCache(cache.NewSqliteGeocodeCache(sqlDB))

	backend := strings.ToLower(config.Get("CACHE_BACKEND", "sqlite"))
	switch backend {
	case "sqlite":
		travelCache = cache.NewSqliteTravelCache(sqlDB)
	case "postgres":
		databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
		if databaseURL == "" {
			return nil, fmt.Errorf("build travel provider: DATABASE_URL is required for the postgres cache backend")
		}
		pg, err := db.OpenPostgres(databaseURL)
		if err != nil {
			return nil, fmt.Errorf("build travel provider: %w", err)
		}
		travelCache = cache.NewSQLTravelCache(pg)
		geocodeCache = cache.NewSQLGeocodeCache(pg)
	case "redis":
		addr := config.Get("REDIS_ADDR", "localhost:6379")
		client := redis.NewClient(&redis.Options{Addr: addr})
		travelCache = cache.NewRedisTravelCache(client, 24*time.Hour)
	default:
		return nil, fmt.Errorf("build travel provider: unknown cache backend %q", backend)
	}

	log.Info().Str("cache_backend", backend).Msg("using ORS travel provider")
	return travel.NewORSTravelProvider(orsKey, travelCache, geocodeCache, log)
}
