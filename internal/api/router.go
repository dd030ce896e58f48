package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"market-tour-service/internal/api/handlers"
	"market-tour-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(repo ports.MarketRepository, provider ports.TravelTimeProvider, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	marketHandler := &handlers.MarketHandler{Repo: repo}
	tourHandler := &handlers.TourHandler{
		Repo:     repo,
		Provider: provider,
		Log:      log,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/markets", marketHandler.List)
	mux.HandleFunc("/tours", tourHandler.Plan)

	return loggingMiddleware(mux, log)
}
