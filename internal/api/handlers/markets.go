package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"market-tour-service/internal/api/dto"
	"market-tour-service/internal/ports"
)

// MarketHandler exposes read-only market retrieval endpoints.
type MarketHandler struct {
	Repo ports.MarketRepository
}

func (h *MarketHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	markets, err := h.Repo.ListMarkets(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list markets failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListMarketsResponse{
		Markets: make([]dto.MarketResponse, 0, len(markets)),
	}
	for _, m := range markets {
		res.Markets = append(res.Markets, dto.MarketResponse{
			ID:          m.ID,
			Name:        m.Name,
			Latitude:    m.Lat,
			Longitude:   m.Lon,
			OpeningTime: m.Opening.String(),
			ClosingTime: m.Closing.String(),
			Description: m.Description,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
