package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"market-tour-service/internal/api/dto"
	"market-tour-service/internal/config"
	"market-tour-service/internal/domain"
	"market-tour-service/internal/platform/obs"
	"market-tour-service/internal/ports"
	"market-tour-service/internal/services"
)

type TourHandler struct {
	Repo     ports.MarketRepository
	Provider ports.TravelTimeProvider
	Log      zerolog.Logger
}

// Plan orchestrates a full multi-day tour computation: load markets, build
// the travel-time table, run the selected engine day by day.
func (h *TourHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.TourRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	cfg, msg := applyOverrides(config.Default(), req)
	if msg != "" {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}

	markets, err := h.Repo.ListMarkets(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list markets failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(markets) == 0 {
		writeError(w, r, http.StatusConflict, "no markets available to plan")
		return
	}

	var planErr error
	done := obs.Time(r.Context(), "plan_tour")

	travel, err := services.BuildTravelTimes(r.Context(), markets, h.Provider)
	if err != nil {
		planErr = err
		done(&planErr)
		log.Error().Err(err).Msg("build travel times failed")
		writeError(w, r, http.StatusBadGateway, "travel time lookup failed")
		return
	}

	problem := domain.NewProblemInstance(markets, travel, cfg.Problem.NumDays, cfg.Problem.StayMinutes, cfg.Problem.TransferBuffer)

	planner, err := services.NewPlanner(problem, cfg, h.Log)
	if err != nil {
		planErr = err
		done(&planErr)
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	tour := services.PlanTour(problem, planner)
	done(&planErr)

	res := dto.TourResponse{
		Algorithm:    cfg.Algorithm.Type,
		Days:         make([]dto.DayPlanResponse, 0, len(tour.Days)),
		TotalVisited: tour.TotalVisited,
		Unvisited:    tour.Unvisited,
	}
	for _, day := range tour.Days {
		arrivals := make([]string, 0, len(day.Arrivals))
		for _, a := range day.Arrivals {
			arrivals = append(arrivals, a.String())
		}
		res.Days = append(res.Days, dto.DayPlanResponse{
			Day:           day.Day,
			Route:         day.Route,
			Arrivals:      arrivals,
			Visited:       day.Visited,
			TravelMinutes: day.TravelMinutes,
			TotalMinutes:  day.TotalMinutes,
			Feasible:      day.Feasible,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// applyOverrides folds request fields over the default configuration and
// validates the result. A non-empty message means a client error.
func applyOverrides(cfg config.PlannerConfig, req dto.TourRequest) (config.PlannerConfig, string) {
	if req.Algorithm != "" {
		cfg.Algorithm.Type = req.Algorithm
	}
	if req.NumDays != 0 {
		cfg.Problem.NumDays = req.NumDays
	}
	if cfg.Problem.NumDays < 1 || cfg.Problem.NumDays > 14 {
		return cfg, "num_days must be between 1 and 14"
	}

	if len(req.StayMinutes) > 0 {
		for _, s := range req.StayMinutes {
			if s < 1 {
				return cfg, "stay_minutes entries must be positive"
			}
		}
		cfg.Problem.StayMinutes = req.StayMinutes
	}
	if req.TransferBuffer != nil {
		if *req.TransferBuffer < 0 {
			return cfg, "transfer_buffer must not be negative"
		}
		cfg.Problem.TransferBuffer = *req.TransferBuffer
	}

	if g := req.Greedy; g != nil {
		if g.Policy != "" {
			cfg.Greedy.Policy = g.Policy
		}
		if g.DistanceWeight != nil {
			cfg.Greedy.DistanceWeight = *g.DistanceWeight
		}
		if g.TimeWindowWeight != nil {
			cfg.Greedy.TimeWindowWeight = *g.TimeWindowWeight
		}
	}

	if a := req.ACO; a != nil {
		if a.NumAnts != 0 {
			cfg.ACO.NumAnts = a.NumAnts
		}
		if a.NumIterations != 0 {
			cfg.ACO.NumIterations = a.NumIterations
		}
		if cfg.ACO.NumAnts < 1 || cfg.ACO.NumAnts > 500 {
			return cfg, "aco.num_ants must be between 1 and 500"
		}
		if cfg.ACO.NumIterations < 1 || cfg.ACO.NumIterations > 2000 {
			return cfg, "aco.num_iterations must be between 1 and 2000"
		}
		if a.Alpha != nil {
			cfg.ACO.Alpha = *a.Alpha
		}
		if a.Beta != nil {
			cfg.ACO.Beta = *a.Beta
		}
		if a.Gamma != nil {
			cfg.ACO.Gamma = *a.Gamma
		}
		if a.Evaporation != nil {
			if *a.Evaporation < 0 || *a.Evaporation >= 1 {
				return cfg, "aco.evaporation must be in [0, 1)"
			}
			cfg.ACO.Evaporation = *a.Evaporation
		}
		if a.PheromoneInit != nil {
			cfg.ACO.PheromoneInit = *a.PheromoneInit
		}
		if a.Q != nil {
			cfg.ACO.Q = *a.Q
		}
		if a.UseElite != nil {
			cfg.ACO.UseElite = *a.UseElite
		}
		if a.EliteWeight != nil {
			cfg.ACO.EliteWeight = *a.EliteWeight
		}
		if a.Seed != nil {
			cfg.ACO.Seed = *a.Seed
		}
	}

	return cfg, ""
}
