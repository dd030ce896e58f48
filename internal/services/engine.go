package services

import (
	"fmt"

	"github.com/rs/zerolog"

	"market-tour-service/internal/config"
	"market-tour-service/internal/domain"
)

// Engine type selectors.
const (
	EngineACO    = "aco"
	EngineGreedy = "greedy"
)

// NewPlanner builds the engine selected by the configuration. An
// unrecognized engine type is a fatal configuration error; unrecognized
// greedy policy names are not (the greedy engine falls back to hybrid).
func NewPlanner(problem *domain.ProblemInstance, cfg config.PlannerConfig, log zerolog.Logger) (TourPlanner, error) {
	switch cfg.Algorithm.Type {
	case EngineACO:
		return NewAntColonyPlanner(problem, AntColonyConfig{
			NumAnts:       cfg.ACO.NumAnts,
			NumIterations: cfg.ACO.NumIterations,
			Alpha:         cfg.ACO.Alpha,
			Beta:          cfg.ACO.Beta,
			Gamma:         cfg.ACO.Gamma,
			Evaporation:   cfg.ACO.Evaporation,
			PheromoneInit: cfg.ACO.PheromoneInit,
			Q:             cfg.ACO.Q,
			UseElite:      cfg.ACO.UseElite,
			EliteWeight:   cfg.ACO.EliteWeight,
			Seed:          cfg.ACO.Seed,
		}, log), nil
	case EngineGreedy:
		return NewGreedyPlanner(problem, cfg.Greedy.Policy, cfg.Greedy.DistanceWeight, cfg.Greedy.TimeWindowWeight, log), nil
	default:
		return nil, fmt.Errorf("new planner: unknown algorithm type %q", cfg.Algorithm.Type)
	}
}
