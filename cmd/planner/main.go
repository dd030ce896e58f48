package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"market-tour-service/internal/adapters/repositories"
	"market-tour-service/internal/adapters/travel"
	"market-tour-service/internal/config"
	"market-tour-service/internal/domain"
	"market-tour-service/internal/services"
)

// planner runs a full multi-day tour computation offline, from JSON data
// files to JSON result files. Useful for tuning engine parameters without
// standing up the HTTP server.
func main() {
	configPath := flag.String("config", "config.yaml", "path to the planner YAML configuration")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("component", "planner").Logger()

	cfg, err := config.LoadPlannerConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}
	if !cfg.Output.Verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	markets, err := repositories.LoadMarketsJSON(cfg.Data.MarketsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load markets")
	}

	provider, err := travel.NewFileTravelProvider(cfg.Data.TravelTimesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load travel times")
	}

	problem := domain.NewProblemInstance(markets, provider.Table(), cfg.Problem.NumDays, cfg.Problem.StayMinutes, cfg.Problem.TransferBuffer)

	planner, err := services.NewPlanner(problem, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build planner")
	}

	log.Info().
		Str("algorithm", cfg.Algorithm.Type).
		Int("markets", len(markets)).
		Int("days", cfg.Problem.NumDays).
		Msg("planning tour")

	tour := services.PlanTour(problem, planner)

	for _, day := range tour.Days {
		log.Info().
			Int("day", day.Day).
			Int("visited", day.Visited).
			Float64("travel_minutes", day.TravelMinutes).
			Ints("route", day.Route).
			Msg("day planned")
	}
	log.Info().
		Int("total_visited", tour.TotalVisited).
		Int("unvisited", len(tour.Unvisited)).
		Msg("tour complete")

	if err := writeResults(cfg.Output.ResultsDir, cfg.Algorithm.Type, tour); err != nil {
		log.Fatal().Err(err).Msg("write results")
	}
	log.Info().Str("dir", cfg.Output.ResultsDir).Msg("results written")
}

type dayResult struct {
	Day           int      `json:"day"`
	Route         []int    `json:"route"`
	Arrivals      []string `json:"arrivals"`
	Visited       int      `json:"visited"`
	TravelMinutes float64  `json:"travel_minutes"`
	TotalMinutes  float64  `json:"total_minutes"`
	Feasible      bool     `json:"feasible"`
}

type summaryResult struct {
	Algorithm    string `json:"algorithm"`
	Days         int    `json:"days"`
	TotalVisited int    `json:"total_visited"`
	Unvisited    []int  `json:"unvisited"`
}

func writeResults(dir, algorithm string, tour domain.MultiDaySolution) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write results: create %q: %w", dir, err)
	}

	for _, day := range tour.Days {
		arrivals := make([]string, 0, len(day.Arrivals))
		for _, a := range day.Arrivals {
			arrivals = append(arrivals, a.String())
		}
		res := dayResult{
			Day:           day.Day,
			Route:         day.Route,
			Arrivals:      arrivals,
			Visited:       day.Visited,
			TravelMinutes: day.TravelMinutes,
			TotalMinutes:  day.TotalMinutes,
			Feasible:      day.Feasible,
		}
		name := filepath.Join(dir, fmt.Sprintf("day%d_solution.json", day.Day))
		if err := writeJSONFile(name, res); err != nil {
			return err
		}
	}

	summary := summaryResult{
		Algorithm:    algorithm,
		Days:         len(tour.Days),
		TotalVisited: tour.TotalVisited,
		Unvisited:    tour.Unvisited,
	}
	return writeJSONFile(filepath.Join(dir, "summary.json"), summary)
}

func writeJSONFile(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("write results: marshal %q: %w", path, err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write results: write %q: %w", path, err)
	}
	return nil
}
