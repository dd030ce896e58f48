package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"market-tour-service/internal/domain"
)

type travelTimesFile struct {
	Times map[string]map[string]float64 `json:"times"`
}

// FileTravelProvider serves travel times from a pre-computed JSON table
// instead of an external API. The file shape is
// {"times": {"<fromID>": {"<toID>": <minutes>}}}; missing pairs resolve the
// way the domain table does (symmetric fallback, then unreachable).
type FileTravelProvider struct {
	times domain.TravelTimes
}

func NewFileTravelProvider(path string) (*FileTravelProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("file travel provider: read %q: %w", path, err)
	}

	var parsed travelTimesFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("file travel provider: parse %q: %w", path, err)
	}

	times := make(domain.TravelTimes)
	for fromStr, row := range parsed.Times {
		from, err := strconv.Atoi(fromStr)
		if err != nil {
			return nil, fmt.Errorf("file travel provider: origin key %q: %w", fromStr, err)
		}
		for toStr, minutes := range row {
			to, err := strconv.Atoi(toStr)
			if err != nil {
				return nil, fmt.Errorf("file travel provider: destination key %q: %w", toStr, err)
			}
			times[domain.TravelKey{From: from, To: to}] = minutes
		}
	}

	return &FileTravelProvider{times: times}, nil
}

// Table returns the full table for callers that want to hand it straight to
// a ProblemInstance without pairwise lookups.
func (f *FileTravelProvider) Table() domain.TravelTimes { return f.times }

func (f *FileTravelProvider) GetTravelTime(_ context.Context, origin, destination domain.Market) (float64, error) {
	return f.times.Get(origin.ID, destination.ID), nil
}

func (f *FileTravelProvider) GetTravelTimes(_ context.Context, origin domain.Market, destinations []domain.Market) (map[int]float64, error) {
	out := make(map[int]float64, len(destinations))
	for _, d := range destinations {
		out[d.ID] = f.times.Get(origin.ID, d.ID)
	}
	return out, nil
}
