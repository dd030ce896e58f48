package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "aco", cfg.Algorithm.Type)
	assert.Equal(t, 1, cfg.Problem.NumDays)
	assert.Equal(t, []int{30}, cfg.Problem.StayMinutes)
	assert.Equal(t, 5, cfg.Problem.TransferBuffer)
	assert.Equal(t, 50, cfg.ACO.NumAnts)
	assert.Equal(t, int64(42), cfg.ACO.Seed)
	assert.Equal(t, "hybrid", cfg.Greedy.Policy)
}

func TestLoadPlannerConfigOverlaysPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	payload := `
problem:
  num_days: 3
  stay_minutes: [45, 30, 30]
algorithm:
  type: greedy
greedy:
  policy: earliest_closing
`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	cfg, err := LoadPlannerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Problem.NumDays)
	assert.Equal(t, []int{45, 30, 30}, cfg.Problem.StayMinutes)
	assert.Equal(t, "greedy", cfg.Algorithm.Type)
	assert.Equal(t, "earliest_closing", cfg.Greedy.Policy)

	// Everything the file does not mention keeps its default.
	assert.Equal(t, 5, cfg.Problem.TransferBuffer)
	assert.Equal(t, 50, cfg.ACO.NumAnts)
	assert.Equal(t, 0.5, cfg.ACO.Evaporation)
	assert.Equal(t, "results", cfg.Output.ResultsDir)
}

func TestLoadPlannerConfigErrors(t *testing.T) {
	_, err := LoadPlannerConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("problem: [not a map"), 0o644))
	_, err = LoadPlannerConfig(path)
	assert.Error(t, err)
}

func TestGetReadsEnvWithFallback(t *testing.T) {
	t.Setenv("MARKET_TOUR_TEST_KEY", "set")
	assert.Equal(t, "set", Get("MARKET_TOUR_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", Get("MARKET_TOUR_TEST_MISSING", "fallback"))
}
