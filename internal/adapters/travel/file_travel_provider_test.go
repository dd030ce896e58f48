package travel

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-tour-service/internal/domain"
)

func writeTravelFile(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "travel_times.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))
	return path
}

func TestFileTravelProviderLookups(t *testing.T) {
	path := writeTravelFile(t, `{"times": {"1": {"2": 12.5, "3": 20}, "2": {"1": 10}}}`)

	p, err := NewFileTravelProvider(path)
	require.NoError(t, err)

	table := p.Table()
	assert.Equal(t, 12.5, table.Get(1, 2))
	assert.Equal(t, 10.0, table.Get(2, 1))

	// Missing reverse pair falls back to the forward entry.
	assert.Equal(t, 20.0, table.Get(3, 1))

	// Entirely unknown pairs are unreachable.
	assert.True(t, math.IsInf(table.Get(3, 9), 1))

	// Self-travel is free.
	assert.Equal(t, 0.0, table.Get(2, 2))
}

func TestFileTravelProviderServesPorts(t *testing.T) {
	path := writeTravelFile(t, `{"times": {"1": {"2": 12.5, "3": 20}}}`)

	p, err := NewFileTravelProvider(path)
	require.NoError(t, err)

	origin := domain.Market{ID: 1}
	minutes, err := p.GetTravelTime(context.Background(), origin, domain.Market{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, 12.5, minutes)

	batch, err := p.GetTravelTimes(context.Background(), origin, []domain.Market{{ID: 2}, {ID: 3}})
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{2: 12.5, 3: 20}, batch)
}

func TestFileTravelProviderRejectsBadInput(t *testing.T) {
	_, err := NewFileTravelProvider(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = NewFileTravelProvider(writeTravelFile(t, `not json`))
	assert.Error(t, err)

	_, err = NewFileTravelProvider(writeTravelFile(t, `{"times": {"abc": {"2": 5}}}`))
	assert.Error(t, err)

	_, err = NewFileTravelProvider(writeTravelFile(t, `{"times": {"1": {"xyz": 5}}}`))
	assert.Error(t, err)
}
