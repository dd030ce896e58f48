package travel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-tour-service/internal/domain"
)

// memTravelCache is an in-memory TravelCache for provider tests.
type memTravelCache struct {
	entries map[domain.TravelKey]float64
	puts    int
}

func newMemTravelCache() *memTravelCache {
	return &memTravelCache{entries: map[domain.TravelKey]float64{}}
}

func (c *memTravelCache) GetMany(_ context.Context, originID int, destinationIDs []int) (map[int]float64, error) {
	out := map[int]float64{}
	for _, d := range destinationIDs {
		if v, ok := c.entries[domain.TravelKey{From: originID, To: d}]; ok {
			out[d] = v
		}
	}
	return out, nil
}

func (c *memTravelCache) PutMany(_ context.Context, originID int, minutes map[int]float64) error {
	c.puts++
	for d, v := range minutes {
		c.entries[domain.TravelKey{From: originID, To: d}] = v
	}
	return nil
}

type memGeocodeCache struct {
	entries map[string]domain.Coordinates
}

func (c *memGeocodeCache) GetMany(_ context.Context, names []string) (map[string]domain.Coordinates, error) {
	out := map[string]domain.Coordinates{}
	for _, n := range names {
		if v, ok := c.entries[n]; ok {
			out[n] = v
		}
	}
	return out, nil
}

func (c *memGeocodeCache) PutMany(_ context.Context, coords map[string]domain.Coordinates) error {
	for n, v := range coords {
		c.entries[n] = v
	}
	return nil
}

func newTestProvider(t *testing.T, serverURL string, tc TravelCache, gc GeocodeCache) *ORSTravelProvider {
	t.Helper()
	p, err := NewORSTravelProvider("test-key", tc, gc, zerolog.Nop())
	require.NoError(t, err)
	p.baseURL = serverURL
	return p
}

func sec(v float64) *float64 { return &v }

func TestORSProviderFetchesAndCachesMatrixRow(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Path, "/v2/matrix/")
		json.NewEncoder(w).Encode(matrixResponse{Durations: [][]*float64{{sec(300), sec(600)}}})
	}))
	defer srv.Close()

	tc := newMemTravelCache()
	p := newTestProvider(t, srv.URL, tc, &memGeocodeCache{entries: map[string]domain.Coordinates{}})

	origin := domain.Market{ID: 1, Name: "Central", Lat: 52.52, Lon: 13.41}
	dests := []domain.Market{
		{ID: 2, Name: "Harbour", Lat: 52.51, Lon: 13.40},
		{ID: 3, Name: "North", Lat: 52.55, Lon: 13.38},
	}

	got, err := p.GetTravelTimes(context.Background(), origin, dests)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{2: 5, 3: 10}, got) // seconds -> minutes
	assert.EqualValues(t, 1, calls)
	assert.Equal(t, 1, tc.puts)

	// A second lookup is served entirely from the cache.
	got, err = p.GetTravelTimes(context.Background(), origin, dests)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{2: 5, 3: 10}, got)
	assert.EqualValues(t, 1, calls)
}

func TestORSProviderGeocodesMarketsWithoutCoordinates(t *testing.T) {
	mux := http.NewServeMux()
	var geocodeCalls int64
	mux.HandleFunc("/geocode/search", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&geocodeCalls, 1)
		name := r.URL.Query().Get("text")
		require.NotEmpty(t, name)
		w.Write([]byte(`{"features": [{"geometry": {"coordinates": [13.40, 52.51]}}]}`))
	})
	mux.HandleFunc("/v2/matrix/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(matrixResponse{Durations: [][]*float64{{sec(120)}}})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	gc := &memGeocodeCache{entries: map[string]domain.Coordinates{}}
	p := newTestProvider(t, srv.URL, newMemTravelCache(), gc)

	origin := domain.Market{ID: 1, Name: "Central", Lat: 52.52, Lon: 13.41}
	dest := domain.Market{ID: 2, Name: "Harbour"} // no coordinates, must geocode

	minutes, err := p.GetTravelTime(context.Background(), origin, dest)
	require.NoError(t, err)
	assert.Equal(t, 2.0, minutes)
	assert.EqualValues(t, 1, geocodeCalls)
	assert.Equal(t, domain.Coordinates{Lon: 13.40, Lat: 52.51}, gc.entries["Harbour"])
}

func TestORSProviderRetriesTransientErrors(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(matrixResponse{Durations: [][]*float64{{sec(60)}}})
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, newMemTravelCache(), &memGeocodeCache{entries: map[string]domain.Coordinates{}})

	origin := domain.Market{ID: 1, Lat: 52.52, Lon: 13.41}
	minutes, err := p.GetTravelTime(context.Background(), origin, domain.Market{ID: 2, Lat: 52.51, Lon: 13.40})
	require.NoError(t, err)
	assert.Equal(t, 1.0, minutes)
	assert.EqualValues(t, 2, calls)
}

func TestORSProviderDoesNotRetryClientErrors(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := newTestProvider(t, srv.URL, newMemTravelCache(), &memGeocodeCache{entries: map[string]domain.Coordinates{}})

	origin := domain.Market{ID: 1, Lat: 52.52, Lon: 13.41}
	_, err := p.GetTravelTime(context.Background(), origin, domain.Market{ID: 2, Lat: 52.51, Lon: 13.40})
	require.Error(t, err)
	assert.EqualValues(t, 1, calls)
}

func TestORSProviderRequiresAPIKey(t *testing.T) {
	_, err := NewORSTravelProvider("", nil, nil, zerolog.Nop())
	assert.Error(t, err)
}
