package travel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"market-tour-service/internal/domain"
)

// TravelCache persists travel durations between market pairs.
type TravelCache interface {
	GetMany(ctx context.Context, originID int, destinationIDs []int) (map[int]float64, error)
	PutMany(ctx context.Context, originID int, minutes map[int]float64) error
}

// GeocodeCache persists market-name -> coordinate lookups.
type GeocodeCache interface {
	GetMany(ctx context.Context, names []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, coords map[string]domain.Coordinates) error
}

// ORSTravelProvider implements the travel-time ports using OpenRouteService.
//
// It coordinates:
//   - Market coordinates (falling back to geocoding markets without them)
//   - Persistent travel-time caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSTravelProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	travelCache  TravelCache
	geocodeCache GeocodeCache
	log          zerolog.Logger
}

func NewORSTravelProvider(apiKey string, travelCache TravelCache, geocodeCache GeocodeCache, log zerolog.Logger) (*ORSTravelProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSTravelProvider{
		session:      &http.Client{Timeout: 10 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://api.openrouteservice.org",
		profile:      "foot-walking",
		travelCache:  travelCache,
		geocodeCache: geocodeCache,
		log:          log.With().Str("component", "ors_travel_provider").Logger(),
	}, nil
}

// Delegate to the batched path to reuse caching and matrix logic.
func (o *ORSTravelProvider) GetTravelTime(ctx context.Context, origin, destination domain.Market) (float64, error) {
	results, err := o.GetTravelTimes(ctx, origin, []domain.Market{destination})
	if err != nil {
		return 0, fmt.Errorf("get travel time %d -> %d: %w", origin.ID, destination.ID, err)
	}

	minutes, ok := results[destination.ID]
	if !ok {
		return 0, fmt.Errorf("no travel time result for %d -> %d", origin.ID, destination.ID)
	}
	return minutes, nil
}

// GetTravelTimes computes travel minutes from a single origin market to many
// destinations, serving as much as possible from the persistent cache.
func (o *ORSTravelProvider) GetTravelTimes(ctx context.Context, origin domain.Market, destinations []domain.Market) (map[int]float64, error) {
	if len(destinations) == 0 {
		return map[int]float64{}, nil
	}

	seen := make(map[int]struct{}, len(destinations))
	destList := make([]domain.Market, 0, len(destinations))
	destIDs := make([]int, 0, len(destinations))
	for _, d := range destinations {
		if d.ID == origin.ID {
			continue
		}
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		destList = append(destList, d)
		destIDs = append(destIDs, d.ID)
	}

	if len(destList) == 0 {
		return map[int]float64{}, nil
	}

	hits := make(map[int]float64)
	// Check the persistent cache before issuing external API calls.
	if o.travelCache != nil {
		var err error
		hits, err = o.travelCache.GetMany(ctx, origin.ID, destIDs)
		if err != nil {
			return nil, fmt.Errorf("ORS travel cache: %w", err)
		}
	}

	misses := make([]domain.Market, 0, len(destList))
	for _, d := range destList {
		if _, ok := hits[d.ID]; !ok {
			misses = append(misses, d)
		}
	}
	if len(misses) == 0 {
		return hits, nil
	}

	originCoord, err := o.resolveCoords(ctx, origin)
	if err != nil {
		return nil, fmt.Errorf("resolve origin market %d: %w", origin.ID, err)
	}

	missCoords := make([]domain.Coordinates, 0, len(misses))
	for _, d := range misses {
		c, err := o.resolveCoords(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("resolve destination market %d: %w", d.ID, err)
		}
		missCoords = append(missCoords, c)
	}

	// Fetch a single origin->many matrix row for all cache misses.
	fetched, err := o.fetchMatrixRow(ctx, originCoord, misses, missCoords)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix row: %w", err)
	}

	for _, d := range misses {
		if _, ok := fetched[d.ID]; !ok {
			return nil, fmt.Errorf("ORS matrix service did not return destination market %d", d.ID)
		}
	}

	if o.travelCache != nil {
		if err := o.travelCache.PutMany(ctx, origin.ID, fetched); err != nil {
			o.log.Warn().Err(err).Msg("travel cache write failed")
		}
	}

	out := make(map[int]float64, len(hits)+len(fetched))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fetched {
		out[k] = v
	}
	return out, nil
}

// resolveCoords uses the market's own coordinates when present and falls
// back to cached or fresh geocoding of its name otherwise.
func (o *ORSTravelProvider) resolveCoords(ctx context.Context, m domain.Market) (domain.Coordinates, error) {
	if m.Lat != 0 || m.Lon != 0 {
		return m.Coords(), nil
	}
	if m.Name == "" {
		return domain.Coordinates{}, fmt.Errorf("market %d has neither coordinates nor a name", m.ID)
	}

	if o.geocodeCache != nil {
		cached, err := o.geocodeCache.GetMany(ctx, []string{m.Name})
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode cache: %w", err)
		}
		if c, ok := cached[m.Name]; ok {
			return c, nil
		}
	}

	fresh, err := o.geocodeMany(ctx, []string{m.Name})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", m.Name, err)
	}
	c, ok := fresh[m.Name]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("no geocode result for %q", m.Name)
	}

	if o.geocodeCache != nil {
		if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
			o.log.Warn().Err(err).Msg("geocode cache write failed")
		}
	}
	return c, nil
}
