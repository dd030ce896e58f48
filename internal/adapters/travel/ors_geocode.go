package travel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"market-tour-service/internal/domain"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// geocodeMany resolves market names individually using OpenRouteService
// (/geocode/search). Names are deduplicated and calls may be retried via
// doWithRetry.
func (o *ORSTravelProvider) geocodeMany(ctx context.Context, names []string) (map[string]domain.Coordinates, error) {
	endpoint := o.baseURL + "/geocode/search"

	seen := make(map[string]struct{}, len(names))
	out := make(map[string]domain.Coordinates)
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
			req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return nil, err
			}
			q := req.URL.Query()
			q.Set("text", name)
			q.Set("size", "1")
			req.URL.RawQuery = q.Encode()
			return req, nil
		})
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}

		var decoded geocodeResponse
		err = json.NewDecoder(resp.Body).Decode(&decoded)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode geocode response: %w", err)
		}

		if len(decoded.Features) == 0 {
			return nil, fmt.Errorf("no geocode results for %q", name)
		}

		coords := decoded.Features[0].Geometry.Coordinates
		if len(coords) != 2 {
			return nil, fmt.Errorf("invalid coordinate format for %q", name)
		}

		out[name] = domain.Coordinates{Lon: coords[0], Lat: coords[1]}
	}

	return out, nil
}
