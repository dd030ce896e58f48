package travel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"market-tour-service/internal/domain"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Durations [][]*float64 `json:"durations"`
}

// fetchMatrixRow retrieves travel durations from one origin to many
// destinations using the OpenRouteService matrix endpoint and converts the
// seconds it returns into minutes.
func (o *ORSTravelProvider) fetchMatrixRow(
	ctx context.Context,
	originCoord domain.Coordinates,
	destinations []domain.Market,
	destinationCoords []domain.Coordinates,
) (map[int]float64, error) {
	if len(destinations) != len(destinationCoords) {
		return nil, errors.New("destinations and destinationCoords are expected to have the same length")
	}
	if len(destinations) == 0 {
		return map[int]float64{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, 1+len(destinationCoords))
	locations = append(locations, originCoord.AsList())
	for _, c := range destinationCoords {
		locations = append(locations, c.AsList())
	}

	destIdx := make([]int, 0, len(destinationCoords))
	for i := 1; i < len(locations); i++ {
		destIdx = append(destIdx, i)
	}

	bodyObj := matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Metrics:      []string{"duration"},
		Sources:      []int{0},
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return o.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request failed: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Durations) != 1 {
		return nil, fmt.Errorf("expected 1 source row; got durations=%d", len(mr.Durations))
	}

	row := mr.Durations[0]
	if len(row) != len(destinations) {
		return nil, fmt.Errorf(
			"row length does not match destinations: durations=%d destinations=%d",
			len(row), len(destinations),
		)
	}

	out := make(map[int]float64, len(destinations))
	for i, dest := range destinations {
		secondsPtr := row[i]
		if secondsPtr == nil {
			return nil, fmt.Errorf("matrix returned no duration for market %d", dest.ID)
		}
		out[dest.ID] = *secondsPtr / 60.0
	}

	return out, nil
}
