package services

import (
	"context"
	"fmt"
	"sync"

	"market-tour-service/internal/domain"
	"market-tour-service/internal/ports"
)

type matrixRowResult struct {
	originID int
	times    map[int]float64
	err      error
}

// BuildTravelTimes assembles the full pairwise travel-time table for the
// given markets from a provider. Rows are fetched concurrently with a
// bounded number of in-flight lookups; the first failure cancels the rest.
// Batched providers are preferred to reduce external API calls.
func BuildTravelTimes(ctx context.Context, markets []domain.Market, provider ports.TravelTimeProvider) (domain.TravelTimes, error) {
	if len(markets) < 2 {
		return domain.TravelTimes{}, nil
	}

	mp, hasMatrix := provider.(ports.TravelMatrixProvider)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	resultsCh := make(chan matrixRowResult, len(markets))
	var wg sync.WaitGroup

	for _, origin := range markets {
		targets := make([]domain.Market, 0, len(markets)-1)
		for _, m := range markets {
			if m.ID != origin.ID {
				targets = append(targets, m)
			}
		}

		wg.Add(1)
		go func(orig domain.Market) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			var times map[int]float64
			if hasMatrix {
				var e error
				times, e = mp.GetTravelTimes(ctx, orig, targets)
				if e != nil {
					resultsCh <- matrixRowResult{originID: orig.ID, err: fmt.Errorf("build travel times: row from market %d: %w", orig.ID, e)}
					cancel()
					return
				}
			} else {
				times = make(map[int]float64, len(targets))
				for _, tgt := range targets {
					minutes, e := provider.GetTravelTime(ctx, orig, tgt)
					if e != nil {
						resultsCh <- matrixRowResult{originID: orig.ID, err: fmt.Errorf("build travel times: market %d -> %d: %w", orig.ID, tgt.ID, e)}
						cancel()
						return
					}
					times[tgt.ID] = minutes
				}
			}

			resultsCh <- matrixRowResult{originID: orig.ID, times: times}
		}(origin)
	}

	wg.Wait()
	close(resultsCh)

	table := make(domain.TravelTimes, len(markets)*(len(markets)-1))
	var rowErr error
	for res := range resultsCh {
		if res.err != nil {
			if rowErr == nil {
				rowErr = res.err
			}
			continue
		}
		for destID, minutes := range res.times {
			table[domain.TravelKey{From: res.originID, To: destID}] = minutes
		}
	}
	if rowErr != nil {
		return nil, rowErr
	}

	for _, origin := range markets {
		for _, dest := range markets {
			if origin.ID == dest.ID {
				continue
			}
			if _, ok := table[domain.TravelKey{From: origin.ID, To: dest.ID}]; !ok {
				return nil, fmt.Errorf("build travel times: missing entry for market %d -> %d", origin.ID, dest.ID)
			}
		}
	}

	return table, nil
}
