package domain

import "math"

// TravelKey is an ordered pair of market identifiers.
type TravelKey struct {
	From int
	To   int
}

// TravelTimes maps ordered market pairs to travel durations in minutes.
// The table may be populated sparsely or asymmetrically; lookups fall back
// to the reversed pair, so it behaves as symmetric either way.
type TravelTimes map[TravelKey]float64

// Get returns the travel time in minutes between two markets.
// Self-pairs cost zero. A pair absent in both directions is unreachable
// and resolves to +Inf, which makes the edge permanently infeasible.
func (t TravelTimes) Get(from, to int) float64 {
	if from == to {
		return 0
	}
	if v, ok := t[TravelKey{From: from, To: to}]; ok {
		return v
	}
	if v, ok := t[TravelKey{From: to, To: from}]; ok {
		return v
	}
	return math.Inf(1)
}
