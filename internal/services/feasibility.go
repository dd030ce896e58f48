package services

import "market-tour-service/internal/domain"

// projectedArrival computes the clock minutes at which a tour standing at
// currentID at clock t would arrive at next: finish the current stay, travel,
// and absorb the constant transfer buffer.
func projectedArrival(p *domain.ProblemInstance, currentID int, nextID int, t float64, stay int) float64 {
	return t + float64(stay) + p.TravelTime(currentID, nextID) + float64(p.TransferBuffer)
}

// canVisit reports whether arriving at the market at the given clock minutes
// still leaves room for a full stay before closing. Arriving before opening
// is allowed; the caller waits (cost-free) until the market opens.
func canVisit(m domain.Market, arrival float64, stay int) bool {
	return arrival <= m.LatestArrival(stay).Minutes()
}
