package domain

// Market is a visitable location with a daily opening window.
// Markets are immutable once loaded; the ID is unique and stable for the run.
type Market struct {
	ID          int
	Name        string
	Lat         float64
	Lon         float64
	Opening     Clock
	Closing     Clock
	Description string
}

// IsOpenAt reports whether the market is open at the given time of day.
func (m Market) IsOpenAt(t Clock) bool {
	return m.Opening <= t && t <= m.Closing
}

// LatestArrival returns the latest clock time a visit of the given stay
// duration can still start before the market closes.
func (m Market) LatestArrival(stayMinutes int) Clock {
	return m.Closing - Clock(stayMinutes)
}

// Coords returns the market position for travel-time providers.
func (m Market) Coords() Coordinates {
	return Coordinates{Lon: m.Lon, Lat: m.Lat}
}
