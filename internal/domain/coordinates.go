package domain

// Coordinates is an immutable geographic position (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// AsList returns the position as [lon, lat], the ordering matrix and
// geocoding endpoints expect.
func (c Coordinates) AsList() []float64 { return []float64{c.Lon, c.Lat} }
