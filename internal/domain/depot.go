package domain

// Represents a depot as known by the depot registry at request time.
// A DepotInfo is a snapshot: it is fetched per planning call and never
// kept across calls.
type DepotInfo struct {
	ID   int64
	Name string
	Lat  float64
	Lon  float64
}

func (d DepotInfo) Coordinates() Coordinates {
	return Coordinates{Lon: d.Lon, Lat: d.Lat}
}
