package dto

type OracleRouteResponse struct {
	Success       bool    `json:"success"`
	DistanceKm    float64 `json:"distanceKm"`
	DurationHours float64 `json:"durationHours"`
	Geometry      string  `json:"geometry,omitempty"`
	Message       string  `json:"message"`
	Failure       string  `json:"failure,omitempty"`
}

// DistanceResponse is returned by the distance endpoint. Estimated is true
// when the oracle failed and DistanceKm is a great-circle estimate.
type DistanceResponse struct {
	DistanceKm    float64 `json:"distanceKm"`
	DurationHours float64 `json:"durationHours,omitempty"`
	Estimated     bool    `json:"estimated"`
	Message       string  `json:"message,omitempty"`
}
