package dto

// DepotResponse matches the payload consumed by the HTTP depot registry
// client, so one deployment can act as the registry of another.
type DepotResponse struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
