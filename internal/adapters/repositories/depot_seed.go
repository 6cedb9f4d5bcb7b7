package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"tentative-route-service/internal/domain"
)

type DepotSeed struct {
	DepotID int64   `json:"depot_id"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// LoadDepotSeed reads and validates a JSON array of depots.
func LoadDepotSeed(jsonPath string) ([]domain.DepotInfo, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", jsonPath, err)
	}

	var data []DepotSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	seen := make(map[int64]struct{}, len(data))
	out := make([]domain.DepotInfo, 0, len(data))
	for i, item := range data {
		if item.DepotID <= 0 {
			return nil, fmt.Errorf("invalid depot_id at index %d: %d", i+1, item.DepotID)
		}
		if _, ok := seen[item.DepotID]; ok {
			return nil, fmt.Errorf("duplicate depot_id at index %d: %d", i+1, item.DepotID)
		}
		seen[item.DepotID] = struct{}{}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("depot at index %d: name cannot be empty", i+1)
		}

		d := domain.DepotInfo{ID: item.DepotID, Name: name, Lat: item.Lat, Lon: item.Lon}
		if !d.Coordinates().Valid() {
			return nil, fmt.Errorf("depot at index %d: coordinates out of range", i+1)
		}
		out = append(out, d)
	}

	return out, nil
}
