package repositories

import (
	"context"
	"fmt"
	"sort"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/ports"
)

// In-memory DepotRegistry loaded once at startup. Used for local runs without
// a database and as a fixture in tests.
type MemoryDepotRegistry struct {
	byID   map[int64]domain.DepotInfo
	sorted []domain.DepotInfo
}

func NewMemoryDepotRegistry(depots []domain.DepotInfo) *MemoryDepotRegistry {
	byID := make(map[int64]domain.DepotInfo, len(depots))
	for _, d := range depots {
		byID[d.ID] = d
	}

	sorted := make([]domain.DepotInfo, 0, len(byID))
	for _, d := range byID {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	return &MemoryDepotRegistry{byID: byID, sorted: sorted}
}

func NewMemoryDepotRegistryFromJSON(jsonPath string) (*MemoryDepotRegistry, error) {
	depots, err := LoadDepotSeed(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("memory depot registry: %w", err)
	}
	return NewMemoryDepotRegistry(depots), nil
}

func (m *MemoryDepotRegistry) GetDepots(ctx context.Context, _ ports.Credentials, ids []int64) (map[int64]domain.DepotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[int64]domain.DepotInfo, len(ids))
	for _, id := range ids {
		if d, ok := m.byID[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

func (m *MemoryDepotRegistry) ListDepots(ctx context.Context, _ ports.Credentials) ([]domain.DepotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.DepotInfo, len(m.sorted))
	copy(out, m.sorted)
	return out, nil
}
