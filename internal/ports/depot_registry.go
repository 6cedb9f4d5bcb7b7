package ports

import (
	"context"
	"tentative-route-service/internal/domain"
)

// Port: a boundary for reading depots from the depot registry.
type DepotRegistry interface {
	// Return the depots for the given ids in a single batch lookup.
	// Ids unknown to the registry are absent from the result, not an error.
	GetDepots(ctx context.Context, creds Credentials, ids []int64) (map[int64]domain.DepotInfo, error)
	// Return every depot known to the registry, ordered by id.
	ListDepots(ctx context.Context, creds Credentials) ([]domain.DepotInfo, error)
}
