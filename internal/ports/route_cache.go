package ports

import (
	"context"
	"tentative-route-service/internal/domain"
)

// Optional store for oracle answers keyed by coordinate pair.
type RouteCache interface {
	// Return a cached result and whether it was found.
	Get(ctx context.Context, origin, destination domain.Coordinates) (RouteResult, bool, error)
	Put(ctx context.Context, origin, destination domain.Coordinates, result RouteResult) error
}
