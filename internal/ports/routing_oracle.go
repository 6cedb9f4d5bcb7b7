package ports

import (
	"context"
	"errors"
	"tentative-route-service/internal/domain"
)

// ErrNoRoute is returned by oracles that answered but found no road route.
var ErrNoRoute = errors.New("no route between points")

// Real road distance, travel duration and encoded path between two coordinates.
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        string
}

// Contract for the external routing service.
type RoutingOracle interface {
	// Return the road route between two coordinates.
	Route(ctx context.Context, creds Credentials, origin, destination domain.Coordinates) (RouteResult, error)
}
