package distance

import (
	"context"
	"fmt"
	"sync"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/ports"
)

type MockRoute struct {
	From, To domain.Coordinates
	Meters   float64
	Seconds  float64
	Geometry string
	Err      error
}

// MockOracle answers from a fixed table of coordinate pairs. Pairs not in the
// table fail with ErrNoRoute. It records every call for assertions.
type MockOracle struct {
	m map[[2]domain.Coordinates]MockRoute

	mu    sync.Mutex
	calls [][2]domain.Coordinates
}

func NewMockOracle(routes []MockRoute) *MockOracle {
	m := make(map[[2]domain.Coordinates]MockRoute, len(routes))
	for _, r := range routes {
		m[[2]domain.Coordinates{r.From, r.To}] = r
	}
	return &MockOracle{m: m}
}

func (p *MockOracle) Route(
	ctx context.Context,
	_ ports.Credentials,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.RouteResult, error) {
	p.mu.Lock()
	p.calls = append(p.calls, [2]domain.Coordinates{origin, destination})
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return ports.RouteResult{}, err
	}

	r, ok := p.m[[2]domain.Coordinates{origin, destination}]
	if !ok {
		return ports.RouteResult{}, fmt.Errorf("missing pair %s -> %s: %w", origin, destination, ports.ErrNoRoute)
	}
	if r.Err != nil {
		return ports.RouteResult{}, r.Err
	}

	return ports.RouteResult{DistanceMeters: r.Meters, DurationSeconds: r.Seconds, Geometry: r.Geometry}, nil
}

// Calls returns the number of Route invocations so far.
func (p *MockOracle) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}
