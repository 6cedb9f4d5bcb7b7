package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"tentative-route-service/internal/adapters/distance"
	"tentative-route-service/internal/adapters/repositories"
	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/ports"

	"github.com/stretchr/testify/mock"
)

var (
	buenosAires = domain.DepotInfo{ID: 1, Name: "Buenos Aires", Lat: -34.6, Lon: -58.4}
	rosario     = domain.DepotInfo{ID: 2, Name: "Rosario", Lat: -32.9, Lon: -60.6}
	sanPedro    = domain.DepotInfo{ID: 3, Name: "San Pedro", Lat: -33.7, Lon: -59.6}
	cordoba     = domain.DepotInfo{ID: 4, Name: "Cordoba", Lat: -31.4, Lon: -64.2}
	mendoza     = domain.DepotInfo{ID: 5, Name: "Mendoza", Lat: -32.9, Lon: -68.8}
	sanLuis     = domain.DepotInfo{ID: 6, Name: "San Luis", Lat: -33.3, Lon: -66.3}
)

func allDepots() []domain.DepotInfo {
	return []domain.DepotInfo{buenosAires, rosario, sanPedro, cordoba, mendoza, sanLuis}
}

func route(from, to domain.DepotInfo, km float64) distance.MockRoute {
	return distance.MockRoute{
		From:     from.Coordinates(),
		To:       to.Coordinates(),
		Meters:   km * 1000,
		Seconds:  km * 40,
		Geometry: from.Name + ">" + to.Name,
	}
}

func newTestPlanner(registry ports.DepotRegistry, oracle ports.RoutingOracle) *VariantPlanner {
	return NewPlannerFromPorts(registry, oracle, time.Second, PlannerConfig{
		MaxNeighbors:       3,
		MaxConcurrentCalls: 4,
		Timeout:            5 * time.Second,
	})
}

func memoryRegistry(depots ...domain.DepotInfo) *repositories.MemoryDepotRegistry {
	return repositories.NewMemoryDepotRegistry(depots)
}

type mockRegistry struct{ mock.Mock }

func (m *mockRegistry) GetDepots(ctx context.Context, creds ports.Credentials, ids []int64) (map[int64]domain.DepotInfo, error) {
	args := m.Called(ctx, creds, ids)
	depots, _ := args.Get(0).(map[int64]domain.DepotInfo)
	return depots, args.Error(1)
}

func (m *mockRegistry) ListDepots(ctx context.Context, creds ports.Credentials) ([]domain.DepotInfo, error) {
	args := m.Called(ctx, creds)
	depots, _ := args.Get(0).([]domain.DepotInfo)
	return depots, args.Error(1)
}

// blockingOracle waits for cancellation on every call.
type blockingOracle struct{}

func (blockingOracle) Route(ctx context.Context, _ ports.Credentials, _, _ domain.Coordinates) (ports.RouteResult, error) {
	<-ctx.Done()
	return ports.RouteResult{}, ctx.Err()
}

// countingOracle answers every pair with a fixed distance and records the
// peak number of concurrent calls.
type countingOracle struct {
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (o *countingOracle) Route(ctx context.Context, _ ports.Credentials, _, _ domain.Coordinates) (ports.RouteResult, error) {
	defer o.enter()()

	select {
	case <-time.After(o.delay):
	case <-ctx.Done():
		return ports.RouteResult{}, ctx.Err()
	}
	return ports.RouteResult{DistanceMeters: 100000, DurationSeconds: 3600}, nil
}

func (o *countingOracle) enter() func() {
	n := o.inFlight.Add(1)
	for {
		p := o.peak.Load()
		if n <= p || o.peak.CompareAndSwap(p, n) {
			break
		}
	}
	return func() { o.inFlight.Add(-1) }
}

// countingRegistry counts its calls into the same gauge as calls, so the
// peak covers registry and oracle traffic together.
type countingRegistry struct {
	next  ports.DepotRegistry
	calls *countingOracle
}

func (r *countingRegistry) GetDepots(ctx context.Context, creds ports.Credentials, ids []int64) (map[int64]domain.DepotInfo, error) {
	defer r.calls.enter()()
	time.Sleep(r.calls.delay)
	return r.next.GetDepots(ctx, creds, ids)
}

func (r *countingRegistry) ListDepots(ctx context.Context, creds ports.Credentials) ([]domain.DepotInfo, error) {
	defer r.calls.enter()()
	time.Sleep(r.calls.delay)
	return r.next.ListDepots(ctx, creds)
}

// stalledListRegistry fails GetDepots once ListDepots is in flight, while
// ListDepots only returns when its context is canceled.
type stalledListRegistry struct {
	listing chan struct{}
	once    sync.Once
}

func newStalledListRegistry() *stalledListRegistry {
	return &stalledListRegistry{listing: make(chan struct{})}
}

func (r *stalledListRegistry) GetDepots(ctx context.Context, _ ports.Credentials, _ []int64) (map[int64]domain.DepotInfo, error) {
	select {
	case <-r.listing:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return nil, errors.New("connection refused")
}

func (r *stalledListRegistry) ListDepots(ctx context.Context, _ ports.Credentials) ([]domain.DepotInfo, error) {
	r.once.Do(func() { close(r.listing) })
	<-ctx.Done()
	return nil, ctx.Err()
}

// slowPairOracle delays the answer for routes starting at from.
type slowPairOracle struct {
	from  domain.Coordinates
	delay time.Duration
	next  ports.RoutingOracle
}

func (o slowPairOracle) Route(ctx context.Context, creds ports.Credentials, from, to domain.Coordinates) (ports.RouteResult, error) {
	if from == o.from {
		select {
		case <-time.After(o.delay):
		case <-ctx.Done():
			return ports.RouteResult{}, ctx.Err()
		}
	}
	return o.next.Route(ctx, creds, from, to)
}
