package services

import (
	"context"
	"fmt"
	"time"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/platform/logger"
	"tentative-route-service/internal/platform/metrics"
	"tentative-route-service/internal/ports"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const noViableRouteMessage = "no valid route could be computed"

type PlannerConfig struct {
	// Maximum number of neighbor depots tried as single waypoints.
	MaxNeighbors int
	// Maximum number of oracle calls in flight for one planning call.
	MaxConcurrentCalls int
	// Deadline for the whole planning call; zero disables it.
	Timeout time.Duration
}

func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{MaxNeighbors: 3, MaxConcurrentCalls: 4, Timeout: 30 * time.Second}
}

// VariantPlanner is the entry point of tentative route planning.
//
// With explicit intermediates, or when variants are not requested, it builds
// exactly one candidate. Otherwise it evaluates the direct route plus one
// route through each nearby depot and returns the shortest successful one.
type VariantPlanner struct {
	assembler *RouteAssembler
	neighbors *NeighborSelector
	selector  RouteSelector
	cfg       PlannerConfig
}

func NewVariantPlanner(assembler *RouteAssembler, neighbors *NeighborSelector, cfg PlannerConfig) *VariantPlanner {
	if cfg.MaxConcurrentCalls < 1 {
		cfg.MaxConcurrentCalls = 1
	}
	if cfg.MaxNeighbors < 0 {
		cfg.MaxNeighbors = 0
	}
	return &VariantPlanner{assembler: assembler, neighbors: neighbors, cfg: cfg}
}

// NewPlannerFromPorts wires the full component chain over a registry and an oracle.
func NewPlannerFromPorts(
	registry ports.DepotRegistry,
	oracle ports.RoutingOracle,
	oracleTimeout time.Duration,
	cfg PlannerConfig,
) *VariantPlanner {
	resolver := NewCoordinateResolver(registry)
	client := NewDistanceOracleClient(oracle, oracleTimeout)
	assembler := NewRouteAssembler(resolver, client, cfg.MaxConcurrentCalls)
	return NewVariantPlanner(assembler, NewNeighborSelector(registry), cfg)
}

// Plan always returns a candidate; failures are described by its Failure
// kind and Message.
func (p *VariantPlanner) Plan(ctx context.Context, creds ports.Credentials, req domain.PlanningRequest) (c domain.RouteCandidate) {
	start := time.Now()
	mode := planMode(req)
	log := logger.Component("planner").WithField("mode", mode)

	defer func() {
		outcome := "success"
		if !c.Success {
			outcome = string(c.Failure)
		}
		metrics.PlansTotal.WithLabelValues(mode, outcome).Inc()
		metrics.PlanDurationMs.Observe(float64(time.Since(start).Milliseconds()))

		entry := log.WithFields(logrus.Fields{
			"origin":      req.OriginDepotID,
			"destination": req.DestinationDepotID,
			"outcome":     outcome,
			"dur_ms":      time.Since(start).Milliseconds(),
		})
		if c.Success {
			entry.WithField("total_km", c.TotalDistanceKm).Info("tentative route planned")
		} else {
			entry.WithField("reason", c.Message).Warn("tentative route planning failed")
		}
	}()

	if err := req.Validate(); err != nil {
		return domain.FailedCandidate(domain.FailureInvalidRequest, err.Error())
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	if mode != "variants" {
		var seq []int64
		if mode == "explicit" {
			seq = req.Sequence()
		} else {
			seq = []int64{req.OriginDepotID, req.DestinationDepotID}
		}

		cand, err := p.assembler.Assemble(ctx, creds, seq)
		if err != nil {
			return domain.FailedCandidate(domain.KindOf(err), err.Error())
		}
		return canceledIfDone(ctx, cand)
	}

	pool, err := p.search(ctx, creds, req.OriginDepotID, req.DestinationDepotID)
	if err != nil {
		return domain.FailedCandidate(domain.KindOf(err), err.Error())
	}
	if err := ctx.Err(); err != nil {
		return domain.FailedCandidate(domain.FailureCanceled, fmt.Sprintf("planning aborted: %v", err))
	}

	best, err := p.selector.Select(pool)
	if err != nil {
		return domain.FailedCandidate(domain.FailureNoViableCandidate, noViableRouteMessage)
	}

	return best.WithMessage(fmt.Sprintf(
		"optimal route selected (%d km) from %d variants evaluated",
		int(best.TotalDistanceKm), len(pool),
	))
}

// Variants runs the same search as Plan with variants enabled and returns
// every successful candidate, direct route first, without choosing.
func (p *VariantPlanner) Variants(
	ctx context.Context,
	creds ports.Credentials,
	originID int64,
	destinationID int64,
) ([]domain.RouteCandidate, error) {
	req := domain.PlanningRequest{OriginDepotID: originID, DestinationDepotID: destinationID}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	pool, err := p.search(ctx, creds, originID, destinationID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("variants: %w", err)
	}

	return pool, nil
}

// search assembles the direct candidate and the neighbor candidates
// concurrently, sharing one semaphore for all registry and oracle calls. Only a registry
// outage is returned as an error; failed candidates are dropped from the pool.
func (p *VariantPlanner) search(
	ctx context.Context,
	creds ports.Credentials,
	originID int64,
	destinationID int64,
) ([]domain.RouteCandidate, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := semaphore.NewWeighted(int64(p.cfg.MaxConcurrentCalls))
	g, gctx := errgroup.WithContext(ctx)

	var direct domain.RouteCandidate
	g.Go(func() error {
		c, err := p.assembler.assemble(gctx, creds, []int64{originID, destinationID}, sem)
		direct = c
		return err
	})

	neighbors, err := p.nearest(gctx, creds, originID, destinationID, sem)
	if err != nil {
		cancel()
		werr := g.Wait()
		// A failed direct lookup cancels gctx first; report that, not the cancellation.
		if werr != nil && domain.KindOf(err) == domain.FailureCanceled {
			return nil, werr
		}
		return nil, err
	}

	viaNeighbor := make([]domain.RouteCandidate, len(neighbors))
	for i, n := range neighbors {
		g.Go(func() error {
			c, err := p.assembler.assemble(gctx, creds, []int64{originID, n, destinationID}, sem)
			viaNeighbor[i] = c
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	pool := make([]domain.RouteCandidate, 0, 1+len(viaNeighbor))
	for _, c := range append([]domain.RouteCandidate{direct}, viaNeighbor...) {
		if c.Success {
			pool = append(pool, c)
		}
	}

	metrics.VariantsEvaluated.Observe(float64(len(pool)))
	logger.Component("planner").
		WithField("neighbors", neighbors).
		WithField("viable", len(pool)).
		Debug("variant search done")

	return pool, nil
}

func (p *VariantPlanner) nearest(
	ctx context.Context,
	creds ports.Credentials,
	originID int64,
	destinationID int64,
	sem *semaphore.Weighted,
) ([]int64, error) {
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("nearest to segment: %w", err)
	}
	defer sem.Release(1)

	return p.neighbors.NearestToSegment(ctx, creds, originID, destinationID, p.cfg.MaxNeighbors)
}

func (p *VariantPlanner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, p.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func planMode(req domain.PlanningRequest) string {
	switch {
	case len(req.IntermediateDepotIDs) > 0:
		return "explicit"
	case !req.ComputeVariants:
		return "direct"
	default:
		return "variants"
	}
}

// canceledIfDone reports a failed candidate as canceled once the planning
// deadline has passed, whatever leg noticed it first.
func canceledIfDone(ctx context.Context, c domain.RouteCandidate) domain.RouteCandidate {
	if c.Success || ctx.Err() == nil {
		return c
	}
	return domain.FailedCandidate(domain.FailureCanceled, fmt.Sprintf("planning aborted: %v: %s", ctx.Err(), c.Message))
}
