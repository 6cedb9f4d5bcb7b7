package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/ports"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const geometrySeparator = "|"

// legError aborts the leg fan-out of one candidate.
type legError struct {
	kind domain.FailureKind
	msg  string
}

func (e *legError) Error() string { return e.msg }

// RouteAssembler builds one RouteCandidate from an ordered depot sequence.
type RouteAssembler struct {
	resolver      *CoordinateResolver
	oracle        *DistanceOracleClient
	maxConcurrent int64
}

// NewRouteAssembler returns an assembler that runs at most maxConcurrent
// oracle calls at once when used on its own.
func NewRouteAssembler(resolver *CoordinateResolver, oracle *DistanceOracleClient, maxConcurrent int) *RouteAssembler {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &RouteAssembler{resolver: resolver, oracle: oracle, maxConcurrent: int64(maxConcurrent)}
}

// Assemble resolves every depot in seq with one registry call, then asks the
// oracle for each consecutive pair. The registry call and every oracle call
// count against the same concurrency limit. Per-candidate problems (unknown depot,
// oracle failure) come back as a failed candidate with a nil error. The error
// is non-nil only when the registry itself is unavailable, in which case the
// candidate also carries that failure.
func (a *RouteAssembler) Assemble(
	ctx context.Context,
	creds ports.Credentials,
	seq []int64,
) (domain.RouteCandidate, error) {
	return a.assemble(ctx, creds, seq, semaphore.NewWeighted(a.maxConcurrent))
}

func (a *RouteAssembler) assemble(
	ctx context.Context,
	creds ports.Credentials,
	seq []int64,
	sem *semaphore.Weighted,
) (domain.RouteCandidate, error) {
	if len(seq) < 2 {
		return domain.FailedCandidate(
			domain.FailureInvalidRequest,
			fmt.Sprintf("a route needs at least 2 depots, got %d", len(seq)),
		), nil
	}

	depots, err := a.resolve(ctx, creds, seq, sem)
	if err != nil {
		if errors.Is(err, domain.ErrResolverUnavailable) {
			return domain.FailedCandidate(domain.KindOf(err), err.Error()), err
		}
		return domain.FailedCandidate(domain.KindOf(err), err.Error()), nil
	}

	for i := 0; i < len(seq)-1; i++ {
		for _, id := range seq[i : i+2] {
			if _, ok := depots[id]; !ok {
				err := fmt.Errorf("leg %d (%d -> %d): %w: %d", i+1, seq[i], seq[i+1], domain.ErrDepotNotFound, id)
				return domain.FailedCandidate(domain.KindOf(err), err.Error()), nil
			}
		}
	}

	legs := make([]domain.Leg, len(seq)-1)

	g, gctx := errgroup.WithContext(ctx)
	for i := range legs {
		from, to := depots[seq[i]], depots[seq[i+1]]

		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return &legError{
					kind: domain.FailureCanceled,
					msg:  fmt.Sprintf("leg %d (%d -> %d): %v", i+1, from.ID, to.ID, err),
				}
			}
			defer sem.Release(1)

			res := a.oracle.Route(gctx, creds, from.Coordinates(), to.Coordinates())
			if !res.Success {
				return &legError{
					kind: res.Failure,
					msg:  fmt.Sprintf("leg %d (%d -> %d): %s", i+1, from.ID, to.ID, res.Message),
				}
			}

			legs[i] = domain.Leg{
				Order:         i + 1,
				OriginDepotID: from.ID,
				OriginName:    from.Name,
				DestDepotID:   to.ID,
				DestName:      to.Name,
				DistanceKm:    res.DistanceKm,
				DurationHours: res.DurationHours,
				Geometry:      res.Geometry,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		var le *legError
		if errors.As(err, &le) {
			kind := le.kind
			// A sibling's failure cancels gctx; only the parent's context decides "canceled".
			if kind == domain.FailureCanceled && ctx.Err() == nil {
				kind = domain.FailureOracle
			}
			return domain.FailedCandidate(kind, le.msg), nil
		}
		return domain.FailedCandidate(domain.KindOf(err), err.Error()), nil
	}

	names := make([]string, len(seq))
	for i, id := range seq {
		names[i] = depots[id].Name
	}

	var totalKm, totalHours float64
	geometries := make([]string, 0, len(legs))
	for _, l := range legs {
		totalKm += l.DistanceKm
		totalHours += l.DurationHours
		if l.Geometry != "" {
			geometries = append(geometries, l.Geometry)
		}
	}

	sequence := make([]int64, len(seq))
	copy(sequence, seq)

	return domain.RouteCandidate{
		DepotSequence:      sequence,
		DepotNames:         names,
		Legs:               legs,
		TotalDistanceKm:    domain.Round2(totalKm),
		TotalDurationHours: domain.Round2(totalHours),
		CombinedGeometry:   strings.Join(geometries, geometrySeparator),
		Success:            true,
		Message:            fmt.Sprintf("tentative route computed with %d legs", len(legs)),
	}, nil
}

// resolve holds one slot of sem for the registry call, so registry and oracle
// calls share the same outbound budget.
func (a *RouteAssembler) resolve(
	ctx context.Context,
	creds ports.Credentials,
	seq []int64,
	sem *semaphore.Weighted,
) (map[int64]domain.DepotInfo, error) {
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("resolve depots: %w", err)
	}
	defer sem.Release(1)

	return a.resolver.Resolve(ctx, creds, seq)
}
