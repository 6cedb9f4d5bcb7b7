package services

import (
	"context"
	"fmt"
	"sort"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/platform/geo"
	"tentative-route-service/internal/platform/obs"
	"tentative-route-service/internal/ports"
)

// NeighborSelector ranks depots by their distance to the straight
// origin->destination segment. It is a cheap geometric prefilter; real road
// distances are only requested for the depots it returns.
type NeighborSelector struct {
	registry ports.DepotRegistry
}

func NewNeighborSelector(registry ports.DepotRegistry) *NeighborSelector {
	return &NeighborSelector{registry: registry}
}

type rankedDepot struct {
	id     int64
	distKm float64
}

// NearestToSegment returns up to k depot ids closest to the segment between
// originID and destinationID, nearest first, lower id first on ties.
// Origin and destination are never returned. The result is empty when either
// endpoint is unknown to the registry.
func (s *NeighborSelector) NearestToSegment(
	ctx context.Context,
	creds ports.Credentials,
	originID int64,
	destinationID int64,
	k int,
) (_ []int64, err error) {
	defer obs.Time(ctx, "neighbors.NearestToSegment")(&err)

	if k <= 0 {
		return []int64{}, nil
	}

	depots, err := s.registry.ListDepots(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("nearest to segment: list depots: %w: %w", domain.ErrResolverUnavailable, err)
	}

	var origin, destination *domain.DepotInfo
	for i := range depots {
		switch depots[i].ID {
		case originID:
			origin = &depots[i]
		case destinationID:
			destination = &depots[i]
		}
	}
	if origin == nil || destination == nil {
		return []int64{}, nil
	}

	a, b := origin.Coordinates(), destination.Coordinates()

	ranked := make([]rankedDepot, 0, len(depots))
	for _, d := range depots {
		if d.ID == originID || d.ID == destinationID {
			continue
		}
		ranked = append(ranked, rankedDepot{id: d.ID, distKm: geo.PointToSegmentKm(d.Coordinates(), a, b)})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].distKm != ranked[j].distKm {
			return ranked[i].distKm < ranked[j].distKm
		}
		return ranked[i].id < ranked[j].id
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}

	out := make([]int64, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.id)
	}
	return out, nil
}
