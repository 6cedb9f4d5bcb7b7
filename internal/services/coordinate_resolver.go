package services

import (
	"context"
	"fmt"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/platform/obs"
	"tentative-route-service/internal/ports"
)

// CoordinateResolver turns depot ids into depot snapshots with one batch
// registry lookup per call.
type CoordinateResolver struct {
	registry ports.DepotRegistry
}

func NewCoordinateResolver(registry ports.DepotRegistry) *CoordinateResolver {
	return &CoordinateResolver{registry: registry}
}

// Resolve returns the depots known to the registry for ids. Unknown ids are
// absent from the map. Any registry failure is wrapped in
// domain.ErrResolverUnavailable and no partial result is returned.
func (r *CoordinateResolver) Resolve(
	ctx context.Context,
	creds ports.Credentials,
	ids []int64,
) (_ map[int64]domain.DepotInfo, err error) {
	defer obs.Time(ctx, "resolver.Resolve")(&err)

	seen := make(map[int64]struct{}, len(ids))
	uniq := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	if len(uniq) == 0 {
		return map[int64]domain.DepotInfo{}, nil
	}

	found, err := r.registry.GetDepots(ctx, creds, uniq)
	if err != nil {
		return nil, fmt.Errorf("resolve depots: %w: %w", domain.ErrResolverUnavailable, err)
	}

	out := make(map[int64]domain.DepotInfo, len(uniq))
	for _, id := range uniq {
		if d, ok := found[id]; ok {
			out[id] = d
		}
	}

	return out, nil
}
