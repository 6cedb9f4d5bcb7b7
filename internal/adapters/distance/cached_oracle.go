package distance

import (
	"context"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/platform/logger"
	"tentative-route-service/internal/platform/metrics"
	"tentative-route-service/internal/ports"
)

// CachedOracle serves oracle answers from a RouteCache and falls back to the
// wrapped oracle on a miss. Cache failures never fail the lookup.
type CachedOracle struct {
	next  ports.RoutingOracle
	cache ports.RouteCache
}

func NewCachedOracle(next ports.RoutingOracle, cache ports.RouteCache) *CachedOracle {
	return &CachedOracle{next: next, cache: cache}
}

func (c *CachedOracle) Route(
	ctx context.Context,
	creds ports.Credentials,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (ports.RouteResult, error) {
	log := logger.Component("route-cache")

	cached, ok, err := c.cache.Get(ctx, origin, destination)
	switch {
	case err != nil:
		metrics.RouteCacheTotal.WithLabelValues("error").Inc()
		log.WithError(err).Warn("route cache read failed")
	case ok:
		metrics.RouteCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		metrics.RouteCacheTotal.WithLabelValues("miss").Inc()
	}

	res, err := c.next.Route(ctx, creds, origin, destination)
	if err != nil {
		return ports.RouteResult{}, err
	}

	if err := c.cache.Put(ctx, origin, destination, res); err != nil {
		log.WithError(err).Warn("route cache write failed")
	}

	return res, nil
}
