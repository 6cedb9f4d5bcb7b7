package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/platform/obs"
	"tentative-route-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

type cachedRoute struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
	Geometry        string  `json:"geometry,omitempty"`
}

// RedisRouteCache stores oracle answers in Redis as JSON with a fixed TTL.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{Client: client, TTL: ttl}
}

func (r *RedisRouteCache) Get(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.redis.Get")(&err)

	if r.Client == nil {
		return ports.RouteResult{}, false, errors.New("route cache: redis client is nil")
	}

	raw, err := r.Client.Get(ctx, "route:"+routeKey(origin, destination)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: %w", err)
	}

	var c cachedRoute
	if err := json.Unmarshal(raw, &c); err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: decode entry: %w", err)
	}

	return ports.RouteResult{
		DistanceMeters:  c.DistanceMeters,
		DurationSeconds: c.DurationSeconds,
		Geometry:        c.Geometry,
	}, true, nil
}

func (r *RedisRouteCache) Put(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	result ports.RouteResult,
) error {
	if r.Client == nil {
		return errors.New("route cache: redis client is nil")
	}

	payload, err := json.Marshal(cachedRoute{
		DistanceMeters:  result.DistanceMeters,
		DurationSeconds: result.DurationSeconds,
		Geometry:        result.Geometry,
	})
	if err != nil {
		return fmt.Errorf("put route cache: encode entry: %w", err)
	}

	if err := r.Client.Set(ctx, "route:"+routeKey(origin, destination), payload, r.TTL).Err(); err != nil {
		return fmt.Errorf("put route cache: %w", err)
	}
	return nil
}
