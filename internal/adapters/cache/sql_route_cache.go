package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tentative-route-service/internal/domain"
	"tentative-route-service/internal/platform/obs"
	"tentative-route-service/internal/ports"
)

// SQLRouteCache is a Postgres-backed cache for origin->destination oracle answers.
// Entries older than TTL are treated as misses; a zero TTL never expires.
type SQLRouteCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLRouteCache(db *sql.DB, ttl time.Duration) *SQLRouteCache {
	return &SQLRouteCache{DB: db, TTL: ttl}
}

func (s *SQLRouteCache) Get(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.sql.Get")(&err)

	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}

	q := `
	SELECT distance_meters, duration_seconds, geometry, updated_at
	FROM route_cache
	WHERE route_key = $1;
	`

	var res ports.RouteResult
	var updatedAt time.Time
	err = s.DB.QueryRowContext(ctx, q, routeKey(origin, destination)).
		Scan(&res.DistanceMeters, &res.DurationSeconds, &res.Geometry, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	if s.TTL > 0 && time.Since(updatedAt) > s.TTL {
		return ports.RouteResult{}, false, nil
	}

	return res, true, nil
}

func (s *SQLRouteCache) Put(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
	result ports.RouteResult,
) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	q := `
	INSERT INTO route_cache (route_key, distance_meters, duration_seconds, geometry, updated_at)
	VALUES ($1, $2, $3, $4, now())
	ON CONFLICT (route_key) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds,
		geometry = EXCLUDED.geometry,
		updated_at = EXCLUDED.updated_at;
	`

	key := routeKey(origin, destination)
	if _, err := s.DB.ExecContext(ctx, q, key, result.DistanceMeters, result.DurationSeconds, result.Geometry); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
