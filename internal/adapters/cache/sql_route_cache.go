package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"truck-route-service/internal/platform/obs"
	"truck-route-service/internal/ports"
)

// SQLRouteCache is a SQL-backed cache for resolved route summaries.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ ports.RouteResult, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}
	if key == "" {
		return ports.RouteResult{}, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT distance_meters, duration_seconds
	FROM route_cache
	WHERE cache_key = $1;
	`

	var result ports.RouteResult
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&result.DistanceMeters, &result.DurationSeconds)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return result, true, nil
}

func (s *SQLRouteCache) Put(ctx context.Context, key string, result ports.RouteResult) (err error) {
	defer obs.Time(ctx, "route.cache.Put")(&err)

	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	q := `
	INSERT INTO route_cache (cache_key, distance_meters, duration_seconds)
	VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, result.DistanceMeters, result.DurationSeconds); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
