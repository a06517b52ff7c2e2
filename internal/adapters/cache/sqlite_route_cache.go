package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"truck-route-service/internal/ports"
)

// SQLite backed cache for resolved route summaries. Keys are the ordered
// coordinate sequence, already normalized by the caller.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

func (s *SqliteRouteCache) Get(ctx context.Context, key string) (ports.RouteResult, bool, error) {
	if s.DB == nil {
		return ports.RouteResult{}, false, errors.New("route cache: db is nil")
	}
	if key == "" {
		return ports.RouteResult{}, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT distance_meters, duration_seconds
	FROM route_cache
	WHERE cache_key = ?;
	`

	var result ports.RouteResult
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&result.DistanceMeters, &result.DurationSeconds)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteResult{}, false, nil
	}
	if err != nil {
		return ports.RouteResult{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return result, true, nil
}

func (s *SqliteRouteCache) Put(ctx context.Context, key string, result ports.RouteResult) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO route_cache (cache_key, distance_meters, duration_seconds)
	VALUES (?, ?, ?)
	`

	if _, err := s.DB.ExecContext(ctx, q, key, result.DistanceMeters, result.DurationSeconds); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
