package cache

import (
	"context"
	"database/sql"
	"reflect"
	"testing"

	_ "modernc.org/sqlite"

	"truck-route-service/internal/ports"
)

func newTestSqliteCache(t *testing.T) *SqliteRouteCache {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`
	CREATE TABLE route_cache (
		cache_key TEXT PRIMARY KEY,
		distance_meters REAL NOT NULL,
		duration_seconds REAL NOT NULL
	);
	`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	return NewSqliteRouteCache(db)
}

func TestSqliteRouteCachePutGet(t *testing.T) {
	cache := newTestSqliteCache(t)
	ctx := context.Background()

	want := ports.RouteResult{DistanceMeters: 350000, DurationSeconds: 14400}
	if err := cache.Put(ctx, "a;b", want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := cache.Get(ctx, "a;b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSqliteRouteCacheMiss(t *testing.T) {
	cache := newTestSqliteCache(t)

	_, ok, err := cache.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestSqliteRouteCacheOverwrite(t *testing.T) {
	cache := newTestSqliteCache(t)
	ctx := context.Background()

	if err := cache.Put(ctx, "a;b", ports.RouteResult{DistanceMeters: 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.Put(ctx, "a;b", ports.RouteResult{DistanceMeters: 2}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := cache.Get(ctx, "a;b")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.DistanceMeters != 2 {
		t.Fatalf("distance = %v, want 2", got.DistanceMeters)
	}
}
