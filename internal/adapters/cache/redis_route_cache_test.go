package cache

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"truck-route-service/internal/ports"
)

func newTestRedisCache(t *testing.T) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisRouteCache(client, time.Hour), mr
}

func TestRedisRouteCachePutGet(t *testing.T) {
	cache, _ := newTestRedisCache(t)
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

func TestRedisRouteCacheMiss(t *testing.T) {
	cache, _ := newTestRedisCache(t)

	_, ok, err := cache.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestRedisRouteCacheExpiry(t *testing.T) {
	cache, mr := newTestRedisCache(t)
	ctx := context.Background()

	if err := cache.Put(ctx, "a;b", ports.RouteResult{DistanceMeters: 1}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	_, ok, err := cache.Get(ctx, "a;b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("entry should have expired")
	}
}

func TestRedisRouteCacheEmptyKey(t *testing.T) {
	cache, _ := newTestRedisCache(t)

	if _, _, err := cache.Get(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty key")
	}
	if err := cache.Put(context.Background(), "", ports.RouteResult{}); err == nil {
		t.Fatal("expected error for empty key")
	}
}
