package geo

import (
	"math"
	"testing"

	"truck-route-service/internal/domain"
)

var (
	dallas       = domain.Coordinates{Lat: 32.7767, Lon: -96.7970}
	oklahomaCity = domain.Coordinates{Lat: 35.4676, Lon: -97.5164}
)

func TestHaversineMilesSymmetry(t *testing.T) {
	ab := HaversineMiles(dallas, oklahomaCity)
	ba := HaversineMiles(oklahomaCity, dallas)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}

	if d := HaversineMiles(dallas, dallas); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
}

func TestHaversineMilesKnownDistance(t *testing.T) {
	// Dallas to Oklahoma City is roughly 190 miles great-circle.
	d := HaversineMiles(dallas, oklahomaCity)
	if d < 175 || d > 205 {
		t.Fatalf("Dallas->OKC distance = %v, want roughly 190 miles", d)
	}
}

func TestIsNearRoute(t *testing.T) {
	route := []domain.Coordinates{
		{Lat: 32.7767, Lon: -96.7970},
		{Lat: 33.5, Lon: -97.0},
		{Lat: 35.4676, Lon: -97.5164},
	}

	// A point essentially on a vertex.
	near := domain.Coordinates{Lat: 33.501, Lon: -97.001}
	if !IsNearRoute(near, route, 0.5) {
		t.Fatalf("expected point next to a vertex to be near the route")
	}

	// A point far from every vertex.
	far := domain.Coordinates{Lat: 40.0, Lon: -96.0}
	if IsNearRoute(far, route, 0.5) {
		t.Fatalf("expected distant point to not be near the route")
	}

	// Point-to-vertex approximation: midway between two widely spaced
	// vertices does not count as near, even though the segment passes by.
	mid := domain.Coordinates{Lat: 34.48, Lon: -97.26}
	if IsNearRoute(mid, route, 0.5) {
		t.Fatalf("vertex-only proximity must not match a mid-segment point")
	}
}

func TestPathMiles(t *testing.T) {
	if d := PathMiles([]domain.Coordinates{dallas}); d != 0 {
		t.Fatalf("single-point path = %v, want 0", d)
	}

	direct := HaversineMiles(dallas, oklahomaCity)
	total := PathMiles([]domain.Coordinates{dallas, oklahomaCity})
	if math.Abs(direct-total) > 1e-9 {
		t.Fatalf("two-point path = %v, want %v", total, direct)
	}
}
