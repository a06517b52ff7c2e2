package repositories

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"truck-route-service/internal/domain"
)

const seedJSON = `[
  {
    "trip_id": "trip-001",
    "name": "Dallas to OKC",
    "stops": [
      {
        "stop_sequence": 1,
        "stop_type": "PICKUP",
        "latitude": 32.7767,
        "longitude": -96.7970,
        "service_duration_minutes": 30
      },
      {
        "stop_sequence": 2,
        "stop_type": "DELIVERY",
        "address": "123 Main St",
        "city": "Oklahoma City",
        "state": "OK",
        "zip": "73102",
        "latitude": 35.4676,
        "longitude": -97.5164,
        "latest_time": "2026-03-02T17:00:00Z",
        "notes": "dock 4"
      }
    ]
  }
]`

func newSeededDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}

	path := filepath.Join(t.TempDir(), "trips.json")
	if err := os.WriteFile(path, []byte(seedJSON), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}
	if err := SeedFromJSON(db, path); err != nil {
		t.Fatalf("SeedFromJSON: %v", err)
	}

	return db
}

func TestSqliteTripRepositoryGetTrip(t *testing.T) {
	repo := NewSqliteTripRepository(newSeededDB(t))

	trip, err := repo.GetTrip(context.Background(), "trip-001")
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if trip == nil {
		t.Fatal("trip not found")
	}
	if trip.Name != "Dallas to OKC" {
		t.Fatalf("name = %q", trip.Name)
	}
}

func TestSqliteTripRepositoryGetTripAbsent(t *testing.T) {
	repo := NewSqliteTripRepository(newSeededDB(t))

	trip, err := repo.GetTrip(context.Background(), "no-such-trip")
	if err != nil {
		t.Fatalf("GetTrip: %v", err)
	}
	if trip != nil {
		t.Fatalf("expected nil for absent trip, got %+v", trip)
	}
}

func TestSqliteTripRepositoryListStops(t *testing.T) {
	repo := NewSqliteTripRepository(newSeededDB(t))

	stops, err := repo.ListStops(context.Background(), "trip-001")
	if err != nil {
		t.Fatalf("ListStops: %v", err)
	}
	if len(stops) != 2 {
		t.Fatalf("got %d stops, want 2", len(stops))
	}

	first := stops[0]
	if first.Sequence != 1 || first.Type != domain.StopPickup {
		t.Fatalf("first stop = %+v", first)
	}
	if !first.HasCoordinates() || *first.Latitude != 32.7767 {
		t.Fatalf("first stop coordinates = %v/%v", first.Latitude, first.Longitude)
	}
	if first.ServiceMinutes != 30 {
		t.Fatalf("service minutes = %d", first.ServiceMinutes)
	}

	second := stops[1]
	if second.Type != domain.StopDelivery || second.City != "Oklahoma City" {
		t.Fatalf("second stop = %+v", second)
	}
	if second.LatestTime == nil || second.LatestTime.Hour() != 17 {
		t.Fatalf("latest time = %v", second.LatestTime)
	}
	if second.EarliestTime != nil {
		t.Fatalf("earliest time should be nil, got %v", second.EarliestTime)
	}
}
