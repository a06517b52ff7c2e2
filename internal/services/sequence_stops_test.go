package services

import (
	"testing"

	"truck-route-service/internal/domain"
)

func coordStop(seq int, typ domain.StopType, lat, lon float64) domain.Stop {
	return domain.Stop{
		Sequence:  seq,
		Type:      typ,
		Latitude:  &lat,
		Longitude: &lon,
	}
}

func TestSequenceStopsPickupsBeforeDeliveries(t *testing.T) {
	start := domain.Coordinates{Lat: 32.7767, Lon: -96.7970} // Dallas

	stops := []domain.Stop{
		coordStop(1, domain.StopDelivery, 35.4676, -97.5164), // OKC
		coordStop(2, domain.StopPickup, 29.7604, -95.3698),   // Houston
		coordStop(3, domain.StopDelivery, 29.4241, -98.4936), // San Antonio
		coordStop(4, domain.StopPickup, 30.2672, -97.7431),   // Austin
	}

	ordered := SequenceStops(stops, start, nil)
	if len(ordered) != 4 {
		t.Fatalf("got %d stops, want 4", len(ordered))
	}

	lastPickup := -1
	firstDelivery := len(ordered)
	for i, s := range ordered {
		switch s.Type {
		case domain.StopPickup:
			lastPickup = i
		case domain.StopDelivery:
			if i < firstDelivery {
				firstDelivery = i
			}
		}
	}
	if lastPickup > firstDelivery {
		t.Fatalf("pickup at index %d after delivery at index %d", lastPickup, firstDelivery)
	}
}

func TestSequenceStopsNearestFirst(t *testing.T) {
	start := domain.Coordinates{Lat: 32.7767, Lon: -96.7970} // Dallas

	// From Dallas the nearest pickup is Austin; from Austin, Houston.
	stops := []domain.Stop{
		coordStop(1, domain.StopPickup, 29.7604, -95.3698), // Houston
		coordStop(2, domain.StopPickup, 30.2672, -97.7431), // Austin
		coordStop(3, domain.StopPickup, 35.4676, -97.5164), // OKC
	}

	ordered := SequenceStops(stops, start, nil)
	if *ordered[0].Latitude != 30.2672 {
		t.Fatalf("first stop lat = %v, want Austin (30.2672)", *ordered[0].Latitude)
	}
	if *ordered[1].Latitude != 29.7604 {
		t.Fatalf("second stop lat = %v, want Houston (29.7604)", *ordered[1].Latitude)
	}
}

func TestSequenceStopsResequences(t *testing.T) {
	start := domain.Coordinates{Lat: 32.7767, Lon: -96.7970}

	stops := []domain.Stop{
		coordStop(9, domain.StopPickup, 30.2672, -97.7431),
		coordStop(4, domain.StopDelivery, 29.7604, -95.3698),
		coordStop(7, domain.StopDelivery, 29.4241, -98.4936),
	}

	ordered := SequenceStops(stops, start, nil)
	for i, s := range ordered {
		if s.Sequence != i+1 {
			t.Fatalf("stop %d has sequence %d, want %d", i, s.Sequence, i+1)
		}
	}
}

func TestSequenceStopsSmallInputUnchanged(t *testing.T) {
	start := domain.Coordinates{Lat: 32.7767, Lon: -96.7970}

	stops := []domain.Stop{
		coordStop(2, domain.StopDelivery, 29.7604, -95.3698),
		coordStop(1, domain.StopPickup, 30.2672, -97.7431),
	}

	ordered := SequenceStops(stops, start, nil)
	if ordered[0].Sequence != 2 || ordered[1].Sequence != 1 {
		t.Fatalf("two-stop input was reordered: %+v", ordered)
	}
}

func TestSequenceStopsWaypointInsertion(t *testing.T) {
	start := domain.Coordinates{Lat: 32.7767, Lon: -96.7970} // Dallas

	// Waco sits on the Dallas-Austin corridor; best insertion is before
	// Austin, not appended after Houston.
	stops := []domain.Stop{
		coordStop(1, domain.StopPickup, 30.2672, -97.7431),  // Austin
		coordStop(2, domain.StopDelivery, 29.7604, -95.3698), // Houston
		coordStop(3, domain.StopWaypoint, 31.5493, -97.1467), // Waco
	}

	ordered := SequenceStops(stops, start, nil)
	if ordered[0].Type != domain.StopWaypoint {
		t.Fatalf("waypoint not inserted first, order: %v %v %v",
			ordered[0].Type, ordered[1].Type, ordered[2].Type)
	}
}
