package services

import (
	"context"
	"fmt"
	"log"
	"math"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/ports"
)

// SummaryStop is a routing waypoint as supplied by callers of the summary
// path. Either Lat/Lng or Latitude/Longitude may be populated; the short
// names win when both are present.
type SummaryStop struct {
	Lat       *float64
	Lng       *float64
	Latitude  *float64
	Longitude *float64
}

func (s SummaryStop) coords() (domain.Coordinates, bool) {
	lat, lon := s.Lat, s.Lng
	if lat == nil {
		lat = s.Latitude
	}
	if lon == nil {
		lon = s.Longitude
	}
	if lat == nil || lon == nil {
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Lat: *lat, Lon: *lon}, true
}

// RouteSummary is the lightweight distance/time answer for a stop sequence.
type RouteSummary struct {
	TotalDistanceKM       float64
	TotalDriveTimeMinutes float64
	RoutingEngine         string
	Notes                 []string
}

var summaryNotes = []string{
	"Route is an estimate and may not account for truck restrictions (height/weight/hazmat).",
	"Actual drive times may vary based on traffic, weather, and road conditions.",
}

// CalculateRouteSummary resolves total distance and drive time for an
// ordered stop sequence. Unlike the full planner it never falls back to an
// estimate; an unusable provider is surfaced to the caller.
func CalculateRouteSummary(
	ctx context.Context,
	stops []SummaryStop,
	provider ports.RouteProvider,
	cache ports.RouteCache,
) (*RouteSummary, error) {
	coords, err := validateSummaryStops(stops)
	if err != nil {
		return nil, err
	}

	key := summaryCacheKey(coords)
	if cache != nil {
		cached, ok, cerr := cache.Get(ctx, key)
		if cerr != nil {
			log.Printf("route cache get failed key=%s err=%v", key, cerr)
		} else if ok {
			return summaryFromResult(cached), nil
		}
	}

	result, err := provider.GetRoute(ctx, coords, ports.RouteOptions{Geometry: false})
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if cerr := cache.Put(ctx, key, result); cerr != nil {
			log.Printf("route cache put failed key=%s err=%v", key, cerr)
		}
	}

	return summaryFromResult(result), nil
}

func summaryFromResult(r ports.RouteResult) *RouteSummary {
	return &RouteSummary{
		TotalDistanceKM:       round(r.DistanceMeters/1000, 2),
		TotalDriveTimeMinutes: round(r.DurationSeconds/60, 1),
		RoutingEngine:         "osrm",
		Notes:                 summaryNotes,
	}
}

func validateSummaryStops(stops []SummaryStop) ([]domain.Coordinates, error) {
	if len(stops) < 2 {
		return nil, &ValidationError{Reason: "at least 2 stops are required for route calculation"}
	}

	coords := make([]domain.Coordinates, 0, len(stops))
	for i, s := range stops {
		c, ok := s.coords()
		if !ok {
			return nil, &ValidationError{Reason: fmt.Sprintf("stop %d missing required coordinates (lat/lng)", i+1)}
		}
		if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
			return nil, &ValidationError{Reason: fmt.Sprintf("stop %d has non-numeric coordinates", i+1)}
		}
		if c.Lat < -90 || c.Lat > 90 {
			return nil, &ValidationError{Reason: fmt.Sprintf("latitude %g out of range (-90 to 90)", c.Lat)}
		}
		if c.Lon < -180 || c.Lon > 180 {
			return nil, &ValidationError{Reason: fmt.Sprintf("longitude %g out of range (-180 to 180)", c.Lon)}
		}
		coords = append(coords, c)
	}
	return coords, nil
}

func summaryCacheKey(coords []domain.Coordinates) string {
	key := ""
	for i, c := range coords {
		if i > 0 {
			key += ";"
		}
		key += fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
	}
	return key
}
