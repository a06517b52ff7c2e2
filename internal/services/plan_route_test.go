package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/geo"
	"truck-route-service/internal/hazards"
	"truck-route-service/internal/ports"
)

type stubProvider struct {
	result ports.RouteResult
	err    error
	calls  int
}

func (p *stubProvider) GetRoute(_ context.Context, _ []domain.Coordinates, _ ports.RouteOptions) (ports.RouteResult, error) {
	p.calls++
	if p.err != nil {
		return ports.RouteResult{}, p.err
	}
	return p.result, nil
}

func planRequest(stops ...domain.Stop) PlanRouteRequest {
	return PlanRouteRequest{
		Stops:         stops,
		Vehicle:       domain.DefaultVehicleProfile(),
		HOS:           domain.DefaultDutyStatus(),
		StartLocation: domain.Coordinates{Lat: 32.7767, Lon: -96.7970},
		StartTime:     time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC),
	}
}

func TestPlanTruckRouteSuccess(t *testing.T) {
	provider := &stubProvider{result: ports.RouteResult{
		DistanceMeters:  321868, // 200 miles
		DurationSeconds: 4 * 3600,
		Geometry: []domain.Coordinates{
			{Lat: 32.7767, Lon: -96.7970},
			{Lat: 35.4676, Lon: -97.5164},
		},
	}}
	catalog := hazards.Default()

	plan, err := PlanTruckRoute(context.Background(),
		planRequest(
			coordStop(1, domain.StopPickup, 32.7767, -96.7970),
			coordStop(2, domain.StopDelivery, 35.4676, -97.5164),
		), provider, catalog)
	if err != nil {
		t.Fatalf("PlanTruckRoute: %v", err)
	}

	if got := plan.Totals.DistanceMiles; math.Abs(got-200.0) > 0.1 {
		t.Fatalf("distance = %v, want ~200.0", got)
	}
	if got := plan.Totals.DrivingTimeHours; got != 4.0 {
		t.Fatalf("driving time = %v, want 4.0", got)
	}

	// 200 mi at 6.5 mpg and $4.50/gal.
	wantGallons := 30.8
	if got := plan.Costs.FuelGallons; math.Abs(got-wantGallons) > 0.2 {
		t.Fatalf("fuel gallons = %v, want ~%v", got, wantGallons)
	}
	if !plan.HOS.CanCompleteWithoutRest {
		t.Fatal("4-hour trip should be completable without rest")
	}
	if plan.Explanation != "Standard route - no hazards avoided." {
		t.Fatalf("explanation = %q", plan.Explanation)
	}
}

func TestPlanTruckRouteFallback(t *testing.T) {
	provider := &stubProvider{err: &ports.UpstreamError{Reason: "routing service unavailable"}}
	catalog := hazards.Default()

	start := domain.Coordinates{Lat: 32.7767, Lon: -96.7970}
	stop := domain.Coordinates{Lat: 35.4676, Lon: -97.5164}

	plan, err := PlanTruckRoute(context.Background(),
		planRequest(coordStop(1, domain.StopDelivery, stop.Lat, stop.Lon)),
		provider, catalog)
	if err != nil {
		t.Fatalf("fallback path should not fail: %v", err)
	}

	wantMiles := geo.PathMiles([]domain.Coordinates{start, stop})
	if got := plan.Totals.DistanceMiles; math.Abs(got-wantMiles) > 0.1 {
		t.Fatalf("fallback distance = %v, want %v", got, wantMiles)
	}
	wantHours := round(wantMiles/MixedSpeedMPH, 2)
	if got := plan.Totals.DrivingTimeHours; math.Abs(got-wantHours) > 0.01 {
		t.Fatalf("fallback driving time = %v, want %v", got, wantHours)
	}
	if len(plan.Geometry) != 2 {
		t.Fatalf("fallback geometry should be the input coordinates, got %d points", len(plan.Geometry))
	}
}

func TestPlanTruckRouteTooFewCoordinates(t *testing.T) {
	provider := &stubProvider{}
	plan, err := PlanTruckRoute(context.Background(), planRequest(), provider, hazards.Default())
	if plan != nil || err == nil {
		t.Fatal("expected validation error for empty stop list")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if !strings.Contains(verr.Reason, "at least 2 locations") {
		t.Fatalf("reason = %q", verr.Reason)
	}
	if provider.calls != 0 {
		t.Fatal("provider should not be called on validation failure")
	}
}

func TestPlanTruckRouteHazardAlerts(t *testing.T) {
	// Geometry passes directly over the NYC Parkway Bridge hazard.
	provider := &stubProvider{result: ports.RouteResult{
		DistanceMeters:  160934,
		DurationSeconds: 2 * 3600,
		Geometry: []domain.Coordinates{
			{Lat: 40.70, Lon: -74.01},
			{Lat: 40.7128, Lon: -74.0060},
			{Lat: 40.73, Lon: -74.00},
		},
	}}

	plan, err := PlanTruckRoute(context.Background(),
		planRequest(
			coordStop(1, domain.StopPickup, 40.70, -74.01),
			coordStop(2, domain.StopDelivery, 40.73, -74.00),
		), provider, hazards.Default())
	if err != nil {
		t.Fatalf("PlanTruckRoute: %v", err)
	}

	if plan.Hazards.LowBridges != 1 {
		t.Fatalf("low bridges = %d, want 1", plan.Hazards.LowBridges)
	}

	var found *domain.Alert
	for i := range plan.Alerts {
		if plan.Alerts[i].Type == domain.AlertLowBridge {
			found = &plan.Alerts[i]
		}
	}
	if found == nil {
		t.Fatal("no low_bridge alert emitted")
	}
	if found.Severity != domain.SeverityCritical {
		t.Fatalf("severity = %v, want critical", found.Severity)
	}
	if found.Location == nil {
		t.Fatal("low_bridge alert missing location")
	}
	if !strings.Contains(plan.Explanation, "Avoided 1 low bridges") {
		t.Fatalf("explanation = %q", plan.Explanation)
	}
}

func TestPlanTruckRouteDeliveryAtRisk(t *testing.T) {
	deadline := time.Date(2026, 3, 2, 6, 30, 0, 0, time.UTC)
	stop := coordStop(2, domain.StopDelivery, 35.4676, -97.5164)
	stop.LatestTime = &deadline

	provider := &stubProvider{result: ports.RouteResult{
		DistanceMeters:  321868, // 200 mi, far beyond a 30-minute window
		DurationSeconds: 4 * 3600,
	}}

	plan, err := PlanTruckRoute(context.Background(),
		planRequest(coordStop(1, domain.StopPickup, 32.7767, -96.7970), stop),
		provider, hazards.Default())
	if err != nil {
		t.Fatalf("PlanTruckRoute: %v", err)
	}

	var found bool
	for _, a := range plan.Alerts {
		if a.Type == domain.AlertDeliveryAtRisk {
			found = true
			if a.Severity != domain.SeverityWarning {
				t.Fatalf("severity = %v, want warning", a.Severity)
			}
			if !strings.Contains(a.Message, "is after deadline 06:30") {
				t.Fatalf("message = %q", a.Message)
			}
		}
	}
	if !found {
		t.Fatal("no delivery_at_risk alert for a missed deadline")
	}
}

func TestPlanTruckRouteGeometryCapped(t *testing.T) {
	geom := make([]domain.Coordinates, 150)
	for i := range geom {
		geom[i] = domain.Coordinates{Lat: 32.0 + float64(i)*0.01, Lon: -96.0}
	}
	provider := &stubProvider{result: ports.RouteResult{
		DistanceMeters:  160934,
		DurationSeconds: 3600,
		Geometry:        geom,
	}}

	plan, err := PlanTruckRoute(context.Background(),
		planRequest(
			coordStop(1, domain.StopPickup, 32.0, -96.0),
			coordStop(2, domain.StopDelivery, 33.5, -96.0),
		), provider, hazards.Default())
	if err != nil {
		t.Fatalf("PlanTruckRoute: %v", err)
	}
	if len(plan.Geometry) != 100 {
		t.Fatalf("geometry length = %d, want 100", len(plan.Geometry))
	}
}
