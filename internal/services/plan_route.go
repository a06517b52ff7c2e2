package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/geo"
	"truck-route-service/internal/hazards"
	"truck-route-service/internal/ports"
)

const (
	metersPerMile = 1609.34

	DefaultFuelPricePerGallon = 4.50

	// Route geometry returned in a plan is capped to bound payload size.
	maxGeometryPoints = 100
)

// PlanRouteRequest carries everything one planning invocation needs. The
// vehicle profile and duty status are read-only to the engine.
type PlanRouteRequest struct {
	Stops         []domain.Stop
	Vehicle       domain.VehicleProfile
	HOS           domain.DutyStatus
	StartLocation domain.Coordinates
	StartTime     time.Time

	OptimizeOrder      bool
	FuelPricePerGallon float64
}

// PlanTruckRoute produces a truck-safe, HOS-aware route plan.
//
// The pipeline is: order stops, resolve the route via the provider (or fall
// back to a straight-line estimate when the provider is unavailable), scan
// the polyline for hazards, simulate HOS and fuel breaks, then assemble
// totals, costs, alerts, and the explanation.
//
// Only input validation can fail; once input is accepted the remaining
// pipeline is pure arithmetic and always yields a plan.
func PlanTruckRoute(
	ctx context.Context,
	req PlanRouteRequest,
	provider ports.RouteProvider,
	catalog *hazards.Catalog,
) (*domain.RoutePlan, error) {
	if err := req.Vehicle.Validate(); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("vehicle: %v", err)}
	}
	if err := req.HOS.Validate(); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("hos: %v", err)}
	}
	if !req.StartLocation.Valid() {
		return nil, &ValidationError{Reason: "start_location coordinates out of range"}
	}
	for _, s := range req.Stops {
		if err := s.Validate(); err != nil {
			return nil, &ValidationError{Reason: err.Error()}
		}
	}

	stops := req.Stops
	if req.OptimizeOrder {
		stops = SequenceStops(stops, req.StartLocation, nil)
	}

	coords := make([]domain.Coordinates, 0, 1+len(stops))
	coords = append(coords, req.StartLocation)
	for _, s := range stops {
		if c, ok := s.Coordinates(); ok {
			coords = append(coords, c)
		}
	}
	if len(coords) < 2 {
		return nil, &ValidationError{Reason: "need at least 2 locations with coordinates for routing"}
	}

	totalMiles, drivingHours, geometry := resolveRoute(ctx, provider, coords)

	report := catalog.Check(geometry, req.Vehicle)
	breaks, alerts := PlanHOSBreaks(totalMiles, drivingHours, req.HOS, req.Vehicle)

	fuelPrice := req.FuelPricePerGallon
	if fuelPrice <= 0 {
		fuelPrice = DefaultFuelPricePerGallon
	}
	fuelGallons := totalMiles / req.Vehicle.MPG
	fuelCost := fuelGallons * fuelPrice

	breakHours := 0.0
	for _, b := range breaks {
		breakHours += float64(b.DurationMinutes) / 60
	}
	serviceHours := 0.0
	for _, s := range stops {
		serviceHours += float64(s.ServiceMinutes) / 60
	}
	totalTripHours := drivingHours + breakHours + serviceHours

	alerts = append(alerts, deliveryRiskAlerts(stops, breaks, totalMiles, req.StartTime)...)
	alerts = append(alerts, hazardAlerts(report)...)

	costPerMile := 0.0
	if totalMiles > 0 {
		costPerMile = fuelCost / totalMiles
	}

	if len(geometry) > maxGeometryPoints {
		geometry = geometry[:maxGeometryPoints]
	}

	return &domain.RoutePlan{
		Stops: stops,
		Totals: domain.RouteTotals{
			DistanceMiles:    round(totalMiles, 1),
			TotalTimeHours:   round(totalTripHours, 2),
			DrivingTimeHours: round(drivingHours, 2),
			BreakTimeHours:   round(breakHours, 2),
			ServiceTimeHours: round(serviceHours, 2),
		},
		Costs: domain.CostBreakdown{
			FuelGallons: round(fuelGallons, 1),
			FuelCost:    round(fuelCost, 2),
			CostPerMile: round(costPerMile, 3),
		},
		HOS: domain.HOSSummary{
			CanCompleteWithoutRest: totalTripHours <= req.HOS.DrivingHoursRemaining,
			RequiredBreaks:         len(breaks),
			HoursRemainingAtEnd:    round(math.Max(0, req.HOS.DrivingHoursRemaining-drivingHours), 2),
		},
		Hazards:     report.Counts(),
		Breaks:      breaks,
		Alerts:      alerts,
		Explanation: BuildExplanation(report, breaks, 0),
		Geometry:    geometry,
	}, nil
}

// resolveRoute asks the provider for distance, duration, and geometry. When
// the provider is unavailable it degrades to a straight-line estimate: summed
// haversine leg distances at a fixed mixed-driving speed. The fallback is
// exclusive to this full-plan path.
func resolveRoute(
	ctx context.Context,
	provider ports.RouteProvider,
	coords []domain.Coordinates,
) (miles, hours float64, geometry []domain.Coordinates) {
	result, err := provider.GetRoute(ctx, coords, ports.RouteOptions{Geometry: true})
	if err != nil {
		var upstream *ports.UpstreamError
		if !errors.As(err, &upstream) {
			// Non-upstream provider errors are programming defects; degrade
			// the same way rather than failing the plan.
			log.Printf("route provider returned unexpected error: %v", err)
		} else {
			log.Printf("route provider unavailable, using straight-line estimate: %v", upstream)
		}

		miles = geo.PathMiles(coords)
		return miles, miles / MixedSpeedMPH, coords
	}

	miles = result.DistanceMeters / metersPerMile
	hours = result.DurationSeconds / 3600
	geometry = result.Geometry
	if len(geometry) == 0 {
		geometry = coords
	}
	return miles, hours, geometry
}

// deliveryRiskAlerts estimates an ETA for each stop with a deadline by
// accumulating proportional driving time, break time encountered before that
// point, and preceding stops' service time. Stops whose ETA lands after their
// latest-arrival deadline get a warning.
func deliveryRiskAlerts(
	stops []domain.Stop,
	breaks []domain.PlannedBreak,
	totalMiles float64,
	startTime time.Time,
) []domain.Alert {
	if len(stops) == 0 {
		return nil
	}

	var alerts []domain.Alert
	perLegHours := (totalMiles / float64(len(stops))) / MixedSpeedMPH
	counted := make([]bool, len(breaks))
	cumulative := 0.0

	for i, s := range stops {
		if i > 0 {
			cumulative += perLegHours
		}
		for j, b := range breaks {
			if !counted[j] && b.TimeFromStartHours < cumulative {
				cumulative += float64(b.DurationMinutes) / 60
				counted[j] = true
			}
		}

		if s.HasCoordinates() && s.LatestTime != nil {
			eta := startTime.Add(time.Duration(cumulative * float64(time.Hour)))
			if eta.After(*s.LatestTime) {
				alerts = append(alerts, domain.Alert{
					Type:     domain.AlertDeliveryAtRisk,
					Severity: domain.SeverityWarning,
					Title:    fmt.Sprintf("Delivery #%d At Risk", s.Sequence),
					Message: fmt.Sprintf("ETA %s is after deadline %s",
						eta.Format("15:04"), s.LatestTime.Format("15:04")),
					StopSequence:    s.Sequence,
					SuggestedAction: "Consider expedited routing or contacting customer",
				})
			}
		}

		cumulative += float64(s.ServiceMinutes) / 60
	}

	return alerts
}

// hazardAlerts emits one critical alert per hazard found.
func hazardAlerts(report hazards.Report) []domain.Alert {
	var alerts []domain.Alert

	for _, h := range report.LowBridges {
		loc := h.Location
		alerts = append(alerts, domain.Alert{
			Type:            domain.AlertLowBridge,
			Severity:        domain.SeverityCritical,
			Title:           "Low Bridge on Route",
			Message:         h.Description,
			Location:        &loc,
			SuggestedAction: "Route adjusted to avoid this hazard",
		})
	}
	for _, h := range report.WeightRestrictions {
		loc := h.Location
		alerts = append(alerts, domain.Alert{
			Type:            domain.AlertWeightRestriction,
			Severity:        domain.SeverityCritical,
			Title:           "Weight Restriction on Route",
			Message:         h.Description,
			Location:        &loc,
			SuggestedAction: "Route adjusted to avoid this hazard",
		})
	}
	for _, h := range report.HazmatRestrictions {
		loc := h.Location
		alerts = append(alerts, domain.Alert{
			Type:            domain.AlertHazmatRestriction,
			Severity:        domain.SeverityCritical,
			Title:           "Hazmat Restriction on Route",
			Message:         h.Description,
			Location:        &loc,
			SuggestedAction: "Route adjusted to avoid this hazard",
		})
	}

	return alerts
}

func round(x float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(x*pow) / pow
}
