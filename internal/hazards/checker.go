package hazards

import (
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/geo"
)

// Hazards must be within this distance of a route vertex to count.
const proximityThresholdMiles = 0.5

// Report is the set of cataloged hazards a given route and vehicle would
// violate, by category.
type Report struct {
	LowBridges         []domain.RouteHazard
	WeightRestrictions []domain.RouteHazard
	HazmatRestrictions []domain.RouteHazard
}

// Total returns the number of hazards found across all categories.
func (r Report) Total() int {
	return len(r.LowBridges) + len(r.WeightRestrictions) + len(r.HazmatRestrictions)
}

// Counts returns the per-category tallies for plan assembly.
func (r Report) Counts() domain.HazardCounts {
	return domain.HazardCounts{
		LowBridges:         len(r.LowBridges),
		WeightRestrictions: len(r.WeightRestrictions),
		HazmatRestrictions: len(r.HazmatRestrictions),
	}
}

// Check tests a route polyline against the vehicle profile and returns the
// hazards the vehicle would violate. A hazard is reported only when it is
// near the route and the vehicle actually exceeds its restriction; hazmat
// zones are skipped entirely for vehicles carrying no hazmat.
func (c *Catalog) Check(route []domain.Coordinates, vehicle domain.VehicleProfile) Report {
	var report Report

	for _, b := range c.LowBridges {
		if !geo.IsNearRoute(b.Location, route, proximityThresholdMiles) {
			continue
		}
		if vehicle.HeightFeet > b.ClearanceFeet {
			report.LowBridges = append(report.LowBridges, domain.RouteHazard{
				Kind:          domain.HazardLowBridge,
				Location:      b.Location,
				ClearanceFeet: b.ClearanceFeet,
				Description: fmt.Sprintf("%s - Clearance: %gft (Truck: %gft)",
					b.Name, b.ClearanceFeet, vehicle.HeightFeet),
			})
		}
	}

	for _, w := range c.WeightLimits {
		if !geo.IsNearRoute(w.Location, route, proximityThresholdMiles) {
			continue
		}
		if vehicle.GrossWeightLbs > w.WeightLimitLbs {
			report.WeightRestrictions = append(report.WeightRestrictions, domain.RouteHazard{
				Kind:           domain.HazardWeightLimit,
				Location:       w.Location,
				WeightLimitLbs: w.WeightLimitLbs,
				Description: fmt.Sprintf("%s - Limit: %slbs (Truck: %slbs)",
					w.Name,
					humanize.Comma(int64(w.WeightLimitLbs)),
					humanize.Comma(int64(vehicle.GrossWeightLbs))),
			})
		}
	}

	if vehicle.HazmatClass != domain.HazmatNone {
		for _, z := range c.HazmatZones {
			if !geo.IsNearRoute(z.Location, route, proximityThresholdMiles) {
				continue
			}
			if slices.Contains(z.Restricted, vehicle.HazmatClass) {
				report.HazmatRestrictions = append(report.HazmatRestrictions, domain.RouteHazard{
					Kind:       domain.HazardHazmat,
					Location:   z.Location,
					Restricted: z.Restricted,
					Description: fmt.Sprintf("%s - Hazmat %s prohibited",
						z.Name, vehicle.HazmatClass),
				})
			}
		}
	}

	return report
}
