// Package geo provides the great-circle primitives the planner is built on.
// All distances are in statute miles.
package geo

import (
	"math"

	"truck-route-service/internal/domain"
)

const earthRadiusMiles = 3959.0

// HaversineMiles returns the great-circle distance between two WGS84
// coordinates.
func HaversineMiles(a, b domain.Coordinates) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

// IsNearRoute reports whether point is within thresholdMiles of any vertex of
// the route polyline.
//
// This is a point-to-vertex test, not point-to-segment: a point close to the
// middle of a long straight segment can be missed. Callers depend on that
// exact behavior for hazard matching, so the approximation must not be
// upgraded silently.
func IsNearRoute(point domain.Coordinates, route []domain.Coordinates, thresholdMiles float64) bool {
	for _, v := range route {
		if HaversineMiles(point, v) <= thresholdMiles {
			return true
		}
	}
	return false
}

// PathMiles sums the haversine distances between consecutive points.
func PathMiles(points []domain.Coordinates) float64 {
	total := 0.0
	for i := 0; i+1 < len(points); i++ {
		total += HaversineMiles(points[i], points[i+1])
	}
	return total
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
