package domain

// Kind of geofenced restriction.
type HazardKind string

const (
	HazardLowBridge   HazardKind = "low_bridge"
	HazardWeightLimit HazardKind = "weight_limit"
	HazardHazmat      HazardKind = "hazmat_restriction"
)

// Hazard is a known geofenced restriction from the reference catalog.
// Which restriction field applies depends on Kind. Hazards are immutable
// reference data, not trip-scoped.
type Hazard struct {
	Kind     HazardKind
	Name     string
	Location Coordinates

	ClearanceFeet  float64       // low_bridge
	WeightLimitLbs int           // weight_limit
	Restricted     []HazmatClass // hazmat_restriction
}

// RouteHazard is a catalog hazard that a specific route and vehicle would
// violate, with a description rendered against that vehicle's profile.
type RouteHazard struct {
	Kind     HazardKind
	Location Coordinates

	ClearanceFeet  float64
	WeightLimitLbs int
	Restricted     []HazmatClass

	Description string
}
