package domain

// Kind of scheduled compliance or fuel stop.
type BreakKind string

const (
	Break30Min      BreakKind = "30_min"
	Break10HourRest BreakKind = "10_hour_rest"
	BreakFuel       BreakKind = "fuel"
)

// PlannedBreak is a stop inserted into the route for HOS compliance or fuel.
// Breaks are ordered by distance from the route start.
type PlannedBreak struct {
	Kind                   BreakKind
	LocationName           string
	DurationMinutes        int
	DistanceFromStartMiles float64
	TimeFromStartHours     float64
	Reason                 string
}

type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

type AlertType string

const (
	AlertLowBridge         AlertType = "low_bridge"
	AlertWeightRestriction AlertType = "weight_restriction"
	AlertHazmatRestriction AlertType = "hazmat_restriction"
	AlertRestRequired      AlertType = "rest_required"
	AlertDeliveryAtRisk    AlertType = "delivery_at_risk"
	AlertFuelLow           AlertType = "fuel_low"
)

// Alert is an advisory surfaced to the caller. Alerts never block plan
// generation.
type Alert struct {
	Type     AlertType
	Severity AlertSeverity
	Title    string
	Message  string

	Location        *Coordinates
	StopSequence    int
	SuggestedAction string
}

// RouteTotals are the aggregate distance and time metrics of a plan.
type RouteTotals struct {
	DistanceMiles    float64
	TotalTimeHours   float64
	DrivingTimeHours float64
	BreakTimeHours   float64
	ServiceTimeHours float64
}

// CostBreakdown is the estimated fuel spend for a plan.
type CostBreakdown struct {
	FuelGallons float64
	FuelCost    float64
	CostPerMile float64
}

// HOSSummary describes how the plan fits the driver's remaining budgets.
type HOSSummary struct {
	CanCompleteWithoutRest bool
	RequiredBreaks         int
	HoursRemainingAtEnd    float64
}

// HazardCounts tallies violated hazards by category.
type HazardCounts struct {
	LowBridges         int
	WeightRestrictions int
	HazmatRestrictions int
}

// RoutePlan is the complete output of one planning request. Plans are
// produced fresh per request and are not persisted by the engine.
type RoutePlan struct {
	Stops   []Stop
	Totals  RouteTotals
	Costs   CostBreakdown
	HOS     HOSSummary
	Hazards HazardCounts

	Breaks      []PlannedBreak
	Alerts      []Alert
	Explanation string

	// Geometry is a sample of the route polyline, capped to bound payload
	// size.
	Geometry []Coordinates
}
