package services

import (
	"fmt"

	"truck-route-service/internal/domain"
)

// Average speeds for time estimation (mph).
const (
	HighwaySpeedMPH = 55.0
	CitySpeedMPH    = 35.0
	MixedSpeedMPH   = 45.0
)

// Fuel planning constants.
const (
	FuelReserveGallons = 50.0
	FuelStopLeadMiles  = 50.0
	FuelStopMinutes    = 20
)

// HOS constants per FMCSA property-carrying rules.
const (
	MaxDriveBeforeBreakHours = 8.0
	RequiredBreakMinutes     = 30
	MaxDailyDriveHours       = 11.0
	MaxDailyOnDutyHours      = 14.0
	RestDurationMinutes      = 600
)

type simState int

const (
	stateDriving simState = iota
	stateBreakDue
	stateRestDue
	stateFuelCheck
	stateDone
)

// breakSim walks simulated driving time and distance along a resolved route,
// inserting mandatory breaks as duty budgets are consumed. Break positions
// are linear interpolations: elapsed route hours map to proportional route
// miles.
type breakSim struct {
	routeMiles float64
	routeHours float64
	vehicle    domain.VehicleProfile

	milesCovered     float64
	hoursDriven      float64
	drivingRemaining float64
	sinceBreak       float64

	state  simState
	breaks []domain.PlannedBreak
	alerts []domain.Alert
}

// PlanHOSBreaks simulates a trip of routeMiles/routeHours against the
// driver's duty budgets and the vehicle's fuel range, and returns the ordered
// breaks plus any rest alerts.
//
// Rules applied:
//   - a 30-minute break after every 8 hours of continuous driving
//   - a 10-hour rest when the daily driving budget runs out; the rest resets
//     both the daily budget and the continuous-driving clock
//   - a 20-minute fuel stop 50 miles ahead of the first break that would
//     otherwise land below the 50-gallon reserve; at most one fuel stop is
//     planned per invocation
func PlanHOSBreaks(
	routeMiles float64,
	routeHours float64,
	hos domain.DutyStatus,
	vehicle domain.VehicleProfile,
) ([]domain.PlannedBreak, []domain.Alert) {
	sim := &breakSim{
		routeMiles:       routeMiles,
		routeHours:       routeHours,
		vehicle:          vehicle,
		drivingRemaining: hos.DrivingHoursRemaining,
		sinceBreak:       hos.HoursSinceLastBreak,
	}

	// A pending mandatory break blocks any further driving: treat the
	// continuous-driving clock as already expired.
	if hos.BreakRequired {
		sim.sinceBreak = MaxDriveBeforeBreakHours
	}

	for sim.state != stateDone {
		sim.step()
	}

	return sim.breaks, sim.alerts
}

func (s *breakSim) step() {
	switch s.state {
	case stateDriving:
		remaining := s.routeHours - s.hoursDriven
		untilBreak := MaxDriveBeforeBreakHours - s.sinceBreak

		switch {
		case remaining <= 0:
			s.state = stateFuelCheck
		case untilBreak < remaining && untilBreak <= s.drivingRemaining:
			// Covers both an already-due break (untilBreak <= 0) and one
			// that will come due mid-drive. A rest that falls due first
			// takes priority since it also clears the break clock.
			s.state = stateBreakDue
		case s.drivingRemaining < remaining:
			s.state = stateRestDue
		default:
			s.state = stateFuelCheck
		}

	case stateBreakDue:
		s.insertBreak()
		s.state = stateDriving

	case stateRestDue:
		s.insertRest()
		s.state = stateDriving

	case stateFuelCheck:
		s.insertFuelStop()
		s.state = stateDone
	}
}

// advance moves the simulation forward to a given elapsed-hours mark,
// consuming the daily driving budget along the way.
func (s *breakSim) advance(toHours float64) {
	delta := toHours - s.hoursDriven
	s.hoursDriven = toHours
	s.milesCovered = (toHours / s.routeHours) * s.routeMiles
	s.drivingRemaining -= delta
}

func (s *breakSim) insertBreak() {
	if untilBreak := MaxDriveBeforeBreakHours - s.sinceBreak; untilBreak > 0 {
		s.advance(s.hoursDriven + untilBreak)
	}

	s.breaks = append(s.breaks, domain.PlannedBreak{
		Kind:                   domain.Break30Min,
		LocationName:           fmt.Sprintf("Rest Stop near mile %d", int(s.milesCovered)),
		DurationMinutes:        RequiredBreakMinutes,
		DistanceFromStartMiles: s.milesCovered,
		TimeFromStartHours:     s.hoursDriven,
		Reason:                 "30-minute break required (8 hours driving)",
	})
	s.sinceBreak = 0
}

func (s *breakSim) insertRest() {
	exhaustedIn := s.drivingRemaining
	s.advance(s.hoursDriven + exhaustedIn)

	s.breaks = append(s.breaks, domain.PlannedBreak{
		Kind:                   domain.Break10HourRest,
		LocationName:           fmt.Sprintf("Truck Stop near mile %d", int(s.milesCovered)),
		DurationMinutes:        RestDurationMinutes,
		DistanceFromStartMiles: s.milesCovered,
		TimeFromStartHours:     s.hoursDriven,
		Reason:                 "10-hour rest required (11-hour daily driving limit)",
	})
	s.alerts = append(s.alerts, domain.Alert{
		Type:            domain.AlertRestRequired,
		Severity:        domain.SeverityWarning,
		Title:           "Overnight Rest Required",
		Message:         fmt.Sprintf("10-hour rest stop needed after %.1f hours of driving", exhaustedIn),
		SuggestedAction: "Plan for overnight at truck stop",
	})

	// A 10-hour rest clears both the daily budget and the break clock.
	s.drivingRemaining = MaxDailyDriveHours
	s.sinceBreak = 0
}

// insertFuelStop walks the planned breaks in order and, at the first break
// whose position would leave the tank below reserve, inserts a fuel stop 50
// miles earlier. Only one fuel stop is planned per invocation; routes that
// need several refuels still get exactly one planned stop.
func (s *breakSim) insertFuelStop() {
	startingFuel := s.vehicle.StartingFuelGallons()

	for i, brk := range s.breaks {
		fuelAtBreak := startingFuel - brk.DistanceFromStartMiles/s.vehicle.MPG
		if fuelAtBreak >= FuelReserveGallons {
			continue
		}

		stop := domain.PlannedBreak{
			Kind:                   domain.BreakFuel,
			LocationName:           fmt.Sprintf("Fuel Stop near mile %d", int(brk.DistanceFromStartMiles-FuelStopLeadMiles)),
			DurationMinutes:        FuelStopMinutes,
			DistanceFromStartMiles: brk.DistanceFromStartMiles - FuelStopLeadMiles,
			TimeFromStartHours:     brk.TimeFromStartHours - 0.5,
			Reason:                 "Fuel stop recommended",
		}

		s.breaks = append(s.breaks, domain.PlannedBreak{})
		copy(s.breaks[i+1:], s.breaks[i:])
		s.breaks[i] = stop
		return
	}
}
