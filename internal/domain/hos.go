package domain

import "fmt"

// DutyStatus is a driver's current Hours-of-Service budget, following FMCSA
// rules for property-carrying drivers:
//
//   - 11-hour driving limit after 10 consecutive hours off duty
//   - 14-hour on-duty window after 10 consecutive hours off duty
//   - 30-minute break required after 8 hours of driving
//   - 60/70-hour limit over 7/8 days
//
// The struct is supplied by the caller per planning request and is read-only
// to the engine.
type DutyStatus struct {
	DriverID string

	DrivingHoursRemaining float64
	OnDutyHoursRemaining  float64
	HoursSinceLastBreak   float64
	CycleHoursRemaining   float64

	// BreakRequired forces a mandatory 30-minute break before any further
	// simulated driving.
	BreakRequired bool
}

// DefaultDutyStatus returns a fully rested driver on the 70-hour cycle.
func DefaultDutyStatus() DutyStatus {
	return DutyStatus{
		DrivingHoursRemaining: 11.0,
		OnDutyHoursRemaining:  14.0,
		CycleHoursRemaining:   70.0,
	}
}

// Validate checks all hour budgets against their regulatory ceilings.
func (d DutyStatus) Validate() error {
	if d.DrivingHoursRemaining < 0 || d.DrivingHoursRemaining > 11.0 {
		return fmt.Errorf("driving_hours_remaining %.1f out of range (0 to 11)", d.DrivingHoursRemaining)
	}
	if d.OnDutyHoursRemaining < 0 || d.OnDutyHoursRemaining > 14.0 {
		return fmt.Errorf("on_duty_hours_remaining %.1f out of range (0 to 14)", d.OnDutyHoursRemaining)
	}
	if d.HoursSinceLastBreak < 0 {
		return fmt.Errorf("hours_since_last_break must not be negative")
	}
	if d.CycleHoursRemaining < 0 || d.CycleHoursRemaining > 70.0 {
		return fmt.Errorf("cycle_hours_remaining %.1f out of range (0 to 70)", d.CycleHoursRemaining)
	}
	return nil
}

// CanDrive reports whether the driver may legally drive right now.
func (d DutyStatus) CanDrive() bool {
	return d.DrivingHoursRemaining > 0 &&
		d.OnDutyHoursRemaining > 0 &&
		d.CycleHoursRemaining > 0 &&
		!d.BreakRequired
}
