package domain

import (
	"fmt"
	"strings"
	"time"
)

// Kind of stop in a trucking route.
type StopType string

const (
	StopPickup   StopType = "PICKUP"
	StopDelivery StopType = "DELIVERY"
	StopWaypoint StopType = "WAYPOINT"
)

// ParseStopType normalizes and validates a stop type string.
func ParseStopType(s string) (StopType, error) {
	switch t := StopType(strings.ToUpper(strings.TrimSpace(s))); t {
	case StopPickup, StopDelivery, StopWaypoint:
		return t, nil
	default:
		return "", fmt.Errorf("unknown stop type %q", s)
	}
}

// Stop is a single pickup, delivery, or waypoint location in a trip.
// A stop must carry either a coordinate pair or a complete street address.
type Stop struct {
	Sequence int
	Type     StopType

	// Address fields (optional when coordinates are provided).
	Address string
	City    string
	State   string
	Zip     string

	// Coordinates (optional when a full address is provided).
	Latitude  *float64
	Longitude *float64

	// Arrival window.
	EarliestTime *time.Time
	LatestTime   *time.Time

	ServiceMinutes int
	Notes          string
}

// HasCoordinates reports whether both latitude and longitude are present.
func (s Stop) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Coordinates returns the stop's location when present.
func (s Stop) Coordinates() (Coordinates, bool) {
	if !s.HasCoordinates() {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *s.Latitude, Lon: *s.Longitude}, true
}

func (s Stop) hasFullAddress() bool {
	return s.Address != "" && s.City != "" && s.State != "" && s.Zip != ""
}

// Validate checks the stop's structural invariants.
func (s Stop) Validate() error {
	if s.Sequence < 1 {
		return fmt.Errorf("stop_sequence %d must be a positive integer", s.Sequence)
	}
	if _, err := ParseStopType(string(s.Type)); err != nil {
		return err
	}
	if !s.HasCoordinates() && !s.hasFullAddress() {
		return fmt.Errorf(
			"stop %d must provide either coordinates (latitude/longitude) or a full address (address, city, state, zip)",
			s.Sequence,
		)
	}
	if s.HasCoordinates() {
		c := Coordinates{Lat: *s.Latitude, Lon: *s.Longitude}
		if !c.Valid() {
			return fmt.Errorf("stop %d has coordinates out of range", s.Sequence)
		}
	}
	if s.ServiceMinutes < 0 || s.ServiceMinutes > 480 {
		return fmt.Errorf("stop %d service_duration_minutes %d out of range (0 to 480)", s.Sequence, s.ServiceMinutes)
	}
	if s.EarliestTime != nil && s.LatestTime != nil && !s.LatestTime.After(*s.EarliestTime) {
		return fmt.Errorf("stop %d latest_time must be after earliest_time", s.Sequence)
	}
	return nil
}

// Trip groups a set of stored stops under one identifier.
type Trip struct {
	TripID string
	Name   string
}
