package dto

import (
	"fmt"
	"time"

	"truck-route-service/internal/domain"
)

type CoordinatesRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type StopRequest struct {
	Sequence       int      `json:"stop_sequence"`
	Type           string   `json:"stop_type"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	Zip            string   `json:"zip"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	EarliestTime   *string  `json:"earliest_time"`
	LatestTime     *string  `json:"latest_time"`
	ServiceMinutes int      `json:"service_duration_minutes"`
	Notes          string   `json:"notes"`
}

type VehicleRequest struct {
	VehicleID          string   `json:"vehicle_id"`
	HeightFeet         float64  `json:"height_feet"`
	WidthFeet          float64  `json:"width_feet"`
	LengthFeet         float64  `json:"length_feet"`
	GrossWeightLbs     int      `json:"gross_weight_lbs"`
	AxleCount          int      `json:"axle_count"`
	FuelTankGallons    float64  `json:"fuel_tank_gallons"`
	MPG                float64  `json:"mpg"`
	CurrentFuelGallons *float64 `json:"current_fuel_gallons"`
	HazmatClass        string   `json:"hazmat_class"`
}

type DutyStatusRequest struct {
	DriverID              string  `json:"driver_id"`
	DrivingHoursRemaining float64 `json:"driving_hours_remaining"`
	OnDutyHoursRemaining  float64 `json:"on_duty_hours_remaining"`
	HoursSinceLastBreak   float64 `json:"hours_since_last_break"`
	CycleHoursRemaining   float64 `json:"cycle_hours_remaining"`
	BreakRequired         bool    `json:"break_required"`
}

type PlanRouteRequest struct {
	Stops              []StopRequest       `json:"stops"`
	Vehicle            *VehicleRequest     `json:"vehicle"`
	HOS                *DutyStatusRequest  `json:"hos_status"`
	StartLocation      *CoordinatesRequest `json:"start_location"`
	StartTime          *time.Time          `json:"start_time"`
	OptimizeOrder      bool                `json:"optimize_stop_order"`
	FuelPricePerGallon float64             `json:"fuel_price_per_gallon"`
}

// ToStop converts a wire stop, parsing the arrival window timestamps.
func (s StopRequest) ToStop() (domain.Stop, error) {
	stop := domain.Stop{
		Sequence:       s.Sequence,
		Type:           domain.StopType(s.Type),
		Address:        s.Address,
		City:           s.City,
		State:          s.State,
		Zip:            s.Zip,
		Latitude:       s.Latitude,
		Longitude:      s.Longitude,
		ServiceMinutes: s.ServiceMinutes,
		Notes:          s.Notes,
	}

	if t, err := domain.ParseStopType(s.Type); err == nil {
		stop.Type = t
	}

	if s.EarliestTime != nil && *s.EarliestTime != "" {
		t, err := time.Parse(time.RFC3339, *s.EarliestTime)
		if err != nil {
			return domain.Stop{}, fmt.Errorf("stop %d: parse earliest_time: %w", s.Sequence, err)
		}
		stop.EarliestTime = &t
	}
	if s.LatestTime != nil && *s.LatestTime != "" {
		t, err := time.Parse(time.RFC3339, *s.LatestTime)
		if err != nil {
			return domain.Stop{}, fmt.Errorf("stop %d: parse latest_time: %w", s.Sequence, err)
		}
		stop.LatestTime = &t
	}

	return stop, nil
}

// ToVehicle converts a wire vehicle profile, applying standard semi-truck
// defaults for absent fields. A nil request yields the default profile.
func (v *VehicleRequest) ToVehicle() domain.VehicleProfile {
	profile := domain.DefaultVehicleProfile()
	if v == nil {
		return profile
	}

	if v.VehicleID != "" {
		profile.VehicleID = v.VehicleID
	}
	if v.HeightFeet != 0 {
		profile.HeightFeet = v.HeightFeet
	}
	if v.WidthFeet != 0 {
		profile.WidthFeet = v.WidthFeet
	}
	if v.LengthFeet != 0 {
		profile.LengthFeet = v.LengthFeet
	}
	if v.GrossWeightLbs != 0 {
		profile.GrossWeightLbs = v.GrossWeightLbs
	}
	if v.AxleCount != 0 {
		profile.AxleCount = v.AxleCount
	}
	if v.FuelTankGallons != 0 {
		profile.FuelTankGallons = v.FuelTankGallons
	}
	if v.MPG != 0 {
		profile.MPG = v.MPG
	}
	profile.CurrentFuelGallons = v.CurrentFuelGallons
	if v.HazmatClass != "" {
		profile.HazmatClass = domain.HazmatClass(v.HazmatClass)
	}

	return profile
}

// ToDutyStatus converts a wire duty status. A nil request yields a fresh
// full-budget driver.
func (d *DutyStatusRequest) ToDutyStatus() domain.DutyStatus {
	status := domain.DefaultDutyStatus()
	if d == nil {
		return status
	}

	status.DriverID = d.DriverID
	if d.DrivingHoursRemaining != 0 {
		status.DrivingHoursRemaining = d.DrivingHoursRemaining
	}
	if d.OnDutyHoursRemaining != 0 {
		status.OnDutyHoursRemaining = d.OnDutyHoursRemaining
	}
	status.HoursSinceLastBreak = d.HoursSinceLastBreak
	if d.CycleHoursRemaining != 0 {
		status.CycleHoursRemaining = d.CycleHoursRemaining
	}
	status.BreakRequired = d.BreakRequired

	return status
}
