package dto

import (
	"time"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/services"
)

type SummaryStopRequest struct {
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type RouteSummaryRequest struct {
	Stops []SummaryStopRequest `json:"stops"`
}

type RouteSummaryResponse struct {
	TotalDistanceKM       float64  `json:"total_distance_km"`
	TotalDriveTimeMinutes float64  `json:"total_drive_time_minutes"`
	RoutingEngine         string   `json:"routing_engine"`
	Notes                 []string `json:"notes"`
}

func FromRouteSummary(s *services.RouteSummary) RouteSummaryResponse {
	return RouteSummaryResponse{
		TotalDistanceKM:       s.TotalDistanceKM,
		TotalDriveTimeMinutes: s.TotalDriveTimeMinutes,
		RoutingEngine:         s.RoutingEngine,
		Notes:                 s.Notes,
	}
}

type StopResponse struct {
	Sequence       int      `json:"stop_sequence"`
	Type           string   `json:"stop_type"`
	Address        string   `json:"address,omitempty"`
	City           string   `json:"city,omitempty"`
	State          string   `json:"state,omitempty"`
	Zip            string   `json:"zip,omitempty"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	EarliestTime   *string  `json:"earliest_time,omitempty"`
	LatestTime     *string  `json:"latest_time,omitempty"`
	ServiceMinutes int      `json:"service_duration_minutes"`
	Notes          string   `json:"notes,omitempty"`
}

func FromStop(s domain.Stop) StopResponse {
	resp := StopResponse{
		Sequence:       s.Sequence,
		Type:           string(s.Type),
		Address:        s.Address,
		City:           s.City,
		State:          s.State,
		Zip:            s.Zip,
		Latitude:       s.Latitude,
		Longitude:      s.Longitude,
		ServiceMinutes: s.ServiceMinutes,
		Notes:          s.Notes,
	}
	if s.EarliestTime != nil {
		t := s.EarliestTime.Format(time.RFC3339)
		resp.EarliestTime = &t
	}
	if s.LatestTime != nil {
		t := s.LatestTime.Format(time.RFC3339)
		resp.LatestTime = &t
	}
	return resp
}

type ListStopsResponse struct {
	TripID string         `json:"trip_id"`
	Stops  []StopResponse `json:"stops"`
}

type PlannedBreakResponse struct {
	Kind                   string  `json:"break_type"`
	LocationName           string  `json:"location_name"`
	DurationMinutes        int     `json:"duration_minutes"`
	DistanceFromStartMiles float64 `json:"distance_from_start_miles"`
	TimeFromStartHours     float64 `json:"time_from_start_hours"`
	Reason                 string  `json:"reason"`
}

type AlertResponse struct {
	Type            string              `json:"alert_type"`
	Severity        string              `json:"severity"`
	Title           string              `json:"title"`
	Message         string              `json:"message"`
	Location        *CoordinatesRequest `json:"location,omitempty"`
	StopSequence    int                 `json:"stop_sequence,omitempty"`
	SuggestedAction string              `json:"suggested_action,omitempty"`
}

type RouteTotalsResponse struct {
	DistanceMiles    float64 `json:"total_distance_miles"`
	TotalTimeHours   float64 `json:"total_time_hours"`
	DrivingTimeHours float64 `json:"driving_time_hours"`
	BreakTimeHours   float64 `json:"break_time_hours"`
	ServiceTimeHours float64 `json:"service_time_hours"`
}

type CostBreakdownResponse struct {
	FuelGallons float64 `json:"fuel_gallons"`
	FuelCost    float64 `json:"fuel_cost"`
	CostPerMile float64 `json:"cost_per_mile"`
}

type HOSSummaryResponse struct {
	CanCompleteWithoutRest bool    `json:"can_complete_without_rest"`
	RequiredBreaks         int     `json:"required_breaks"`
	HoursRemainingAtEnd    float64 `json:"hours_remaining_at_end"`
}

type HazardCountsResponse struct {
	LowBridges         int `json:"low_bridges"`
	WeightRestrictions int `json:"weight_restrictions"`
	HazmatRestrictions int `json:"hazmat_restrictions"`
}

type RoutePlanResponse struct {
	Stops       []StopResponse         `json:"stops"`
	Totals      RouteTotalsResponse    `json:"totals"`
	Costs       CostBreakdownResponse  `json:"costs"`
	HOS         HOSSummaryResponse     `json:"hos_summary"`
	Hazards     HazardCountsResponse   `json:"hazards_avoided"`
	Breaks      []PlannedBreakResponse `json:"planned_breaks"`
	Alerts      []AlertResponse        `json:"alerts"`
	Explanation string                 `json:"explanation"`
	// Geometry entries are [longitude, latitude] pairs.
	Geometry [][]float64 `json:"geometry"`
}

func FromRoutePlan(p *domain.RoutePlan) RoutePlanResponse {
	resp := RoutePlanResponse{
		Totals: RouteTotalsResponse{
			DistanceMiles:    p.Totals.DistanceMiles,
			TotalTimeHours:   p.Totals.TotalTimeHours,
			DrivingTimeHours: p.Totals.DrivingTimeHours,
			BreakTimeHours:   p.Totals.BreakTimeHours,
			ServiceTimeHours: p.Totals.ServiceTimeHours,
		},
		Costs: CostBreakdownResponse{
			FuelGallons: p.Costs.FuelGallons,
			FuelCost:    p.Costs.FuelCost,
			CostPerMile: p.Costs.CostPerMile,
		},
		HOS: HOSSummaryResponse{
			CanCompleteWithoutRest: p.HOS.CanCompleteWithoutRest,
			RequiredBreaks:         p.HOS.RequiredBreaks,
			HoursRemainingAtEnd:    p.HOS.HoursRemainingAtEnd,
		},
		Hazards: HazardCountsResponse{
			LowBridges:         p.Hazards.LowBridges,
			WeightRestrictions: p.Hazards.WeightRestrictions,
			HazmatRestrictions: p.Hazards.HazmatRestrictions,
		},
		Explanation: p.Explanation,
	}

	resp.Stops = make([]StopResponse, 0, len(p.Stops))
	for _, s := range p.Stops {
		resp.Stops = append(resp.Stops, FromStop(s))
	}

	resp.Breaks = make([]PlannedBreakResponse, 0, len(p.Breaks))
	for _, b := range p.Breaks {
		resp.Breaks = append(resp.Breaks, PlannedBreakResponse{
			Kind:                   string(b.Kind),
			LocationName:           b.LocationName,
			DurationMinutes:        b.DurationMinutes,
			DistanceFromStartMiles: b.DistanceFromStartMiles,
			TimeFromStartHours:     b.TimeFromStartHours,
			Reason:                 b.Reason,
		})
	}

	resp.Alerts = make([]AlertResponse, 0, len(p.Alerts))
	for _, a := range p.Alerts {
		ar := AlertResponse{
			Type:            string(a.Type),
			Severity:        string(a.Severity),
			Title:           a.Title,
			Message:         a.Message,
			StopSequence:    a.StopSequence,
			SuggestedAction: a.SuggestedAction,
		}
		if a.Location != nil {
			ar.Location = &CoordinatesRequest{Latitude: a.Location.Lat, Longitude: a.Location.Lon}
		}
		resp.Alerts = append(resp.Alerts, ar)
	}

	resp.Geometry = make([][]float64, 0, len(p.Geometry))
	for _, c := range p.Geometry {
		resp.Geometry = append(resp.Geometry, c.CoordsToList())
	}

	return resp
}

type HazardResponse struct {
	Name           string              `json:"name"`
	Location       CoordinatesRequest  `json:"location"`
	ClearanceFeet  *float64            `json:"clearance_feet,omitempty"`
	WeightLimitLbs *int                `json:"weight_limit_lbs,omitempty"`
	Restricted     []string            `json:"restricted_classes,omitempty"`
}

type ListHazardsResponse struct {
	LowBridges         []HazardResponse `json:"low_bridges"`
	WeightLimits       []HazardResponse `json:"weight_limits"`
	HazmatRestrictions []HazardResponse `json:"hazmat_restrictions"`
}
