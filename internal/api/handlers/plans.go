package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"truck-route-service/internal/api/dto"
	"truck-route-service/internal/domain"
	"truck-route-service/internal/hazards"
	"truck-route-service/internal/platform/obs"
	"truck-route-service/internal/ports"
	"truck-route-service/internal/services"
)

type PlanHandler struct {
	Provider ports.RouteProvider
	Catalog  *hazards.Catalog
}

// Plan produces a complete truck route plan: ordered stops, hazard scan,
// HOS breaks, fuel stop, costs, and alerts.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRouteRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Stops) == 0 {
		writeError(w, r, http.StatusBadRequest, "stops are required")
		return
	}
	if req.StartLocation == nil {
		writeError(w, r, http.StatusBadRequest, "start_location is required")
		return
	}

	stops := make([]domain.Stop, 0, len(req.Stops))
	for _, s := range req.Stops {
		stop, err := s.ToStop()
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		stops = append(stops, stop)
	}

	startTime := time.Now()
	if req.StartTime != nil {
		startTime = *req.StartTime
	}

	svcReq := services.PlanRouteRequest{
		Stops:   stops,
		Vehicle: req.Vehicle.ToVehicle(),
		HOS:     req.HOS.ToDutyStatus(),
		StartLocation: domain.Coordinates{
			Lat: req.StartLocation.Latitude,
			Lon: req.StartLocation.Longitude,
		},
		StartTime:          startTime,
		OptimizeOrder:      req.OptimizeOrder,
		FuelPricePerGallon: req.FuelPricePerGallon,
	}

	plan, err := services.PlanTruckRoute(r.Context(), svcReq, h.Provider, h.Catalog)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	obs.PlansGenerated.Inc()
	writeJSON(w, r, http.StatusOK, dto.FromRoutePlan(plan))
}
