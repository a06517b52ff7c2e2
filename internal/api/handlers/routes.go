package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"truck-route-service/internal/api/dto"
	"truck-route-service/internal/ports"
	"truck-route-service/internal/services"
)

// RouteHandler serves the lightweight per-trip routing surface: distance and
// drive time summaries plus stored stop retrieval.
type RouteHandler struct {
	Repo     ports.TripRepository
	Provider ports.RouteProvider
	Cache    ports.RouteCache
}

// Summary computes total distance and drive time for a trip's stop sequence.
// The trip must exist. Stops come from the request body when provided,
// otherwise from storage in sequence order.
func (h *RouteHandler) Summary(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["trip_id"]

	trip, err := h.Repo.GetTrip(r.Context(), tripID)
	if err != nil {
		log.Printf("get trip failed: trip_id=%s err=%v", tripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if trip == nil {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}

	var req dto.RouteSummaryRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	// The body is optional: no body at all routes the stored stops.
	if err := dec.Decode(&req); err != nil {
		if !errors.Is(err, io.EOF) {
			writeError(w, r, http.StatusBadRequest, "invalid json body")
			return
		}
	} else if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	stops := make([]services.SummaryStop, 0, len(req.Stops))
	for _, s := range req.Stops {
		stops = append(stops, services.SummaryStop{
			Lat:       s.Lat,
			Lng:       s.Lng,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		})
	}

	// No stops in the body means route the trip's stored stops.
	if len(stops) == 0 {
		stored, err := h.Repo.ListStops(r.Context(), tripID)
		if err != nil {
			log.Printf("list stops failed: trip_id=%s err=%v", tripID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		for _, s := range stored {
			stops = append(stops, services.SummaryStop{
				Latitude:  s.Latitude,
				Longitude: s.Longitude,
			})
		}
	}

	summary, err := services.CalculateRouteSummary(r.Context(), stops, h.Provider, h.Cache)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromRouteSummary(summary))
}

// ListStops returns a trip's stored stops in sequence order.
func (h *RouteHandler) ListStops(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["trip_id"]

	trip, err := h.Repo.GetTrip(r.Context(), tripID)
	if err != nil {
		log.Printf("get trip failed: trip_id=%s err=%v", tripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if trip == nil {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}

	stops, err := h.Repo.ListStops(r.Context(), tripID)
	if err != nil {
		log.Printf("list stops failed: trip_id=%s err=%v", tripID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(stops) == 0 {
		writeError(w, r, http.StatusBadRequest, "trip has no stops")
		return
	}

	res := dto.ListStopsResponse{
		TripID: tripID,
		Stops:  make([]dto.StopResponse, 0, len(stops)),
	}
	for _, s := range stops {
		res.Stops = append(res.Stops, dto.FromStop(s))
	}

	writeJSON(w, r, http.StatusOK, res)
}
