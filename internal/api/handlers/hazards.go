package handlers

import (
	"net/http"

	"truck-route-service/internal/api/dto"
	"truck-route-service/internal/domain"
	"truck-route-service/internal/hazards"
)

// HazardHandler exposes the hazard reference catalog.
type HazardHandler struct {
	Catalog *hazards.Catalog
}

func (h *HazardHandler) List(w http.ResponseWriter, r *http.Request) {
	res := dto.ListHazardsResponse{
		LowBridges:         hazardResponses(h.Catalog.LowBridges),
		WeightLimits:       hazardResponses(h.Catalog.WeightLimits),
		HazmatRestrictions: hazardResponses(h.Catalog.HazmatZones),
	}

	writeJSON(w, r, http.StatusOK, res)
}

func hazardResponses(list []domain.Hazard) []dto.HazardResponse {
	out := make([]dto.HazardResponse, 0, len(list))
	for _, h := range list {
		resp := dto.HazardResponse{
			Name: h.Name,
			Location: dto.CoordinatesRequest{
				Latitude:  h.Location.Lat,
				Longitude: h.Location.Lon,
			},
		}

		switch h.Kind {
		case domain.HazardLowBridge:
			clearance := h.ClearanceFeet
			resp.ClearanceFeet = &clearance
		case domain.HazardWeightLimit:
			limit := h.WeightLimitLbs
			resp.WeightLimitLbs = &limit
		case domain.HazardHazmat:
			for _, c := range h.Restricted {
				resp.Restricted = append(resp.Restricted, string(c))
			}
		}

		out = append(out, resp)
	}
	return out
}
