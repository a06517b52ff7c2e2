package api

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"truck-route-service/internal/api/handlers"
	"truck-route-service/internal/hazards"
	"truck-route-service/internal/ports"
)

// RouterDeps carries everything the HTTP surface needs. Handlers stay
// unaware of concrete adapters.
type RouterDeps struct {
	DB          *sql.DB
	Repo        ports.TripRepository
	Provider    ports.RouteProvider
	Cache       ports.RouteCache
	Catalog     *hazards.Catalog
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()

	healthHandler := &handlers.HealthHandler{DB: deps.DB}
	planHandler := &handlers.PlanHandler{
		Provider: deps.Provider,
		Catalog:  deps.Catalog,
	}
	routeHandler := &handlers.RouteHandler{
		Repo:     deps.Repo,
		Provider: deps.Provider,
		Cache:    deps.Cache,
	}
	hazardHandler := &handlers.HazardHandler{Catalog: deps.Catalog}

	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/plan-route", planHandler.Plan).Methods(http.MethodPost)
	r.HandleFunc("/api/trips/{trip_id}/route", routeHandler.Summary).Methods(http.MethodPost)
	r.HandleFunc("/api/trips/{trip_id}/stops", routeHandler.ListStops).Methods(http.MethodGet)
	r.HandleFunc("/api/hazards", hazardHandler.List).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.Use(metricsMiddleware)

	return corsMiddleware(deps.CORSOrigins, loggingMiddleware(r))
}
