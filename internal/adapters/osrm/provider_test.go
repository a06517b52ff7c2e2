package osrm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/ports"
)

var testCoords = []domain.Coordinates{
	{Lat: 32.7767, Lon: -96.7970},
	{Lat: 35.4676, Lon: -97.5164},
}

func TestGetRouteSummary(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":350000,"duration":14400}]}`))
	}))
	defer srv.Close()

	provider := NewOSRMRouteProvider(srv.URL)
	got, err := provider.GetRoute(context.Background(), testCoords, ports.RouteOptions{})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}

	if got.DistanceMeters != 350000 || got.DurationSeconds != 14400 {
		t.Fatalf("result = %+v", got)
	}
	if got.Geometry != nil {
		t.Fatalf("summary request returned geometry: %v", got.Geometry)
	}

	if !strings.HasPrefix(gotPath, "/route/v1/driving/") {
		t.Fatalf("path = %q", gotPath)
	}
	// Coordinates are lon,lat pairs separated by semicolons.
	if !strings.Contains(gotPath, "-96.797000,32.776700;-97.516400,35.467600") {
		t.Fatalf("path = %q", gotPath)
	}
	if !strings.Contains(gotQuery, "overview=false") {
		t.Fatalf("query = %q", gotQuery)
	}
}

func TestGetRouteGeometry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query(); q.Get("overview") != "full" || q.Get("geometries") != "geojson" {
			t.Errorf("unexpected query: %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"code":"Ok","routes":[{
			"distance":350000,"duration":14400,
			"geometry":{"coordinates":[[-96.7970,32.7767],[-97.5164,35.4676]]}
		}]}`))
	}))
	defer srv.Close()

	provider := NewOSRMRouteProvider(srv.URL)
	got, err := provider.GetRoute(context.Background(), testCoords, ports.RouteOptions{Geometry: true})
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}

	if len(got.Geometry) != 2 {
		t.Fatalf("geometry length = %d, want 2", len(got.Geometry))
	}
	if got.Geometry[0].Lat != 32.7767 || got.Geometry[0].Lon != -96.7970 {
		t.Fatalf("geometry[0] = %+v, lon/lat not swapped to lat/lon", got.Geometry[0])
	}
}

func TestGetRouteNotOk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoRoute","message":"No route found"}`))
	}))
	defer srv.Close()

	provider := NewOSRMRouteProvider(srv.URL)
	_, err := provider.GetRoute(context.Background(), testCoords, ports.RouteOptions{})

	var upstream *ports.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error = %v, want *ports.UpstreamError", err)
	}
	if upstream.Reason != "could not calculate route: No route found" {
		t.Fatalf("reason = %q", upstream.Reason)
	}
}

func TestGetRouteHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	provider := NewOSRMRouteProvider(srv.URL)
	_, err := provider.GetRoute(context.Background(), testCoords, ports.RouteOptions{})

	var upstream *ports.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error = %v, want *ports.UpstreamError", err)
	}
	if upstream.Reason != "routing service error (HTTP 502)" {
		t.Fatalf("reason = %q", upstream.Reason)
	}
}

func TestGetRouteInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	provider := NewOSRMRouteProvider(srv.URL)
	_, err := provider.GetRoute(context.Background(), testCoords, ports.RouteOptions{})

	var upstream *ports.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error = %v, want *ports.UpstreamError", err)
	}
	if upstream.Reason != "routing service returned invalid response" {
		t.Fatalf("reason = %q", upstream.Reason)
	}
}

func TestGetRouteEmptyRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","routes":[]}`))
	}))
	defer srv.Close()

	provider := NewOSRMRouteProvider(srv.URL)
	_, err := provider.GetRoute(context.Background(), testCoords, ports.RouteOptions{})

	var upstream *ports.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error = %v, want *ports.UpstreamError", err)
	}
	if upstream.Reason != "no route found between the specified stops" {
		t.Fatalf("reason = %q", upstream.Reason)
	}
}
