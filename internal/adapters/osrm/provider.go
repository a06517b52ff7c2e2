package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/platform/obs"
	"truck-route-service/internal/ports"
)

const (
	defaultBaseURL = "https://router.project-osrm.org"

	// A summary lookup is interactive; a full-geometry request may carry a
	// long polyline and gets more headroom.
	summaryTimeout  = 8 * time.Second
	geometryTimeout = 30 * time.Second
)

// OSRMRouteProvider implements RouteProvider against an OSRM routing
// backend. Every failure mode maps to *ports.UpstreamError so callers can
// distinguish an unusable provider from bad input.
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
}

func NewOSRMRouteProvider(baseURL string) *OSRMRouteProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &OSRMRouteProvider{
		session: &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

type osrmResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Routes  []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64      `json:"distance"`
	Duration float64      `json:"duration"`
	Geometry osrmGeometry `json:"geometry"`
}

type osrmGeometry struct {
	Coordinates [][]float64 `json:"coordinates"`
}

// GetRoute resolves one driving route through the given coordinates in
// order. With opts.Geometry set the response includes the route polyline as
// GeoJSON; without it only distance and duration are requested. Callers
// validate coordinate counts before calling; any error returned here is an
// upstream failure, never a bad request.
func (o *OSRMRouteProvider) GetRoute(
	ctx context.Context,
	coords []domain.Coordinates,
	opts ports.RouteOptions,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "osrm.GetRoute")(&err)

	timeout := summaryTimeout
	if opts.Geometry {
		timeout = geometryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := o.newRequest(ctx, o.routeURL(coords, opts))
	if err != nil {
		return ports.RouteResult{}, &ports.UpstreamError{Reason: "routing service unavailable", Err: err}
	}

	resp, err := o.do(req)
	if err != nil {
		return ports.RouteResult{}, classify(err)
	}
	defer resp.Body.Close()

	var decoded osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.RouteResult{}, &ports.UpstreamError{Reason: "routing service returned invalid response", Err: err}
	}

	if decoded.Code != "Ok" {
		reason := fmt.Sprintf("could not calculate route: %s", decoded.Code)
		if decoded.Message != "" {
			reason = fmt.Sprintf("could not calculate route: %s", decoded.Message)
		}
		return ports.RouteResult{}, &ports.UpstreamError{Reason: reason}
	}
	if len(decoded.Routes) == 0 {
		return ports.RouteResult{}, &ports.UpstreamError{Reason: "no route found between the specified stops"}
	}

	route := decoded.Routes[0]
	result := ports.RouteResult{
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
	}

	if opts.Geometry {
		result.Geometry = make([]domain.Coordinates, 0, len(route.Geometry.Coordinates))
		for _, pair := range route.Geometry.Coordinates {
			if len(pair) < 2 {
				continue
			}
			// GeoJSON order is [lon, lat].
			result.Geometry = append(result.Geometry, domain.Coordinates{Lat: pair[1], Lon: pair[0]})
		}
	}

	return result, nil
}

// routeURL builds /route/v1/driving/{lon,lat;lon,lat;...} with the query
// parameters appropriate for the requested detail level.
func (o *OSRMRouteProvider) routeURL(coords []domain.Coordinates, opts ports.RouteOptions) string {
	parts := make([]string, 0, len(coords))
	for _, c := range coords {
		parts = append(parts, fmt.Sprintf("%f,%f", c.Lon, c.Lat))
	}

	q := url.Values{}
	if opts.Geometry {
		q.Set("overview", "full")
		q.Set("geometries", "geojson")
		q.Set("steps", "true")
		q.Set("annotations", "true")
	} else {
		q.Set("overview", "false")
		q.Set("steps", "false")
		q.Set("annotations", "false")
	}

	return fmt.Sprintf("%s/route/v1/driving/%s?%s", o.baseURL, strings.Join(parts, ";"), q.Encode())
}

func classify(err error) *ports.UpstreamError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ports.UpstreamError{Reason: "routing service timed out", Err: err}
	}

	var he *httpStatusError
	if errors.As(err, &he) {
		return &ports.UpstreamError{
			Reason: fmt.Sprintf("routing service error (HTTP %d)", he.Code),
			Err:    err,
		}
	}

	return &ports.UpstreamError{Reason: "routing service unavailable", Err: err}
}
