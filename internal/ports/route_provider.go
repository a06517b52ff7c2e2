package ports

import (
	"context"
	"fmt"

	"truck-route-service/internal/domain"
)

// RouteOptions selects how much detail a provider call should return.
type RouteOptions struct {
	// Geometry requests the full route polyline. The full-geometry path is
	// given a longer request timeout than the summary path.
	Geometry bool
}

// RouteResult is a resolved route between an ordered coordinate sequence.
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        []domain.Coordinates
}

// Contract for resolving an ordered coordinate sequence into distance,
// duration, and optional geometry.
type RouteProvider interface {
	// GetRoute makes a single attempt against the network route provider.
	// Provider-side failures of any kind are returned as *UpstreamError;
	// retry policy, if any, belongs to the caller.
	GetRoute(ctx context.Context, coords []domain.Coordinates, opts RouteOptions) (RouteResult, error)
}

// UpstreamError means the external route provider could not be used: timeout,
// transport failure, bad status, malformed payload, non-Ok result, or an
// empty route list. Callers distinguish it from input validation failures
// with errors.As.
type UpstreamError struct {
	Reason string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *UpstreamError) Unwrap() error { return e.Err }
