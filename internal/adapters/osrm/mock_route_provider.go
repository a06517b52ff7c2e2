package osrm

import (
	"context"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/ports"
)

// MockRouteProvider returns a fixed result or error for every request.
// Useful in handler and command tests where no OSRM backend is reachable.
type MockRouteProvider struct {
	Result ports.RouteResult
	Err    error
}

func (p *MockRouteProvider) GetRoute(
	_ context.Context,
	_ []domain.Coordinates,
	opts ports.RouteOptions,
) (ports.RouteResult, error) {
	if p.Err != nil {
		return ports.RouteResult{}, p.Err
	}

	result := p.Result
	if !opts.Geometry {
		result.Geometry = nil
	}
	return result, nil
}
