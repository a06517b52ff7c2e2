package ports

import (
	"context"

	"truck-route-service/internal/domain"
)

// Port: a boundary for retrieving stored trips and their stops.
type TripRepository interface {
	// GetTrip returns the trip, or nil when no such trip exists.
	GetTrip(ctx context.Context, tripID string) (*domain.Trip, error)

	// ListStops returns a trip's stops ordered by sequence number.
	ListStops(ctx context.Context, tripID string) ([]domain.Stop, error)
}
