package services

import (
	"math"

	"truck-route-service/internal/domain"
	"truck-route-service/internal/geo"
)

// SequenceStops orders an unordered stop set into a visitation sequence using
// a greedy nearest-neighbor heuristic, then reassigns sequence numbers 1..N.
//
// Pickups are visited before any delivery; within each class the next stop is
// always the one nearest (haversine) to the current position. Waypoints are
// inserted afterward at the position that adds the least travel distance.
// The result is O(n^2) and deterministic, not globally optimal.
//
// Fewer than 3 stops are returned unchanged. The optional end coordinate is
// reserved for round-trip sequencing and does not affect ordering.
func SequenceStops(stops []domain.Stop, start domain.Coordinates, end *domain.Coordinates) []domain.Stop {
	if len(stops) <= 2 {
		return stops
	}

	var pickups, deliveries, waypoints []domain.Stop
	for _, s := range stops {
		switch s.Type {
		case domain.StopPickup:
			pickups = append(pickups, s)
		case domain.StopDelivery:
			deliveries = append(deliveries, s)
		case domain.StopWaypoint:
			waypoints = append(waypoints, s)
		}
	}

	ordered := make([]domain.Stop, 0, len(stops))
	current := start

	for _, group := range [][]domain.Stop{pickups, deliveries} {
		remaining := append([]domain.Stop(nil), group...)
		for len(remaining) > 0 {
			best := 0
			bestDist := stopDistance(remaining[0], current)
			for i := 1; i < len(remaining); i++ {
				if d := stopDistance(remaining[i], current); d < bestDist {
					best = i
					bestDist = d
				}
			}

			next := remaining[best]
			ordered = append(ordered, next)
			if c, ok := next.Coordinates(); ok {
				current = c
			}
			remaining = append(remaining[:best], remaining[best+1:]...)
		}
	}

	for _, wp := range waypoints {
		bestIdx := len(ordered)
		bestAdded := math.Inf(1)

		for i := 0; i <= len(ordered); i++ {
			if added := insertionCost(ordered, i, wp, start); added < bestAdded {
				bestAdded = added
				bestIdx = i
			}
		}

		ordered = append(ordered, domain.Stop{})
		copy(ordered[bestIdx+1:], ordered[bestIdx:])
		ordered[bestIdx] = wp
	}

	for i := range ordered {
		ordered[i].Sequence = i + 1
	}

	return ordered
}

// stopDistance is the haversine distance from a position to a stop, or +Inf
// when the stop has no coordinates.
func stopDistance(s domain.Stop, from domain.Coordinates) float64 {
	c, ok := s.Coordinates()
	if !ok {
		return math.Inf(1)
	}
	return geo.HaversineMiles(from, c)
}

// insertionCost is the marginal distance added by inserting a stop at a given
// position in an already-ordered sequence.
func insertionCost(ordered []domain.Stop, idx int, candidate domain.Stop, start domain.Coordinates) float64 {
	loc, ok := candidate.Coordinates()
	if !ok {
		return math.Inf(1)
	}

	switch {
	case idx == 0:
		if len(ordered) > 0 {
			if first, ok := ordered[0].Coordinates(); ok {
				original := geo.HaversineMiles(start, first)
				detour := geo.HaversineMiles(start, loc) + geo.HaversineMiles(loc, first)
				return detour - original
			}
		}
		return geo.HaversineMiles(start, loc)

	case idx >= len(ordered):
		if last, ok := ordered[len(ordered)-1].Coordinates(); ok {
			return geo.HaversineMiles(last, loc)
		}
		return 0

	default:
		prev, okPrev := ordered[idx-1].Coordinates()
		next, okNext := ordered[idx].Coordinates()
		if okPrev && okNext {
			original := geo.HaversineMiles(prev, next)
			detour := geo.HaversineMiles(prev, loc) + geo.HaversineMiles(loc, next)
			return detour - original
		}
		return 0
	}
}
