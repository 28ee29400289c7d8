package services

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// OrderStopsNearestNeighbor orders delivery stops greedily by proximity:
// starting from the depot, repeatedly visit the nearest unvisited stop.
//
// The result is deterministic for a fixed input; distance ties keep the
// earlier stop. Inputs with zero or one stop are returned unchanged.
func OrderStopsNearestNeighbor(depot kernel.GeoPoint, stops []kernel.GeoPoint) ([]kernel.GeoPoint, error) {
	if err := depot.Validate(); err != nil {
		return nil, err
	}
	for _, stop := range stops {
		if err := stop.Validate(); err != nil {
			return nil, err
		}
	}

	if len(stops) <= 1 {
		out := make([]kernel.GeoPoint, len(stops))
		copy(out, stops)
		return out, nil
	}

	remaining := make([]kernel.GeoPoint, len(stops))
	copy(remaining, stops)

	ordered := make([]kernel.GeoPoint, 0, len(stops))
	current := depot

	for len(remaining) > 0 {
		bestIdx := 0
		bestDist, err := current.DistanceKm(remaining[0])
		if err != nil {
			return nil, err
		}

		for i := 1; i < len(remaining); i++ {
			d, err := current.DistanceKm(remaining[i])
			if err != nil {
				return nil, err
			}
			if d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}

		current = remaining[bestIdx]
		ordered = append(ordered, current)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return ordered, nil
}
