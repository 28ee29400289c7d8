package routing

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

const (
	// roadCurvatureFactor inflates great-circle distance to approximate road
	// distance.
	roadCurvatureFactor = 1.3

	// minutesPerKm converts fallback road distance to travel time.
	minutesPerKm = 2.0
)

// Fallback is the deterministic geometric planner used when the routing
// service is unreachable. Distance is the haversine leg sum inflated by the
// road curvature factor; duration assumes a fixed pace per kilometer.
type Fallback struct{}

// NewFallback creates the geometric fallback planner.
func NewFallback() Fallback {
	return Fallback{}
}

// Estimate computes a route estimate from geometry alone, walking
// pickup, each waypoint in order, then delivery.
func (f Fallback) Estimate(
	_ context.Context,
	pickup kernel.GeoPoint,
	delivery kernel.GeoPoint,
	waypoints []kernel.GeoPoint,
) (ports.RouteEstimate, error) {
	legs := make([]kernel.GeoPoint, 0, len(waypoints)+2)
	legs = append(legs, pickup)
	legs = append(legs, waypoints...)
	legs = append(legs, delivery)

	var total float64
	for i := 0; i < len(legs)-1; i++ {
		d, err := legs[i].DistanceKm(legs[i+1])
		if err != nil {
			return ports.RouteEstimate{}, err
		}
		total += d
	}

	distanceKm := total * roadCurvatureFactor
	return ports.RouteEstimate{
		DistanceKm:  distanceKm,
		DurationMin: distanceKm * minutesPerKm,
		Waypoints:   waypoints,
	}, nil
}

// OptimizeMultiStop orders stops with the nearest-neighbor heuristic.
func (f Fallback) OptimizeMultiStop(
	_ context.Context,
	depot kernel.GeoPoint,
	stops []kernel.GeoPoint,
) ([]kernel.GeoPoint, error) {
	return services.OrderStopsNearestNeighbor(depot, stops)
}
