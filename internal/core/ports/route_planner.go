package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// RouteEstimate is the outcome of planning a route between two points,
// optionally through intermediate waypoints.
type RouteEstimate struct {
	DistanceKm  float64
	DurationMin float64
	Waypoints   []kernel.GeoPoint
}

// RoutePlanner computes route estimates and multi-stop orderings.
//
// The production implementation composes an external routing service with a
// deterministic geometric fallback, so callers never observe an upstream
// failure: Estimate and OptimizeMultiStop only fail on invalid input.
type RoutePlanner interface {
	// Estimate plans a route from pickup to delivery through the given
	// waypoints, returning distance, duration, and the waypoint order.
	Estimate(ctx context.Context, pickup kernel.GeoPoint, delivery kernel.GeoPoint,
		waypoints []kernel.GeoPoint) (RouteEstimate, error)

	// OptimizeMultiStop orders the stops of a multi-drop run starting from
	// the depot.
	OptimizeMultiStop(ctx context.Context, depot kernel.GeoPoint,
		stops []kernel.GeoPoint) ([]kernel.GeoPoint, error)
}
