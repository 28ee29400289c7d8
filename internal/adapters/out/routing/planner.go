package routing

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// Planner implements ports.RoutePlanner by trying the routing service first
// and degrading to the geometric fallback on any upstream failure. Upstream
// errors are logged, never returned; only invalid input fails.
type Planner struct {
	primary  *Client
	fallback Fallback
}

// NewPlanner creates a route planner backed by the given client. A nil
// client yields a planner running on the fallback alone.
func NewPlanner(primary *Client) *Planner {
	return &Planner{
		primary:  primary,
		fallback: NewFallback(),
	}
}

// Estimate plans a route from pickup to delivery through the waypoints.
func (p *Planner) Estimate(
	ctx context.Context,
	pickup kernel.GeoPoint,
	delivery kernel.GeoPoint,
	waypoints []kernel.GeoPoint,
) (ports.RouteEstimate, error) {
	if p.primary != nil {
		estimate, err := p.primary.Estimate(ctx, pickup, delivery, waypoints)
		if err == nil {
			return estimate, nil
		}
		slog.Warn("route estimate via routing service failed, using fallback",
			slog.Any("error", err))
	}

	return p.fallback.Estimate(ctx, pickup, delivery, waypoints)
}

// OptimizeMultiStop orders the stops of a multi-drop run from the depot.
// Zero or one stop is returned unchanged without consulting the routing
// service; there is nothing to optimize.
func (p *Planner) OptimizeMultiStop(
	ctx context.Context,
	depot kernel.GeoPoint,
	stops []kernel.GeoPoint,
) ([]kernel.GeoPoint, error) {
	if len(stops) <= 1 {
		return stops, nil
	}

	if p.primary != nil {
		ordered, err := p.primary.OptimizeMultiStop(ctx, depot, stops)
		if err == nil {
			return ordered, nil
		}
		slog.Warn("multi-stop optimization via routing service failed, using fallback",
			slog.Any("error", err))
	}

	return p.fallback.OptimizeMultiStop(ctx, depot, stops)
}
