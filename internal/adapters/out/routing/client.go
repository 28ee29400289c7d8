// Package routing implements the route planner port: an HTTP client for the
// external routing service composed with a deterministic geometric fallback.
// The composition never surfaces an upstream failure to callers; a routing
// outage only makes estimates coarser.
package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Client calls the external routing service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a routing service client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type pointPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type routeRequest struct {
	Origin      pointPayload   `json:"origin"`
	Destination pointPayload   `json:"destination"`
	Waypoints   []pointPayload `json:"waypoints,omitempty"`
}

type routeResponse struct {
	DistanceKm  float64        `json:"distance_km"`
	DurationMin float64        `json:"duration_min"`
	Waypoints   []pointPayload `json:"waypoints"`
}

type optimizeRequest struct {
	Depot pointPayload   `json:"depot"`
	Stops []pointPayload `json:"stops"`
}

type optimizeResponse struct {
	Stops []pointPayload `json:"stops"`
}

func pointToPayload(p kernel.GeoPoint) pointPayload {
	return pointPayload{Lat: p.Lat(), Lng: p.Lng()}
}

func pointsToPayload(points []kernel.GeoPoint) []pointPayload {
	if len(points) == 0 {
		return nil
	}
	payloads := make([]pointPayload, 0, len(points))
	for _, p := range points {
		payloads = append(payloads, pointToPayload(p))
	}
	return payloads
}

func pointsFromPayload(payloads []pointPayload) ([]kernel.GeoPoint, error) {
	if len(payloads) == 0 {
		return nil, nil
	}
	points := make([]kernel.GeoPoint, 0, len(payloads))
	for _, payload := range payloads {
		p, err := kernel.NewGeoPoint(payload.Lat, payload.Lng)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// Estimate requests a route estimate from the routing service.
func (c *Client) Estimate(
	ctx context.Context,
	pickup kernel.GeoPoint,
	delivery kernel.GeoPoint,
	waypoints []kernel.GeoPoint,
) (ports.RouteEstimate, error) {
	req := routeRequest{
		Origin:      pointToPayload(pickup),
		Destination: pointToPayload(delivery),
		Waypoints:   pointsToPayload(waypoints),
	}

	var resp routeResponse
	if err := c.post(ctx, "/route", req, &resp); err != nil {
		return ports.RouteEstimate{}, err
	}

	routed, err := pointsFromPayload(resp.Waypoints)
	if err != nil {
		return ports.RouteEstimate{}, errs.NewUpstreamServiceError("routing", err)
	}

	return ports.RouteEstimate{
		DistanceKm:  resp.DistanceKm,
		DurationMin: resp.DurationMin,
		Waypoints:   routed,
	}, nil
}

// OptimizeMultiStop requests a stop ordering from the routing service.
func (c *Client) OptimizeMultiStop(
	ctx context.Context,
	depot kernel.GeoPoint,
	stops []kernel.GeoPoint,
) ([]kernel.GeoPoint, error) {
	req := optimizeRequest{
		Depot: pointToPayload(depot),
		Stops: pointsToPayload(stops),
	}

	var resp optimizeResponse
	if err := c.post(ctx, "/optimize", req, &resp); err != nil {
		return nil, err
	}

	ordered, err := pointsFromPayload(resp.Stops)
	if err != nil {
		return nil, errs.NewUpstreamServiceError("routing", err)
	}

	return ordered, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errs.NewUpstreamServiceError("routing", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return errs.NewUpstreamServiceError("routing", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errs.NewUpstreamServiceError("routing", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errs.NewUpstreamServiceError("routing",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.NewUpstreamServiceError("routing", err)
	}

	return nil
}
