// Package accounts implements the farmer directory port against the accounts
// service, which owns seller profiles. Fulfillment only reads the slice it
// needs: whether the farmer can take orders and where pickups happen.
package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Client calls the accounts service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an accounts service client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type farmerPayload struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Active        bool    `json:"active"`
	Verified      bool    `json:"verified"`
	PickupLat     float64 `json:"pickup_lat"`
	PickupLng     float64 `json:"pickup_lng"`
	PickupAddress string  `json:"pickup_address"`
}

// Get retrieves a farmer profile by identifier.
func (c *Client) Get(ctx context.Context, id kernel.UUID) (ports.FarmerProfile, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+"/farmers/"+id.String(), nil)
	if err != nil {
		return ports.FarmerProfile{}, errs.NewUpstreamServiceError("accounts", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ports.FarmerProfile{}, errs.NewUpstreamServiceError("accounts", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.FarmerProfile{}, errs.NewObjectNotFoundError("farmerId", id)
	}
	if resp.StatusCode != http.StatusOK {
		return ports.FarmerProfile{}, errs.NewUpstreamServiceError("accounts",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var payload farmerPayload
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ports.FarmerProfile{}, errs.NewUpstreamServiceError("accounts", err)
	}

	farmerID, err := kernel.UUIDFromString(payload.ID)
	if err != nil {
		return ports.FarmerProfile{}, errs.NewUpstreamServiceError("accounts", err)
	}

	pickup, err := kernel.NewGeoPoint(payload.PickupLat, payload.PickupLng)
	if err != nil {
		return ports.FarmerProfile{}, errs.NewUpstreamServiceError("accounts", err)
	}

	return ports.FarmerProfile{
		ID:             farmerID,
		Name:           payload.Name,
		Active:         payload.Active,
		Verified:       payload.Verified,
		PickupLocation: pickup,
		PickupAddress:  payload.PickupAddress,
	}, nil
}
