package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// FarmerProfile is the slice of the seller account the fulfillment core
// needs: whether the farmer can currently take orders and where pickups
// happen.
type FarmerProfile struct {
	ID             kernel.UUID
	Name           string
	Active         bool
	Verified       bool
	PickupLocation kernel.GeoPoint
	PickupAddress  string
}

// FarmerDirectory looks up seller accounts owned by the accounts context.
// Order creation requires an active, verified farmer.
type FarmerDirectory interface {
	// Get retrieves a farmer profile by identifier.
	// Returns ObjectNotFoundError when no such farmer exists.
	Get(ctx context.Context, id kernel.UUID) (FarmerProfile, error)
}
