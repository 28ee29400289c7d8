package accounts

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// PermissiveDirectory treats every farmer as active and verified. Used when
// no accounts service is configured, typically in local development.
type PermissiveDirectory struct{}

// NewPermissiveDirectory creates a directory that accepts every farmer.
func NewPermissiveDirectory() PermissiveDirectory {
	return PermissiveDirectory{}
}

// Get returns an active, verified profile for the requested identifier.
func (PermissiveDirectory) Get(_ context.Context, id kernel.UUID) (ports.FarmerProfile, error) {
	return ports.FarmerProfile{
		ID:       id,
		Active:   true,
		Verified: true,
	}, nil
}
