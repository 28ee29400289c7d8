package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"
)

// VehicleRepository defines the persistence contract for the delivery fleet.
type VehicleRepository interface {
	// Add persists a newly registered vehicle.
	Add(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Update persists changes to an existing vehicle.
	Update(ctx context.Context, aggregate *vehicle.Vehicle) error

	// Get retrieves a vehicle by its unique identifier.
	// Returns ObjectNotFoundError when no such vehicle exists.
	Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error)

	// GetAllAvailable retrieves every vehicle currently in available status.
	GetAllAvailable(ctx context.Context) ([]*vehicle.Vehicle, error)

	// ClaimAvailable atomically flips the vehicle from available to in_use
	// with a conditional update. It reports false without error when the
	// vehicle was already claimed by a concurrent allocation, letting the
	// caller move on to the next candidate.
	ClaimAvailable(ctx context.Context, id kernel.UUID) (bool, error)

	// Release returns a claimed vehicle to available status.
	Release(ctx context.Context, id kernel.UUID) error
}
