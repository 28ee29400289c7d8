package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for tracking
// aggregates. At most one tracking exists per order; the storage layer
// enforces uniqueness on the order ID and surfaces a duplicate insert as a
// ConflictError.
type TrackingRepository interface {
	// Add persists a new tracking aggregate. A second tracking for the same
	// order yields ConflictError.
	Add(ctx context.Context, aggregate *tracking.Tracking) error

	// Update persists changes to an existing tracking aggregate, including
	// appended history and attempt entries.
	Update(ctx context.Context, aggregate *tracking.Tracking) error

	// GetByNumber retrieves a tracking by its public tracking number.
	// Returns ObjectNotFoundError when no such tracking exists.
	GetByNumber(ctx context.Context, trackingNumber string) (*tracking.Tracking, error)

	// GetByOrder retrieves the tracking of an order.
	// Returns ObjectNotFoundError when the order has no tracking.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error)

	// GetAllActive retrieves all trackings not yet in a terminal status.
	// Used by the ETA refresh job.
	GetAllActive(ctx context.Context) ([]*tracking.Tracking, error)
}
