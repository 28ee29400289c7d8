// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the route planner, the
// farmer directory, and the event publisher. These interfaces enable
// dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate, including its
	// appended status history.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByBuyer retrieves a buyer's orders, newest first.
	GetAllByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*order.Order, error)
}
