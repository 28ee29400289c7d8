package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for the product
// inventory subset the fulfillment core owns: available quantity and the
// derived stock tier.
type ProductRepository interface {
	// Get retrieves a product by its unique identifier.
	// Returns ObjectNotFoundError when no such product exists.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// ReserveStock atomically decrements the available quantity by amount and
	// recomputes the stock tier in a single conditional statement. A missing
	// product yields ObjectNotFoundError; insufficient stock yields
	// ResourceExhaustedError carrying the available amount. Run inside the
	// surrounding transaction so the reservation commits or rolls back with
	// the order insert.
	ReserveStock(ctx context.Context, productID kernel.UUID, amount int) error

	// ReleaseStock increments the available quantity by amount and recomputes
	// the stock tier. Not idempotent: callers must invoke it exactly once per
	// released reservation.
	ReleaseStock(ctx context.Context, productID kernel.UUID, amount int) error
}
