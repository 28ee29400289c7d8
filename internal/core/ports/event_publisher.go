package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
)

// EventPublisher emits integration events after a command commits. The
// notification consumers (buyer/farmer messaging) live outside this service.
//
// Publishing is best-effort: handlers log a failed publish but never roll
// back the committed transaction because of it.
type EventPublisher interface {
	// PublishOrderCreated emits an event for a newly placed order.
	PublishOrderCreated(ctx context.Context, aggregate *order.Order) error

	// PublishOrderStatusChanged emits an event for an order status change.
	PublishOrderStatusChanged(ctx context.Context, aggregate *order.Order,
		from order.Status, to order.Status) error

	// PublishTrackingStatusChanged emits an event for a tracking status change.
	PublishTrackingStatusChanged(ctx context.Context, aggregate *tracking.Tracking,
		from tracking.Status, to tracking.Status) error
}
