package kafka

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
)

// NoopPublisher discards every event. Used when no broker is configured,
// typically in local development.
type NoopPublisher struct{}

// NewNoopPublisher creates a publisher that discards events.
func NewNoopPublisher() NoopPublisher {
	return NoopPublisher{}
}

// PublishOrderCreated discards the event.
func (NoopPublisher) PublishOrderCreated(_ context.Context, _ *order.Order) error {
	return nil
}

// PublishOrderStatusChanged discards the event.
func (NoopPublisher) PublishOrderStatusChanged(
	_ context.Context, _ *order.Order, _ order.Status, _ order.Status,
) error {
	return nil
}

// PublishTrackingStatusChanged discards the event.
func (NoopPublisher) PublishTrackingStatusChanged(
	_ context.Context, _ *tracking.Tracking, _ tracking.Status, _ tracking.Status,
) error {
	return nil
}
