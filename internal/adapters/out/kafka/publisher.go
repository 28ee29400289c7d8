// Package kafka implements the event publisher port on top of
// segmentio/kafka-go. Order events and tracking events go to separate topics,
// keyed by aggregate ID so consumers see per-aggregate ordering.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"

	kafkago "github.com/segmentio/kafka-go"
)

// Publisher writes integration events to Kafka.
type Publisher struct {
	writer        *kafkago.Writer
	orderTopic    string
	trackingTopic string
}

// NewPublisher creates a Kafka publisher for the given brokers and topics.
func NewPublisher(brokers []string, orderTopic string, trackingTopic string) *Publisher {
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireOne,
		},
		orderTopic:    orderTopic,
		trackingTopic: trackingTopic,
	}
}

// Close releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

type orderEvent struct {
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	BuyerID     string    `json:"buyer_id"`
	FarmerID    string    `json:"farmer_id"`
	Status      string    `json:"status"`
	FromStatus  string    `json:"from_status,omitempty"`
	TotalAmount float64   `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type trackingEvent struct {
	EventType      string    `json:"event_type"`
	TrackingNumber string    `json:"tracking_number"`
	OrderID        string    `json:"order_id"`
	Status         string    `json:"status"`
	FromStatus     string    `json:"from_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// PublishOrderCreated emits an event for a newly placed order.
func (p *Publisher) PublishOrderCreated(ctx context.Context, aggregate *order.Order) error {
	return p.publish(ctx, p.orderTopic, aggregate.ID().String(), orderEvent{
		EventType:   "order.created",
		OrderID:     aggregate.ID().String(),
		BuyerID:     aggregate.BuyerID().String(),
		FarmerID:    aggregate.FarmerID().String(),
		Status:      aggregate.Status().String(),
		TotalAmount: aggregate.TotalAmount(),
		OccurredAt:  time.Now().UTC(),
	})
}

// PublishOrderStatusChanged emits an event for an order status change.
func (p *Publisher) PublishOrderStatusChanged(
	ctx context.Context,
	aggregate *order.Order,
	from order.Status,
	to order.Status,
) error {
	return p.publish(ctx, p.orderTopic, aggregate.ID().String(), orderEvent{
		EventType:   "order.status_changed",
		OrderID:     aggregate.ID().String(),
		BuyerID:     aggregate.BuyerID().String(),
		FarmerID:    aggregate.FarmerID().String(),
		Status:      to.String(),
		FromStatus:  from.String(),
		TotalAmount: aggregate.TotalAmount(),
		OccurredAt:  time.Now().UTC(),
	})
}

// PublishTrackingStatusChanged emits an event for a tracking status change.
func (p *Publisher) PublishTrackingStatusChanged(
	ctx context.Context,
	aggregate *tracking.Tracking,
	from tracking.Status,
	to tracking.Status,
) error {
	return p.publish(ctx, p.trackingTopic, aggregate.TrackingNumber(), trackingEvent{
		EventType:      "tracking.status_changed",
		TrackingNumber: aggregate.TrackingNumber(),
		OrderID:        aggregate.OrderID().String(),
		Status:         to.String(),
		FromStatus:     from.String(),
		OccurredAt:     time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, topic string, key string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	})
}
