package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateTrackingCommandIsNotConstructed = errors.New(
	"CreateTrackingCommand must be created via NewCreateTrackingCommand constructor",
)

// CreateTrackingCommand represents a request to dispatch an order: create its
// tracking record, estimate the route, price the delivery, and claim a
// vehicle.
type CreateTrackingCommand struct { //nolint:recvcheck //using for validation
	trackingID  kernel.UUID
	orderID     kernel.UUID
	pickup      kernel.GeoPoint
	delivery    kernel.GeoPoint
	weightKg    float64
	priority    services.Priority
	vehicleType string

	guard guard.ConstructorGuard
}

// NewCreateTrackingCommand creates a command to dispatch an order.
// Priority defaults to normal when empty; vehicleType is optional and, when
// given, restricts the fleet candidates.
func NewCreateTrackingCommand(
	trackingID kernel.UUID,
	orderID kernel.UUID,
	pickup kernel.GeoPoint,
	delivery kernel.GeoPoint,
	weightKg float64,
	priority string,
	vehicleType string,
) (CreateTrackingCommand, error) {
	cmd := CreateTrackingCommand{
		vehicleType: vehicleType,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingID(trackingID),
		cmd.setOrderID(orderID),
		cmd.setRoute(pickup, delivery),
		cmd.setWeightKg(weightKg),
		cmd.setPriority(priority),
	); err != nil {
		return CreateTrackingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTrackingCommand) Validate() error {
	return c.guard.Validate(ErrCreateTrackingCommandIsNotConstructed)
}

// TrackingID returns the identifier for the new tracking record.
func (c CreateTrackingCommand) TrackingID() kernel.UUID { return c.trackingID }

// OrderID returns the order being dispatched.
func (c CreateTrackingCommand) OrderID() kernel.UUID { return c.orderID }

// Pickup returns the route origin.
func (c CreateTrackingCommand) Pickup() kernel.GeoPoint { return c.pickup }

// Delivery returns the route destination.
func (c CreateTrackingCommand) Delivery() kernel.GeoPoint { return c.delivery }

// WeightKg returns the cargo weight.
func (c CreateTrackingCommand) WeightKg() float64 { return c.weightKg }

// Priority returns the delivery priority.
func (c CreateTrackingCommand) Priority() services.Priority { return c.priority }

// VehicleType returns the requested vehicle type, empty when any will do.
func (c CreateTrackingCommand) VehicleType() string { return c.vehicleType }

func (c *CreateTrackingCommand) setTrackingID(trackingID kernel.UUID) error {
	if err := trackingID.Validate(); err != nil {
		return err
	}
	c.trackingID = trackingID
	return nil
}

func (c *CreateTrackingCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	c.orderID = orderID
	return nil
}

func (c *CreateTrackingCommand) setRoute(pickup kernel.GeoPoint, delivery kernel.GeoPoint) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}
	c.pickup = pickup
	c.delivery = delivery
	return nil
}

func (c *CreateTrackingCommand) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightKg",
			fmt.Errorf("%v is not greater than 0", weightKg))
	}
	c.weightKg = weightKg
	return nil
}

func (c *CreateTrackingCommand) setPriority(priority string) error {
	parsed, err := services.ParsePriority(priority)
	if err != nil {
		return err
	}
	c.priority = parsed
	return nil
}
