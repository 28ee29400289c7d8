package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order to a new
// fulfillment status. A Cancelled target releases the reserved stock, with
// the note recorded as the cancellation reason; CancelOrderCommand is the
// variant that makes the reason mandatory.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	requester Requester
	target    order.Status
	note      string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to change an order's status.
// The target status string is parsed against the order status set.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	requester Requester,
	targetStatus string,
	note string,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequester(requester),
		cmd.setTarget(targetStatus),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	cmd.note = note
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order to update.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Requester returns the identity requesting the change.
func (c UpdateOrderStatusCommand) Requester() Requester { return c.requester }

// Target returns the requested status.
func (c UpdateOrderStatusCommand) Target() order.Status { return c.target }

// Note returns the optional free-text note for the status history.
func (c UpdateOrderStatusCommand) Note() string { return c.note }

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setRequester(requester Requester) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}

func (c *UpdateOrderStatusCommand) setTarget(targetStatus string) error {
	target, err := order.ParseStatus(targetStatus)
	if err != nil {
		return err
	}
	c.target = target
	return nil
}
