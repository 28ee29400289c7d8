package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdatePaymentStatusCommandIsNotConstructed = errors.New(
	"UpdatePaymentStatusCommand must be created via NewUpdatePaymentStatusCommand constructor",
)

// UpdatePaymentStatusCommand represents a payment status update reported for
// an order, typically relayed from the payment provider's confirmation.
type UpdatePaymentStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	requester Requester
	status    order.PaymentStatus
	method    string
	reference string

	guard guard.ConstructorGuard
}

// NewUpdatePaymentStatusCommand creates a command to record a payment update.
// Method and reference are optional and kept once set on the order.
func NewUpdatePaymentStatusCommand(
	orderID kernel.UUID,
	requester Requester,
	paymentStatus string,
	method string,
	reference string,
) (UpdatePaymentStatusCommand, error) {
	cmd := UpdatePaymentStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequester(requester),
		cmd.setStatus(paymentStatus),
	); err != nil {
		return UpdatePaymentStatusCommand{}, err
	}

	cmd.method = method
	cmd.reference = reference
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePaymentStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePaymentStatusCommandIsNotConstructed)
}

// OrderID returns the order whose payment is updated.
func (c UpdatePaymentStatusCommand) OrderID() kernel.UUID { return c.orderID }

// Requester returns the identity reporting the update.
func (c UpdatePaymentStatusCommand) Requester() Requester { return c.requester }

// Status returns the reported payment status.
func (c UpdatePaymentStatusCommand) Status() order.PaymentStatus { return c.status }

// Method returns the payment method, if reported.
func (c UpdatePaymentStatusCommand) Method() string { return c.method }

// Reference returns the external payment reference, if reported.
func (c UpdatePaymentStatusCommand) Reference() string { return c.reference }

func (c *UpdatePaymentStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdatePaymentStatusCommand) setRequester(requester Requester) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}

func (c *UpdatePaymentStatusCommand) setStatus(paymentStatus string) error {
	status, err := order.ParsePaymentStatus(paymentStatus)
	if err != nil {
		return err
	}
	c.status = status
	return nil
}
