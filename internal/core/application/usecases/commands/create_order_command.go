package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place an order for a quantity of
// one farmer's product. The unit price is not part of the command; it is
// locked in from the product record inside the handler's transaction.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	requester       Requester
	buyerID         kernel.UUID
	farmerID        kernel.UUID
	productID       kernel.UUID
	quantity        int
	deliveryAddress string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	requester Requester,
	buyerID kernel.UUID,
	farmerID kernel.UUID,
	productID kernel.UUID,
	quantity int,
	deliveryAddress string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRequester(requester),
		cmd.setBuyerID(buyerID),
		cmd.setFarmerID(farmerID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
		cmd.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Requester returns the identity placing the order.
func (c CreateOrderCommand) Requester() Requester { return c.requester }

// BuyerID returns the purchasing buyer's identifier.
func (c CreateOrderCommand) BuyerID() kernel.UUID { return c.buyerID }

// FarmerID returns the selling farmer's identifier.
func (c CreateOrderCommand) FarmerID() kernel.UUID { return c.farmerID }

// ProductID returns the purchased product's identifier.
func (c CreateOrderCommand) ProductID() kernel.UUID { return c.productID }

// Quantity returns the number of units to purchase.
func (c CreateOrderCommand) Quantity() int { return c.quantity }

// DeliveryAddress returns the buyer-supplied destination address.
func (c CreateOrderCommand) DeliveryAddress() string { return c.deliveryAddress }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRequester(requester Requester) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyerId", err)
	}
	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setFarmerID(farmerID kernel.UUID) error {
	if err := farmerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("farmerId", err)
	}
	c.farmerID = farmerID
	return nil
}

func (c *CreateOrderCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	c.productID = productID
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	c.quantity = quantity
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	c.deliveryAddress = address
	return nil
}
