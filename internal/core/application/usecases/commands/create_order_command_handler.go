package commands

import (
	"context"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order placement.
//
// Placement reserves product stock and inserts the order in one transaction:
// when either side fails, nothing is persisted. The unit price is read from
// the product record inside that transaction, so the total a buyer is
// charged always reflects the price at placement time.
type CreateOrderCommandHandler struct {
	uowFactory OrderProductUoWFactory
	farmers    ports.FarmerDirectory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderProductUoWFactory,
	farmers ports.FarmerDirectory,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		farmers:    farmers,
		publisher:  publisher,
	}
}

// Handle processes the order placement command.
//
// Steps: authorize the requester, verify the farmer is active and verified,
// then in one transaction read the product, reserve stock, and insert the
// order. The OrderCreated event is published after commit, best-effort.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	requester := cmd.Requester()
	if !requester.IsAdmin() && !requester.ID().IsEqual(cmd.BuyerID()) {
		return errs.NewAuthorizationError(
			fmt.Sprintf("account %s may not place orders for buyer %s", requester.ID(), cmd.BuyerID()))
	}

	farmer, err := h.farmers.Get(ctx, cmd.FarmerID())
	if err != nil {
		return err
	}
	if !farmer.Active || !farmer.Verified {
		return errs.NewValueIsInvalidErrorWithCause("farmerId",
			fmt.Errorf("farmer %s is not active and verified", cmd.FarmerID()))
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	productRepo := uow.ProductRepository()
	prod, err := productRepo.Get(ctx, cmd.ProductID())
	if err != nil {
		return err
	}
	if !prod.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause("productId",
			fmt.Errorf("product %s is not active", cmd.ProductID()))
	}
	if !prod.FarmerID().IsEqual(cmd.FarmerID()) {
		return errs.NewValueIsInvalidErrorWithCause("productId",
			fmt.Errorf("product %s does not belong to farmer %s", cmd.ProductID(), cmd.FarmerID()))
	}

	if err = productRepo.ReserveStock(ctx, cmd.ProductID(), cmd.Quantity()); err != nil {
		return err
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.BuyerID(),
		cmd.FarmerID(),
		cmd.ProductID(),
		cmd.Quantity(),
		prod.Price(),
		cmd.DeliveryAddress(),
	)
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishOrderCreated(ctx, aggregate); err != nil {
		slog.Warn("publish order created failed",
			slog.String("orderId", aggregate.ID().String()), slog.Any("error", err))
	}

	return nil
}
