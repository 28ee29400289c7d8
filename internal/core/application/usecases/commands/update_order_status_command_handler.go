package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// UpdateOrderStatusCommandHandler moves an order along its status machine.
// The transition table on the order aggregate decides legality; the handler
// adds authorization, transaction control, and the stock release that a
// cancellation carries.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderProductUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status changes.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderProductUoWFactory,
	publisher ports.EventPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the status change command. A Cancelled target releases
// the reserved stock in the same transaction as the status change.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = cmd.Requester().AuthorizeOrderAccess(aggregate); err != nil {
		return err
	}

	from := aggregate.Status()
	if cmd.Target() == order.StatusCancelled {
		if err = aggregate.Cancel(cmd.Requester().ID().String(), cmd.Note()); err != nil {
			return err
		}
		if err = uow.ProductRepository().ReleaseStock(
			ctx, aggregate.ProductID(), aggregate.Quantity()); err != nil {
			return err
		}
	} else if err = aggregate.ChangeStatus(
		cmd.Target(), cmd.Requester().ID().String(), cmd.Note()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishOrderStatusChanged(ctx, aggregate, from, aggregate.Status()); err != nil {
		slog.Warn("publish order status changed failed",
			slog.String("orderId", aggregate.ID().String()), slog.Any("error", err))
	}

	return nil
}
