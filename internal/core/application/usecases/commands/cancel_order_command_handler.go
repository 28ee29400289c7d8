package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler cancels an order and returns its reserved stock
// to the product in the same transaction. The aggregate decides whether the
// order may still be cancelled; orders already on the road or delivered are
// rejected there.
type CancelOrderCommandHandler struct {
	uowFactory OrderProductUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderProductUoWFactory,
	publisher ports.EventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
//
// A paid order keeps its payment status after cancellation; issuing refunds
// is the payment context's call, surfaced to it through the order read model.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	if err = aggregate.Cancel(cmd.Requester().ID().String(), cmd.Reason()); err != nil {
		return err
	}

	if err = uow.ProductRepository().ReleaseStock(ctx, aggregate.ProductID(), aggregate.Quantity()); err != nil {
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
