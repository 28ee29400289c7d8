package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// UpdatePaymentStatusCommandHandler records payment updates on orders.
// A settled payment on a pending order auto-advances it to confirmed; when
// that happens the status change event is published like any other.
type UpdatePaymentStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdatePaymentStatusCommandHandler creates a handler for payment updates.
func NewUpdatePaymentStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) UpdatePaymentStatusCommandHandler {
	return UpdatePaymentStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the payment update command.
func (h *UpdatePaymentStatusCommandHandler) Handle(ctx context.Context, cmd UpdatePaymentStatusCommand) error {
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
	if err = aggregate.ApplyPayment(cmd.Status(), cmd.Method(), cmd.Reference()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if to := aggregate.Status(); to != from {
		if err = h.publisher.PublishOrderStatusChanged(ctx, aggregate, from, to); err != nil {
			slog.Warn("publish order status changed failed",
				slog.String("orderId", aggregate.ID().String()), slog.Any("error", err))
		}
	}

	return nil
}
