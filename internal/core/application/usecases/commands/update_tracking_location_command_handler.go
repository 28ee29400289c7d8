package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
)

// UpdateTrackingLocationCommandHandler records shipment progress.
//
// A delivered status couples two aggregates inside one transaction: the
// tracking stamps its actual delivery time and the owning order advances
// in-transit to delivered. When the order cannot make that move, the whole
// update rolls back. Reaching a terminal status also releases the claimed
// vehicle back to the fleet.
type UpdateTrackingLocationCommandHandler struct {
	uowFactory DispatchUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateTrackingLocationCommandHandler creates a handler for tracking
// location updates.
func NewUpdateTrackingLocationCommandHandler(
	uowFactory DispatchUoWFactory,
	publisher ports.EventPublisher,
) UpdateTrackingLocationCommandHandler {
	return UpdateTrackingLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the location update command.
func (h *UpdateTrackingLocationCommandHandler) Handle(ctx context.Context, cmd UpdateTrackingLocationCommand) error {
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

	trackingRepo := uow.TrackingRepository()
	tr, err := trackingRepo.GetByNumber(ctx, cmd.TrackingNumber())
	if err != nil {
		return err
	}

	from := tr.Status()
	if err = tr.UpdateLocation(cmd.Location(), cmd.Address(), cmd.Status(), cmd.Notes()); err != nil {
		return err
	}

	if tr.Status() == tracking.StatusDelivered {
		if err = h.syncDeliveredOrder(ctx, uow, tr); err != nil {
			return err
		}
	}

	if tr.Status().IsTerminal() && tr.Vehicle() != nil {
		if err = uow.VehicleRepository().Release(ctx, tr.Vehicle().ID); err != nil {
			return err
		}
	}

	if err = trackingRepo.Update(ctx, tr); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if to := tr.Status(); to != from {
		if err = h.publisher.PublishTrackingStatusChanged(ctx, tr, from, to); err != nil {
			slog.Warn("publish tracking status changed failed",
				slog.String("trackingNumber", tr.TrackingNumber()), slog.Any("error", err))
		}
	}

	return nil
}

// syncDeliveredOrder advances the owning order in-transit to delivered.
// Any other order state makes the transition, and with it the whole update,
// fail.
func (h *UpdateTrackingLocationCommandHandler) syncDeliveredOrder(
	ctx context.Context,
	uow DispatchUoW,
	tr *tracking.Tracking,
) error {
	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, tr.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ChangeStatus(order.StatusDelivered, "system", "confirmed by tracking "+tr.TrackingNumber()); err != nil {
		return err
	}

	return orderRepo.Update(ctx, aggregate)
}
