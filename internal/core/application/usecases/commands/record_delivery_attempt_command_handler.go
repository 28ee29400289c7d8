package commands

import (
	"context"
)

// RecordDeliveryAttemptCommandHandler appends delivery attempts to the
// tracking's attempt log. The log never moves the status machine; a failed
// final attempt is reported separately through a location update carrying
// the failed status.
type RecordDeliveryAttemptCommandHandler struct {
	uowFactory TrackingUoWFactory
}

// NewRecordDeliveryAttemptCommandHandler creates a handler for attempt logging.
func NewRecordDeliveryAttemptCommandHandler(uowFactory TrackingUoWFactory) RecordDeliveryAttemptCommandHandler {
	return RecordDeliveryAttemptCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the attempt logging command.
func (h *RecordDeliveryAttemptCommandHandler) Handle(ctx context.Context, cmd RecordDeliveryAttemptCommand) error {
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

	if err = tr.RecordAttempt(cmd.Outcome(), cmd.Reason(), cmd.NextAttempt()); err != nil {
		return err
	}

	if err = trackingRepo.Update(ctx, tr); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
