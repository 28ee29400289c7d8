package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"
)

// AssignVehicleCommandHandler puts a chosen vehicle on a tracking. The claim
// uses the same conditional update as automatic allocation, so a vehicle
// grabbed by a concurrent dispatch surfaces as a conflict instead of a
// double assignment.
type AssignVehicleCommandHandler struct {
	uowFactory DispatchUoWFactory
}

// NewAssignVehicleCommandHandler creates a handler for manual vehicle
// assignment.
func NewAssignVehicleCommandHandler(uowFactory DispatchUoWFactory) AssignVehicleCommandHandler {
	return AssignVehicleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the manual assignment command.
func (h *AssignVehicleCommandHandler) Handle(ctx context.Context, cmd AssignVehicleCommand) error {
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

	vehicleRepo := uow.VehicleRepository()
	candidate, err := vehicleRepo.Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}

	claimed, err := vehicleRepo.ClaimAvailable(ctx, candidate.ID())
	if err != nil {
		return err
	}
	if !claimed {
		return errs.NewConflictError(
			fmt.Sprintf("vehicle %s is not available", candidate.Registration()))
	}

	if err = tr.AssignVehicle(tracking.VehicleInfo{
		ID:           candidate.ID(),
		Type:         candidate.VehicleType(),
		Registration: candidate.Registration(),
		CapacityKg:   candidate.CapacityKg(),
	}); err != nil {
		return err
	}

	if err = trackingRepo.Update(ctx, tr); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
