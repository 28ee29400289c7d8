package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/pkg/errs"
)

// RegisterVehicleCommandHandler adds vehicles to the delivery fleet.
// Registration is restricted to administrative roles.
type RegisterVehicleCommandHandler struct {
	uowFactory VehicleUoWFactory
}

// NewRegisterVehicleCommandHandler creates a handler for fleet registration.
func NewRegisterVehicleCommandHandler(uowFactory VehicleUoWFactory) RegisterVehicleCommandHandler {
	return RegisterVehicleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the fleet registration command.
func (h *RegisterVehicleCommandHandler) Handle(ctx context.Context, cmd RegisterVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Requester().IsAdmin() {
		return errs.NewAuthorizationError(
			fmt.Sprintf("account %s may not register fleet vehicles", cmd.Requester().ID()))
	}

	aggregate, err := vehicle.NewVehicle(
		cmd.VehicleID(), cmd.VehicleType(), cmd.Registration(), cmd.CapacityKg())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.VehicleRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
