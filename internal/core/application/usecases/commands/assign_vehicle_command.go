package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignVehicleCommandIsNotConstructed = errors.New(
	"AssignVehicleCommand must be created via NewAssignVehicleCommand constructor",
)

// AssignVehicleCommand represents a manual fleet decision: put a specific
// vehicle on a tracking, bypassing best-fit selection.
type AssignVehicleCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	vehicleID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignVehicleCommand creates a command to assign a specific vehicle.
func NewAssignVehicleCommand(trackingNumber string, vehicleID kernel.UUID) (AssignVehicleCommand, error) {
	cmd := AssignVehicleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setVehicleID(vehicleID),
	); err != nil {
		return AssignVehicleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignVehicleCommand) Validate() error {
	return c.guard.Validate(ErrAssignVehicleCommandIsNotConstructed)
}

// TrackingNumber returns the tracking to assign the vehicle to.
func (c AssignVehicleCommand) TrackingNumber() string { return c.trackingNumber }

// VehicleID returns the vehicle to assign.
func (c AssignVehicleCommand) VehicleID() kernel.UUID { return c.vehicleID }

func (c *AssignVehicleCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	c.trackingNumber = trackingNumber
	return nil
}

func (c *AssignVehicleCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vehicleId", err)
	}
	c.vehicleID = vehicleID
	return nil
}
