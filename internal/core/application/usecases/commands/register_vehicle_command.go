package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterVehicleCommandIsNotConstructed = errors.New(
	"RegisterVehicleCommand must be created via NewRegisterVehicleCommand constructor",
)

// RegisterVehicleCommand represents an administrative request to add a
// vehicle to the delivery fleet.
type RegisterVehicleCommand struct { //nolint:recvcheck //using for validation
	vehicleID    kernel.UUID
	requester    Requester
	vehicleType  string
	registration string
	capacityKg   float64

	guard guard.ConstructorGuard
}

// NewRegisterVehicleCommand creates a command to register a fleet vehicle.
func NewRegisterVehicleCommand(
	vehicleID kernel.UUID,
	requester Requester,
	vehicleType string,
	registration string,
	capacityKg float64,
) (RegisterVehicleCommand, error) {
	cmd := RegisterVehicleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVehicleID(vehicleID),
		cmd.setRequester(requester),
		cmd.setVehicleType(vehicleType),
		cmd.setRegistration(registration),
		cmd.setCapacityKg(capacityKg),
	); err != nil {
		return RegisterVehicleCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterVehicleCommand) Validate() error {
	return c.guard.Validate(ErrRegisterVehicleCommandIsNotConstructed)
}

// VehicleID returns the identifier for the new vehicle.
func (c RegisterVehicleCommand) VehicleID() kernel.UUID { return c.vehicleID }

// Requester returns the identity registering the vehicle.
func (c RegisterVehicleCommand) Requester() Requester { return c.requester }

// VehicleType returns the fleet category.
func (c RegisterVehicleCommand) VehicleType() string { return c.vehicleType }

// Registration returns the registration plate.
func (c RegisterVehicleCommand) Registration() string { return c.registration }

// CapacityKg returns the cargo capacity.
func (c RegisterVehicleCommand) CapacityKg() float64 { return c.capacityKg }

func (c *RegisterVehicleCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	c.vehicleID = vehicleID
	return nil
}

func (c *RegisterVehicleCommand) setRequester(requester Requester) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}

func (c *RegisterVehicleCommand) setVehicleType(vehicleType string) error {
	if vehicleType == "" {
		return errs.NewValueIsRequiredError("vehicleType")
	}
	c.vehicleType = vehicleType
	return nil
}

func (c *RegisterVehicleCommand) setRegistration(registration string) error {
	if registration == "" {
		return errs.NewValueIsRequiredError("registration")
	}
	c.registration = registration
	return nil
}

func (c *RegisterVehicleCommand) setCapacityKg(capacityKg float64) error {
	if capacityKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacityKg",
			fmt.Errorf("%v is not greater than 0", capacityKg))
	}
	c.capacityKg = capacityKg
	return nil
}
