package vehicle

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Domain errors for vehicle operations.
var (
	// ErrTypeIsRequired is returned when creating a vehicle without a type.
	ErrTypeIsRequired = errs.NewValueIsRequiredError("vehicleType")
	// ErrRegistrationIsRequired is returned when creating a vehicle without a registration plate.
	ErrRegistrationIsRequired = errs.NewValueIsRequiredError("registration")
	// ErrVehicleIsNotConstructed is returned when using an improperly initialized Vehicle.
	ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")
)

// Vehicle is one unit of the delivery fleet. A vehicle carries at most one
// active delivery at a time; claiming flips it from available to in_use and
// release returns it to the pool when the delivery reaches a terminal state.
//
// The claim itself is raced at the storage layer with a conditional update;
// the methods here express the same rules for in-memory state.
type Vehicle struct {
	id           kernel.UUID
	vehicleType  string
	registration string
	capacityKg   float64
	status       Status

	guard guard.ConstructorGuard
}

// NewVehicle registers a vehicle into the fleet in available status.
func NewVehicle(id kernel.UUID, vehicleType string, registration string, capacityKg float64) (*Vehicle, error) {
	v := &Vehicle{
		status: StatusAvailable,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setVehicleType(vehicleType),
		v.setRegistration(registration),
		v.setCapacityKg(capacityKg),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVehicle reconstructs a Vehicle aggregate from persistent storage.
func RestoreVehicle(
	id kernel.UUID,
	vehicleType string,
	registration string,
	capacityKg float64,
	status Status,
) (*Vehicle, error) {
	v := &Vehicle{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		v.setID(id),
		v.setVehicleType(vehicleType),
		v.setRegistration(registration),
		v.setCapacityKg(capacityKg),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	v.status = status
	return v, nil
}

// Validate ensures the Vehicle was created through a factory function.
func (v *Vehicle) Validate() error {
	if v == nil {
		return ErrVehicleIsNotConstructed
	}
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// IsEqual compares two vehicles by identifier.
func (v *Vehicle) IsEqual(other *Vehicle) bool {
	if other == nil {
		return false
	}
	return v.id.IsEqual(other.id)
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() kernel.UUID { return v.id }

// VehicleType returns the fleet category, e.g. "motorbike", "van", "truck".
func (v *Vehicle) VehicleType() string { return v.vehicleType }

// Registration returns the vehicle's registration plate.
func (v *Vehicle) Registration() string { return v.registration }

// CapacityKg returns the maximum cargo weight the vehicle carries.
func (v *Vehicle) CapacityKg() float64 { return v.capacityKg }

// Status returns the current fleet status.
func (v *Vehicle) Status() Status { return v.status }

// CanCarry reports whether an available vehicle qualifies for a load,
// optionally constrained to a vehicle type.
func (v *Vehicle) CanCarry(weightKg float64, vehicleType string) bool {
	if v.status != StatusAvailable {
		return false
	}
	if vehicleType != "" && v.vehicleType != vehicleType {
		return false
	}
	return v.capacityKg >= weightKg
}

// Claim takes the vehicle for a delivery. Only available vehicles can be
// claimed.
func (v *Vehicle) Claim() error {
	if v.status != StatusAvailable {
		return errs.NewConflictError(
			fmt.Sprintf("vehicle %s is %s and cannot be claimed", v.registration, v.status))
	}
	v.status = StatusInUse
	return nil
}

// Release returns a claimed vehicle to the available pool.
func (v *Vehicle) Release() error {
	if v.status != StatusInUse {
		return errs.NewConflictError(
			fmt.Sprintf("vehicle %s is %s and cannot be released", v.registration, v.status))
	}
	v.status = StatusAvailable
	return nil
}

// ChangeStatus moves the vehicle to an arbitrary fleet status. Used by fleet
// administration (maintenance, retirement), not by the allocation path.
func (v *Vehicle) ChangeStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	v.status = status
	return nil
}

func (v *Vehicle) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Vehicle) setVehicleType(vehicleType string) error {
	if vehicleType == "" {
		return ErrTypeIsRequired
	}
	v.vehicleType = vehicleType
	return nil
}

func (v *Vehicle) setRegistration(registration string) error {
	if registration == "" {
		return ErrRegistrationIsRequired
	}
	v.registration = registration
	return nil
}

func (v *Vehicle) setCapacityKg(capacityKg float64) error {
	if capacityKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"capacityKg", fmt.Errorf("capacity must be positive, got %v", capacityKg))
	}
	v.capacityKg = capacityKg
	return nil
}
