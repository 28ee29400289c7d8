// Package vehiclerepo persists the delivery fleet. Vehicle allocation relies
// on a conditional status flip so two concurrent dispatches can never claim
// the same vehicle.
package vehiclerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

// VehicleDTO represents the database structure for fleet vehicles.
type VehicleDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	VehicleType  string
	Registration string `gorm:"uniqueIndex"`
	CapacityKg   float64
	Status       string `gorm:"index"`
}

// TableName specifies the database table name for vehicle entities.
func (VehicleDTO) TableName() string {
	return "vehicles"
}

// fromDomain converts a vehicle aggregate to its database representation.
func fromDomain(aggregate *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:           aggregate.ID().Bytes(),
		VehicleType:  aggregate.VehicleType(),
		Registration: aggregate.Registration(),
		CapacityKg:   aggregate.CapacityKg(),
		Status:       aggregate.Status().String(),
	}
}

// toDomain converts a database row to a vehicle aggregate using
// RestoreVehicle.
func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := vehicle.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(id, dto.VehicleType, dto.Registration, dto.CapacityKg, status)
}
