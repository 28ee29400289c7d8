package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAvailableVehiclesQueryIsNotConstructed = errors.New(
	"GetAvailableVehiclesQuery must be created via NewGetAvailableVehiclesQuery constructor",
)

// GetAvailableVehiclesQuery retrieves the fleet vehicles currently free for
// dispatch, smallest capacity first. Used by the fleet dashboard and by
// operators making manual assignments.
type GetAvailableVehiclesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableVehiclesQuery creates a query for the available fleet.
// This is a parameterless query.
func NewGetAvailableVehiclesQuery() GetAvailableVehiclesQuery {
	return GetAvailableVehiclesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableVehiclesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableVehiclesQueryIsNotConstructed)
}

// GetAvailableVehiclesQueryResponse is the flat read model of one available
// vehicle.
type GetAvailableVehiclesQueryResponse struct {
	ID           kernel.UUID
	VehicleType  string
	Registration string
	CapacityKg   float64
}
