package services

import (
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/pkg/errs"
)

// ErrNoVehicleAvailable is returned when no vehicle in the candidate set can
// carry the requested load.
var ErrNoVehicleAvailable = errs.NewResourceExhaustedError("no vehicle available")

// VehicleSelector is a domain service that picks the vehicle for a delivery
// using best-fit: among available vehicles whose capacity covers the load
// (and whose type matches, when one is requested), the one with the smallest
// qualifying capacity wins. Ties keep the earlier candidate.
//
// The selector only ranks; claiming the winner against concurrent
// allocations is the storage layer's job.
type VehicleSelector struct{}

// NewVehicleSelector creates a new VehicleSelector instance.
func NewVehicleSelector() VehicleSelector {
	return VehicleSelector{}
}

// SelectBestFit ranks candidates by ascending qualifying capacity.
// It returns every qualifying vehicle so callers can walk the list when a
// claim is lost to a concurrent allocation.
func (s VehicleSelector) SelectBestFit(
	candidates []*vehicle.Vehicle,
	weightKg float64,
	vehicleType string,
) ([]*vehicle.Vehicle, error) {
	var qualifying []*vehicle.Vehicle
	for _, v := range candidates {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if v.CanCarry(weightKg, vehicleType) {
			qualifying = append(qualifying, v)
		}
	}

	if len(qualifying) == 0 {
		return nil, ErrNoVehicleAvailable
	}

	// Insertion sort keeps input order among equal capacities.
	for i := 1; i < len(qualifying); i++ {
		for j := i; j > 0 && qualifying[j].CapacityKg() < qualifying[j-1].CapacityKg(); j-- {
			qualifying[j], qualifying[j-1] = qualifying[j-1], qualifying[j]
		}
	}

	return qualifying, nil
}
