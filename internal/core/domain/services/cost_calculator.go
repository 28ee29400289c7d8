package services

import (
	"fmt"
	"math"

	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"
)

// Delivery fee schedule.
const (
	baseFee        = 200.0
	perKmFee       = 15.0
	perExcessKgFee = 5.0
	freeWeightKg   = 10.0
)

// Priority is the delivery urgency chosen by the buyer. It only affects the
// fee multiplier.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// PriorityLow is discounted, slowest handling.
	PriorityLow

	// PriorityNormal is the default handling.
	PriorityNormal

	// PriorityHigh is expedited handling.
	PriorityHigh

	// PriorityUrgent is same-day handling at double rate.
	PriorityUrgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "unknown",
		PriorityLow:     "low",
		PriorityNormal:  "normal",
		PriorityHigh:    "high",
		PriorityUrgent:  "urgent",
	}
}

// ParsePriority converts a caller-supplied priority string into a Priority,
// rejecting anything outside the known set. An empty string means the caller
// did not choose and maps to normal.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityNormal, nil
	}
	for priority, str := range getPriorityStrings() {
		if str == s && priority != PriorityUnknown {
			return priority, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause(
		"priority", fmt.Errorf("%q is not a valid priority", s))
}

// String returns the wire name of the priority. Implements fmt.Stringer.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Multiplier returns the fee multiplier for the priority. Values outside the
// known set price as normal.
func (p Priority) Multiplier() float64 {
	switch p {
	case PriorityUrgent:
		return 2.0
	case PriorityHigh:
		return 1.5
	case PriorityLow:
		return 0.8
	default:
		return 1.0
	}
}

// CostCalculator computes the delivery fee from the route distance, the cargo
// weight, and the delivery priority.
//
// The schedule is a flat base fee, a per-kilometer distance fee, a weight fee
// on every kilogram above the free allowance, and a priority multiplier over
// the sum. The total is rounded to the nearest whole currency unit.
type CostCalculator struct{}

// NewCostCalculator creates a new CostCalculator instance.
func NewCostCalculator() CostCalculator {
	return CostCalculator{}
}

// Calculate returns the fee breakdown for a delivery.
func (c CostCalculator) Calculate(distanceKm float64, weightKg float64, priority Priority) tracking.CostBreakdown {
	distanceFee := distanceKm * perKmFee
	weightFee := math.Max(0, weightKg-freeWeightKg) * perExcessKgFee
	multiplier := priority.Multiplier()

	return tracking.CostBreakdown{
		BaseFee:     baseFee,
		DistanceFee: distanceFee,
		WeightFee:   weightFee,
		Multiplier:  multiplier,
		Total:       math.Round((baseFee + distanceFee + weightFee) * multiplier),
	}
}
