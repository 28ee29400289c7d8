package vehicle

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the fleet state of a vehicle.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusAvailable means the vehicle can be claimed for a delivery.
	StatusAvailable

	// StatusInUse means the vehicle is claimed by an active delivery.
	StatusInUse

	// StatusMaintenance means the vehicle is off the road for service.
	StatusMaintenance

	// StatusOutOfService means the vehicle is retired from the fleet.
	StatusOutOfService
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:      "unknown",
		StatusAvailable:    "available",
		StatusInUse:        "in_use",
		StatusMaintenance:  "maintenance",
		StatusOutOfService: "out_of_service",
	}
}

// ParseStatus converts a status string into a Status, rejecting anything
// outside the known set.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid vehicle status", s))
}

// Validate checks that the Status belongs to the known set.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid vehicle status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid vehicle status", s))
	}
	return nil
}

// String returns the wire name of the status. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
