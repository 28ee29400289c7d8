package tracking

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the delivery state of a tracking record.
//
// The set is closed: caller-supplied status strings outside it are rejected
// at parse time rather than stored verbatim. Delivered and Failed are
// terminal; a tracking in either state accepts no further updates.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is the initial state after dispatch is created.
	StatusPending

	// StatusPickedUp indicates the shipment left the pickup point.
	StatusPickedUp

	// StatusInTransit indicates the shipment is moving toward the buyer.
	StatusInTransit

	// StatusOutForDelivery indicates the shipment is on its final leg.
	StatusOutForDelivery

	// StatusDelivered indicates the shipment reached the buyer. Terminal.
	StatusDelivered

	// StatusFailed indicates delivery could not be completed. Terminal.
	StatusFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:        "unknown",
		StatusPending:        "pending",
		StatusPickedUp:       "picked_up",
		StatusInTransit:      "in_transit",
		StatusOutForDelivery: "out_for_delivery",
		StatusDelivered:      "delivered",
		StatusFailed:         "failed",
	}
}

// ParseStatus converts a caller-supplied status string into a Status,
// rejecting anything outside the closed set.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid tracking status", s))
}

// Validate checks that the Status belongs to the closed set.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid tracking status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid tracking status", s))
	}
	return nil
}

// String returns the wire name of the status (snake_case).
// Implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further updates.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusFailed
}
