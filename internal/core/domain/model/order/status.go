package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a fixed transition table so orders
// follow the marketplace fulfillment workflow.
//
// State transitions:
//
//	Pending ──┬──> Confirmed ──┬──> InTransit ──> Delivered ──> Completed
//	          │                │
//	          └──> Cancelled <─┘
//
// Completed and Cancelled are terminal: no further transitions are allowed
// and any mutating operation on an order in one of these states fails.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status of a freshly created order,
	// awaiting payment or farmer confirmation.
	StatusPending

	// StatusConfirmed indicates the order is accepted and awaiting dispatch.
	StatusConfirmed

	// StatusInTransit indicates the shipment has left the farmer and is
	// being delivered.
	StatusInTransit

	// StatusDelivered indicates the shipment reached the buyer.
	StatusDelivered

	// StatusCompleted indicates the buyer confirmed receipt. Terminal.
	StatusCompleted

	// StatusCancelled indicates the order was cancelled before dispatch.
	// Terminal; cancellation is a status, never physical deletion.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "Pending",
		StatusConfirmed: "Confirmed",
		StatusInTransit: "InTransit",
		StatusDelivered: "Delivered",
		StatusCompleted: "Completed",
		StatusCancelled: "Cancelled",
	}
}

// allowedTransitions is the closed transition table of the order ledger.
// Any pair not listed here is a conflict.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusConfirmed, StatusCancelled},
		StatusConfirmed: {StatusInTransit, StatusCancelled},
		StatusInTransit: {StatusDelivered},
		StatusDelivered: {StatusCompleted},
		StatusCompleted: {},
		StatusCancelled: {},
	}
}

// ParseStatus converts an external status string to a Status.
// Unrecognized values are rejected with a validation error.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks that the Status is one of the defined workflow states.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer; safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the transition table allows moving to the
// target status.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range allowedTransitions()[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo validates the move to the target status and returns it.
//
// Returns:
//   - (to, nil) when the transition table allows the move
//   - (0, ConflictError) for a terminal current status or a pair outside
//     the table
func (s Status) TransitionTo(to Status) (Status, error) {
	if err := to.Validate(); err != nil {
		return 0, err
	}

	if s.IsTerminal() {
		return 0, errs.NewConflictError(
			fmt.Sprintf("order is in terminal status %s and cannot change", s))
	}

	if !s.CanTransitionTo(to) {
		return 0, errs.NewConflictError(
			fmt.Sprintf("cannot transition order from %s to %s", s, to))
	}

	return to, nil
}
