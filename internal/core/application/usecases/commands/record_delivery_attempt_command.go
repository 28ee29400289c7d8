package commands

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRecordDeliveryAttemptCommandIsNotConstructed = errors.New(
	"RecordDeliveryAttemptCommand must be created via NewRecordDeliveryAttemptCommand constructor",
)

// Recognized delivery attempt outcomes.
const (
	AttemptDelivered = "delivered"
	AttemptFailed    = "failed"
)

// RecordDeliveryAttemptCommand represents a courier's report of one delivery
// attempt, successful or not, with an optional retry time.
type RecordDeliveryAttemptCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	outcome        string
	reason         string
	nextAttempt    *time.Time

	guard guard.ConstructorGuard
}

// NewRecordDeliveryAttemptCommand creates a command to log a delivery
// attempt.
func NewRecordDeliveryAttemptCommand(
	trackingNumber string,
	outcome string,
	reason string,
	nextAttempt *time.Time,
) (RecordDeliveryAttemptCommand, error) {
	cmd := RecordDeliveryAttemptCommand{
		reason:      reason,
		nextAttempt: nextAttempt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setOutcome(outcome),
	); err != nil {
		return RecordDeliveryAttemptCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordDeliveryAttemptCommand) Validate() error {
	return c.guard.Validate(ErrRecordDeliveryAttemptCommandIsNotConstructed)
}

// TrackingNumber returns the tracking the attempt belongs to.
func (c RecordDeliveryAttemptCommand) TrackingNumber() string { return c.trackingNumber }

// Outcome returns the attempt outcome.
func (c RecordDeliveryAttemptCommand) Outcome() string { return c.outcome }

// Reason returns the failure reason, if any.
func (c RecordDeliveryAttemptCommand) Reason() string { return c.reason }

// NextAttempt returns the scheduled retry time, nil when none is planned.
func (c RecordDeliveryAttemptCommand) NextAttempt() *time.Time { return c.nextAttempt }

func (c *RecordDeliveryAttemptCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	c.trackingNumber = trackingNumber
	return nil
}

func (c *RecordDeliveryAttemptCommand) setOutcome(outcome string) error {
	if outcome != AttemptDelivered && outcome != AttemptFailed {
		return errs.NewValueIsInvalidErrorWithCause("outcome",
			fmt.Errorf("%q is not a valid attempt outcome", outcome))
	}
	c.outcome = outcome
	return nil
}
