package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateTrackingLocationCommandIsNotConstructed = errors.New(
	"UpdateTrackingLocationCommand must be created via NewUpdateTrackingLocationCommand constructor",
)

// UpdateTrackingLocationCommand represents a courier-side progress report: a
// new shipment position, optionally carrying a status change, an address,
// and free-text notes.
type UpdateTrackingLocationCommand struct { //nolint:recvcheck //using for validation
	trackingNumber string
	location       kernel.GeoPoint
	address        string
	status         *tracking.Status
	notes          string

	guard guard.ConstructorGuard
}

// NewUpdateTrackingLocationCommand creates a command to record a location
// update. An empty status string means the status stays as it is; anything
// else must parse against the closed tracking status set.
func NewUpdateTrackingLocationCommand(
	trackingNumber string,
	location kernel.GeoPoint,
	address string,
	status string,
	notes string,
) (UpdateTrackingLocationCommand, error) {
	cmd := UpdateTrackingLocationCommand{
		address: address,
		notes:   notes,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingNumber(trackingNumber),
		cmd.setLocation(location),
		cmd.setStatus(status),
	); err != nil {
		return UpdateTrackingLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTrackingLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingLocationCommandIsNotConstructed)
}

// TrackingNumber returns the tracking to update.
func (c UpdateTrackingLocationCommand) TrackingNumber() string { return c.trackingNumber }

// Location returns the reported shipment position.
func (c UpdateTrackingLocationCommand) Location() kernel.GeoPoint { return c.location }

// Address returns the reported human-readable position, if any.
func (c UpdateTrackingLocationCommand) Address() string { return c.address }

// Status returns the carried status change, nil when the status is kept.
func (c UpdateTrackingLocationCommand) Status() *tracking.Status { return c.status }

// Notes returns the free-text notes, if any.
func (c UpdateTrackingLocationCommand) Notes() string { return c.notes }

func (c *UpdateTrackingLocationCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	c.trackingNumber = trackingNumber
	return nil
}

func (c *UpdateTrackingLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *UpdateTrackingLocationCommand) setStatus(status string) error {
	if status == "" {
		return nil
	}
	parsed, err := tracking.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = &parsed
	return nil
}
