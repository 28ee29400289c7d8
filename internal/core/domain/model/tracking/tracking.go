package tracking

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrTrackingIsNotConstructed is returned when a Tracking instance was not
// created through the NewTracking or RestoreTracking factory functions.
var ErrTrackingIsNotConstructed = errors.New("Tracking must be created via NewTracking constructor")

// LocationUpdate is one append-only entry of the tracking history, recording
// where the shipment was before and after the update and any status change
// carried with it.
type LocationUpdate struct {
	PrevLocation *kernel.GeoPoint
	Location     kernel.GeoPoint
	Address      string
	PrevStatus   Status
	Status       Status
	Notes        string
	At           time.Time
}

// DeliveryAttempt is one append-only entry of the attempt log, used by
// retry scheduling outside this package.
type DeliveryAttempt struct {
	Outcome     string
	Reason      string
	NextAttempt *time.Time
	At          time.Time
}

// VehicleInfo is the snapshot of the assigned vehicle taken at allocation
// time. The snapshot stays on the tracking even if the fleet record changes
// later.
type VehicleInfo struct {
	ID           kernel.UUID
	Type         string
	Registration string
	CapacityKg   float64
}

// CostBreakdown is the delivery fee computed at dispatch time.
type CostBreakdown struct {
	BaseFee     float64
	DistanceFee float64
	WeightFee   float64
	Multiplier  float64
	Total       float64
}

// Tracking is the delivery record of one order. Exactly one tracking exists
// per order (uniqueness is enforced at the storage layer on the order ID).
//
// The aggregate owns the shipment's current location, its append-only
// location history and delivery-attempt log, the vehicle snapshot, and the
// estimated/actual delivery times. Delivered and failed are terminal.
type Tracking struct {
	id             kernel.UUID
	trackingNumber string
	orderID        kernel.UUID

	pickup   kernel.GeoPoint
	delivery kernel.GeoPoint

	currentLocation kernel.GeoPoint
	currentAddress  string
	status          Status

	history  []LocationUpdate
	attempts []DeliveryAttempt

	vehicle *VehicleInfo
	cost    *CostBreakdown

	estimatedDelivery *time.Time
	actualDelivery    *time.Time

	guard guard.ConstructorGuard
}

// NewTrackingNumber mints a human-quotable tracking number of the form
// TRK-XXXXXXXXXXXX.
func NewTrackingNumber() string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	return "TRK-" + strings.ToUpper(hex.EncodeToString(buf))
}

// NewTracking creates a tracking record in pending status, positioned at the
// pickup point. The route estimate and vehicle snapshot are attached
// afterwards via ApplyEstimate and AssignVehicle.
func NewTracking(
	id kernel.UUID,
	trackingNumber string,
	orderID kernel.UUID,
	pickup kernel.GeoPoint,
	delivery kernel.GeoPoint,
) (*Tracking, error) {
	t := &Tracking{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setTrackingNumber(trackingNumber),
		t.setOrderID(orderID),
		t.setRoute(pickup, delivery),
	); err != nil {
		return nil, err
	}

	t.currentLocation = pickup
	return t, nil
}

// RestoreTracking reconstructs a Tracking aggregate from persistent storage.
func RestoreTracking(
	id kernel.UUID,
	trackingNumber string,
	orderID kernel.UUID,
	pickup kernel.GeoPoint,
	delivery kernel.GeoPoint,
	currentLocation kernel.GeoPoint,
	currentAddress string,
	status Status,
	history []LocationUpdate,
	attempts []DeliveryAttempt,
	vehicle *VehicleInfo,
	cost *CostBreakdown,
	estimatedDelivery *time.Time,
	actualDelivery *time.Time,
) (*Tracking, error) {
	t := &Tracking{
		currentAddress:    currentAddress,
		history:           history,
		attempts:          attempts,
		vehicle:           vehicle,
		cost:              cost,
		estimatedDelivery: estimatedDelivery,
		actualDelivery:    actualDelivery,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setTrackingNumber(trackingNumber),
		t.setOrderID(orderID),
		t.setRoute(pickup, delivery),
		currentLocation.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	t.currentLocation = currentLocation
	t.status = status
	return t, nil
}

// Validate ensures the Tracking was created through a factory function.
func (t *Tracking) Validate() error {
	if t == nil {
		return ErrTrackingIsNotConstructed
	}
	return t.guard.Validate(ErrTrackingIsNotConstructed)
}

// ID returns the tracking's unique identifier.
func (t *Tracking) ID() kernel.UUID { return t.id }

// TrackingNumber returns the quotable tracking number.
func (t *Tracking) TrackingNumber() string { return t.trackingNumber }

// OrderID returns the owning order's identifier.
func (t *Tracking) OrderID() kernel.UUID { return t.orderID }

// Pickup returns the route origin.
func (t *Tracking) Pickup() kernel.GeoPoint { return t.pickup }

// Delivery returns the route destination.
func (t *Tracking) Delivery() kernel.GeoPoint { return t.delivery }

// CurrentLocation returns the last reported shipment position.
func (t *Tracking) CurrentLocation() kernel.GeoPoint { return t.currentLocation }

// CurrentAddress returns the last reported human-readable position, if any.
func (t *Tracking) CurrentAddress() string { return t.currentAddress }

// Status returns the current delivery status.
func (t *Tracking) Status() Status { return t.status }

// History returns the append-only location log, oldest first.
func (t *Tracking) History() []LocationUpdate { return t.history }

// Attempts returns the append-only delivery-attempt log, oldest first.
func (t *Tracking) Attempts() []DeliveryAttempt { return t.attempts }

// Vehicle returns the assigned vehicle snapshot, nil before assignment.
func (t *Tracking) Vehicle() *VehicleInfo { return t.vehicle }

// Cost returns the fee breakdown computed at dispatch, nil before that.
func (t *Tracking) Cost() *CostBreakdown { return t.cost }

// EstimatedDelivery returns the current ETA, nil before estimation.
func (t *Tracking) EstimatedDelivery() *time.Time { return t.estimatedDelivery }

// ActualDelivery returns when the shipment was delivered, nil before that.
func (t *Tracking) ActualDelivery() *time.Time { return t.actualDelivery }

// ApplyEstimate attaches the dispatch-time route estimate and fee breakdown.
func (t *Tracking) ApplyEstimate(estimatedDelivery time.Time, cost CostBreakdown) {
	eta := estimatedDelivery
	t.estimatedDelivery = &eta
	c := cost
	t.cost = &c
}

// RefreshEta replaces the estimated delivery time. Terminal trackings keep
// their last estimate.
func (t *Tracking) RefreshEta(estimatedDelivery time.Time) error {
	if t.status.IsTerminal() {
		return errs.NewConflictError(
			fmt.Sprintf("tracking is %s and its estimate is frozen", t.status))
	}
	eta := estimatedDelivery
	t.estimatedDelivery = &eta
	return nil
}

// AssignVehicle records the allocated vehicle snapshot.
// Reassignment over an existing snapshot is a conflict.
func (t *Tracking) AssignVehicle(info VehicleInfo) error {
	if err := info.ID.Validate(); err != nil {
		return err
	}
	if t.status.IsTerminal() {
		return errs.NewConflictError(
			fmt.Sprintf("tracking is %s and cannot take a vehicle", t.status))
	}
	if t.vehicle != nil {
		return errs.NewConflictError("tracking already has a vehicle assigned")
	}

	snapshot := info
	t.vehicle = &snapshot
	return nil
}

// UpdateLocation appends a history entry carrying the previous and new
// position (and status, when one is supplied), then advances the current
// location. A delivered status stamps the actual delivery time; the caller
// is responsible for synchronizing the owning order in the same transaction.
//
// Terminal trackings reject further updates with a ConflictError.
func (t *Tracking) UpdateLocation(
	location kernel.GeoPoint,
	address string,
	newStatus *Status,
	notes string,
) error {
	if err := location.Validate(); err != nil {
		return err
	}

	if t.status.IsTerminal() {
		return errs.NewConflictError(
			fmt.Sprintf("tracking is already %s", t.status))
	}

	status := t.status
	if newStatus != nil {
		if err := newStatus.Validate(); err != nil {
			return err
		}
		status = *newStatus
	}

	now := time.Now().UTC()
	prev := t.currentLocation
	t.history = append(t.history, LocationUpdate{
		PrevLocation: &prev,
		Location:     location,
		Address:      address,
		PrevStatus:   t.status,
		Status:       status,
		Notes:        notes,
		At:           now,
	})

	t.currentLocation = location
	t.currentAddress = address
	t.status = status

	if status == StatusDelivered {
		t.actualDelivery = &now
	}

	return nil
}

// RecordAttempt appends a delivery-attempt entry. The attempt log never
// mutates the tracking status; scheduling a retry is a concern of the
// caller.
func (t *Tracking) RecordAttempt(outcome string, reason string, nextAttempt *time.Time) error {
	if outcome == "" {
		return errs.NewValueIsRequiredError("outcome")
	}

	t.attempts = append(t.attempts, DeliveryAttempt{
		Outcome:     outcome,
		Reason:      reason,
		NextAttempt: nextAttempt,
		At:          time.Now().UTC(),
	})
	return nil
}

func (t *Tracking) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Tracking) setTrackingNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	t.trackingNumber = number
	return nil
}

func (t *Tracking) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderId", err)
	}
	t.orderID = id
	return nil
}

func (t *Tracking) setRoute(pickup kernel.GeoPoint, delivery kernel.GeoPoint) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}
	t.pickup = pickup
	t.delivery = delivery
	return nil
}
