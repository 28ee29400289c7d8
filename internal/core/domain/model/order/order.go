package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory functions.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// StatusChange is an append-only record of one order status transition.
type StatusChange struct {
	From      Status
	To        Status
	ChangedBy string
	Note      string
	At        time.Time
}

// Order represents a buyer's purchase of a quantity of one farmer's product.
// It is the aggregate root of the order ledger and owns both the fulfillment
// status machine and the payment status.
//
// Invariants:
//   - totalAmount always equals quantity × unitPrice rounded to cents;
//     it is recomputed whenever quantity or unit price is set
//   - status transitions follow the table on Status; terminal orders
//     reject every mutation
//   - statusHistory is append-only
//   - orders are never deleted; cancellation is a terminal status
type Order struct {
	id          kernel.UUID
	buyerID     kernel.UUID
	farmerID    kernel.UUID
	productID   kernel.UUID
	quantity    int
	unitPrice   float64
	totalAmount float64

	status        Status
	paymentStatus PaymentStatus
	paymentMethod string
	paymentRef    string

	deliveryAddress string
	statusHistory   []StatusChange

	deliveryDate *time.Time
	completedAt  *time.Time
	cancelledAt  *time.Time
	cancelReason string

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status with payment Pending.
//
// Parameters:
//   - id, buyerID, farmerID, productID: valid UUIDs
//   - quantity: units purchased (must be positive)
//   - unitPrice: price per unit at order time (must not be negative)
//   - deliveryAddress: destination address (must be non-empty)
//
// The total amount is computed from quantity and unit price; callers never
// supply it.
func NewOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	farmerID kernel.UUID,
	productID kernel.UUID,
	quantity int,
	unitPrice float64,
	deliveryAddress string,
) (*Order, error) {
	o := &Order{
		status:        StatusPending,
		paymentStatus: PaymentPending,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setFarmerID(farmerID),
		o.setProductID(productID),
		o.setQuantity(quantity),
		o.setUnitPrice(unitPrice),
		o.setDeliveryAddress(deliveryAddress),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it accepts the full persisted state, including history and
// lifecycle timestamps, and re-derives the total amount to preserve the
// pricing invariant.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	farmerID kernel.UUID,
	productID kernel.UUID,
	quantity int,
	unitPrice float64,
	deliveryAddress string,
	status Status,
	paymentStatus PaymentStatus,
	paymentMethod string,
	paymentRef string,
	statusHistory []StatusChange,
	deliveryDate *time.Time,
	completedAt *time.Time,
	cancelledAt *time.Time,
	cancelReason string,
) (*Order, error) {
	o := &Order{
		paymentMethod: paymentMethod,
		paymentRef:    paymentRef,
		statusHistory: statusHistory,
		deliveryDate:  deliveryDate,
		completedAt:   completedAt,
		cancelledAt:   cancelledAt,
		cancelReason:  cancelReason,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setFarmerID(farmerID),
		o.setProductID(productID),
		o.setQuantity(quantity),
		o.setUnitPrice(unitPrice),
		o.setDeliveryAddress(deliveryAddress),
		status.Validate(),
		paymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.paymentStatus = paymentStatus
	return o, nil
}

// Validate ensures the Order was created through a factory function.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// BuyerID returns the purchasing buyer's identifier.
func (o *Order) BuyerID() kernel.UUID { return o.buyerID }

// FarmerID returns the selling farmer's identifier.
func (o *Order) FarmerID() kernel.UUID { return o.farmerID }

// ProductID returns the purchased product's identifier.
func (o *Order) ProductID() kernel.UUID { return o.productID }

// Quantity returns the number of units purchased.
func (o *Order) Quantity() int { return o.quantity }

// UnitPrice returns the per-unit price locked in at order time.
func (o *Order) UnitPrice() float64 { return o.unitPrice }

// TotalAmount returns quantity × unitPrice rounded to cents.
func (o *Order) TotalAmount() float64 { return o.totalAmount }

// Status returns the current fulfillment status.
func (o *Order) Status() Status { return o.status }

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// PaymentMethod returns the recorded payment method, if any.
func (o *Order) PaymentMethod() string { return o.paymentMethod }

// PaymentReference returns the external payment reference, if any.
func (o *Order) PaymentReference() string { return o.paymentRef }

// DeliveryAddress returns the buyer-supplied destination address.
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }

// StatusHistory returns the append-only transition log, oldest first.
func (o *Order) StatusHistory() []StatusChange { return o.statusHistory }

// DeliveryDate returns when the order was delivered, nil before that.
func (o *Order) DeliveryDate() *time.Time { return o.deliveryDate }

// CompletedAt returns when the buyer confirmed receipt, nil before that.
func (o *Order) CompletedAt() *time.Time { return o.completedAt }

// CancelledAt returns when the order was cancelled, nil otherwise.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// CancelReason returns the recorded cancellation reason, if any.
func (o *Order) CancelReason() string { return o.cancelReason }

// IsOwnedBy reports whether the given account is the order's buyer or farmer.
// Used by authorization checks alongside the admin role.
func (o *Order) IsOwnedBy(accountID kernel.UUID) bool {
	return o.buyerID.IsEqual(accountID) || o.farmerID.IsEqual(accountID)
}

// ChangeStatus moves the order to a new status following the transition
// table, stamping lifecycle timestamps and appending a history entry.
//
// Side effects by target status:
//   - StatusDelivered: stamps the delivery date
//   - StatusCompleted: stamps the completion time
//   - StatusCancelled: stamps the cancellation time (see Cancel for the
//     reason-carrying variant)
//
// Returns a ConflictError for any move outside the table or on a terminal
// order. Inventory release on cancellation is the caller's responsibility:
// the aggregate does not reach into product stock.
func (o *Order) ChangeStatus(to Status, changedBy string, note string) error {
	newStatus, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	switch newStatus {
	case StatusDelivered:
		o.deliveryDate = &now
	case StatusCompleted:
		o.completedAt = &now
	case StatusCancelled:
		o.cancelledAt = &now
	}

	o.statusHistory = append(o.statusHistory, StatusChange{
		From:      o.status,
		To:        newStatus,
		ChangedBy: changedBy,
		Note:      note,
		At:        now,
	})
	o.status = newStatus
	return nil
}

// Cancel moves the order to Cancelled and records the reason.
// Only Pending and Confirmed orders may be cancelled; orders already on the
// road or delivered report a conflict naming their state.
func (o *Order) Cancel(changedBy string, reason string) error {
	switch o.status {
	case StatusInTransit:
		return errs.NewConflictError("order is in transit and can no longer be cancelled")
	case StatusDelivered:
		return errs.NewConflictError("order is already delivered and cannot be cancelled")
	}

	if err := o.ChangeStatus(StatusCancelled, changedBy, reason); err != nil {
		return err
	}

	o.cancelReason = reason
	return nil
}

// ApplyPayment records a payment status update with optional method and
// reference. When the payment settles (Paid) while the order is still
// Pending, the order auto-advances to Confirmed; this is the single coupling
// point between the payment and fulfillment state machines.
func (o *Order) ApplyPayment(status PaymentStatus, method string, reference string) error {
	if err := status.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return errs.NewConflictError(
			fmt.Sprintf("order is in terminal status %s and cannot change", o.status))
	}

	o.paymentStatus = status
	if method != "" {
		o.paymentMethod = method
	}
	if reference != "" {
		o.paymentRef = reference
	}

	if status == PaymentPaid && o.status == StatusPending {
		return o.ChangeStatus(StatusConfirmed, "system", "payment confirmed")
	}

	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyerId", err)
	}
	o.buyerID = id
	return nil
}

func (o *Order) setFarmerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("farmerId", err)
	}
	o.farmerID = id
	return nil
}

func (o *Order) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	o.productID = id
	return nil
}

// setQuantity validates the quantity and recomputes the total amount.
func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	o.recomputeTotal()
	return nil
}

// setUnitPrice validates the unit price and recomputes the total amount.
func (o *Order) setUnitPrice(price float64) error {
	if price < 0 || math.IsNaN(price) {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%v is negative", price))
	}
	o.unitPrice = price
	o.recomputeTotal()
	return nil
}

func (o *Order) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	return nil
}

// recomputeTotal maintains the totalAmount invariant: quantity × unitPrice
// rounded to cents.
func (o *Order) recomputeTotal() {
	o.totalAmount = math.Round(float64(o.quantity)*o.unitPrice*100) / 100
}
