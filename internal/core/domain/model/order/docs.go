// Package order contains the order aggregate of the fulfillment ledger.
//
// An order is a buyer's purchase of a quantity of one farmer's product at a
// locked-in unit price. The aggregate owns two coupled state machines: the
// fulfillment Status (Pending through Completed, with Cancelled as the
// early-exit terminal) and the PaymentStatus. A payment settling while the
// order is Pending promotes it to Confirmed.
//
// Orders are never physically deleted. Cancellation is a terminal status
// with a recorded reason and timestamp, and every transition is appended to
// an immutable status history.
package order
