// Package tracking contains the delivery-tracking aggregate: exactly one
// record per order, carrying the shipment's current location, its
// append-only location history and delivery-attempt log, the assigned
// vehicle snapshot, and the estimated/actual delivery times.
//
// Status values form a closed set (pending, picked_up, in_transit,
// out_for_delivery, delivered, failed); unrecognized caller strings are
// rejected at the edge. Delivered and failed are terminal. Reaching
// delivered stamps the actual delivery time; the owning order is advanced
// to Delivered by the application layer inside the same transaction.
package tracking
