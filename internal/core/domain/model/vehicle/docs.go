// Package vehicle contains the delivery-fleet aggregate. A vehicle has a
// type, a registration plate, a cargo capacity in kilograms, and a fleet
// status (available, in_use, maintenance, out_of_service). Allocation claims
// an available vehicle for a delivery and release returns it to the pool.
package vehicle
