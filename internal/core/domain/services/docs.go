// Package services provides pure domain services for the logistics core:
// the delivery cost calculator, the best-fit vehicle selector, and the
// nearest-neighbor stop ordering used by multi-stop route planning.
//
// Domain services coordinate between aggregates, implementing business logic
// that doesn't naturally belong to a single aggregate root.
package services
