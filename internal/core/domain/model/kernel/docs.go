// Package kernel contains the shared value objects of the fulfillment
// domain: UUID identifiers and geographic coordinates.
//
// Both types follow the validated-constructor pattern: the zero value is
// invalid, construction happens through factory functions, and Validate
// detects instances that bypassed them. Domain aggregates across the
// order, tracking, and vehicle models build on these primitives.
package kernel
