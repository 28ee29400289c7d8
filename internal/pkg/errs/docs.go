// Package errs provides standardized error types for the fulfillment
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the application.
//
// The package covers the error taxonomy of the order/logistics core:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed or out-of-range input (validation class)
//   - ObjectNotFoundError: missing order/product/tracking/vehicle
//   - AuthorizationError: role or ownership mismatch
//   - ConflictError: illegal state transition, duplicate tracking
//   - ResourceExhaustedError: insufficient stock, no vehicle available
//   - UpstreamServiceError: routing-service failure, recovered locally
//   - PersistenceError: durable-store failure
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// The HTTP adapter relies on the sentinels to translate failures into
// response classes, so every error that can cross the API boundary should
// be created through this package.
package errs
