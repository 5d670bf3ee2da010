// Package errs provides standardized error types for the storefront order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - InvalidTransitionError: For order status changes outside the adjacency table
//   - ConfirmationRequiredError: For guarded status changes submitted without force
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The sentinels give callers a stable classification surface: the HTTP adapter
// maps ErrObjectNotFound to 404, ErrInvalidTransition and ErrConfirmationRequired
// to 409, and the remaining validation sentinels to 400.
package errs
