// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the failure taxonomy of the order lifecycle:
//   - ValueIsRequiredError: a required creation field is missing
//   - ValueIsInvalidError: a value failed validation
//   - ObjectNotFoundError: a referenced object does not exist
//   - UnauthorizedError: the actor lacks permission for the requested action
//   - InvalidTransitionError: the action is not valid from the current state
//   - ConflictError: the precondition was lost to a concurrent operation
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application.
package errs
