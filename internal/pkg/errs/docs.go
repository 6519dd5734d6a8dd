// Package errs provides the typed errors shared by the domain, the use cases and
// the adapters.
//
// Error types:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsOutOfRangeError: a numeric value is outside its bounds
//   - ObjectNotFoundError: a referenced record does not exist
//   - PermissionDeniedError: role or ownership mismatch
//   - InvalidStateError: the operation is not allowed from the current status
//
// Every type wraps a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...) and has
// a constructor with and without a cause, so callers match with errors.Is.
//
// KindOf maps any of them, wrapped or joined, onto the caller-facing taxonomy:
// not_found, permission_denied, invalid_state, invalid_input, unauthenticated.
// The HTTP adapter turns a Kind into a status code.
package errs
