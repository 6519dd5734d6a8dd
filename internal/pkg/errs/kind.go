package errs

import "errors"

// Kind is the caller-facing classification of an error.
type Kind string

const (
	KindInternal         Kind = "internal"
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindInvalidState     Kind = "invalid_state"
	KindInvalidInput     Kind = "invalid_input"
	KindUnauthenticated  Kind = "unauthenticated"
)

// KindOf classifies err by the sentinel it wraps. Errors joined with
// errors.Join are classified by the first matching sentinel in the order below.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrPermissionDenied):
		return KindPermissionDenied
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrConcurrentModified):
		return KindInvalidState
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindInvalidInput
	default:
		return KindInternal
	}
}
