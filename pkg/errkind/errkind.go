// Package errkind defines the error kinds shared by all bounded contexts.
// Domain packages declare their own sentinel errors with New so a single
// errors.Is check matches either the specific sentinel or its kind:
//
//	var ErrItemNotFound = errkind.New(errkind.ErrNotFound, "inventory item not found")
//
//	errors.Is(err, ErrItemNotFound)   // specific
//	errors.Is(err, errkind.ErrNotFound) // kind
package errkind

import "errors"

// Kinds. Check with errors.Is.
var (
	// ErrValidation indicates bad input shape or range.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition indicates an order state machine violation.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrInsufficientStock indicates a decrement would drive quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrConflict indicates a concurrent-update race. Callers may retry once.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrForbidden indicates the actor's role does not grant the capability.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated indicates no valid identity is attached to the request.
	ErrUnauthenticated = errors.New("authentication required")
)

// Error is a sentinel bound to one kind.
type Error struct {
	kind error
	msg  string
}

// New returns a sentinel error with message msg that unwraps to kind.
func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Kind returns the kind err belongs to, or nil when it matches none.
func Kind(err error) error {
	for _, k := range []error{
		ErrValidation,
		ErrNotFound,
		ErrInvalidTransition,
		ErrInsufficientStock,
		ErrConflict,
		ErrForbidden,
		ErrUnauthenticated,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// IsRetryable reports whether err is a transient conflict worth one retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

// Label returns a short snake_case name for the kind of err, suitable as a
// metric attribute. Errors without a kind are "internal".
func Label(err error) string {
	switch Kind(err) {
	case ErrValidation:
		return "validation"
	case ErrNotFound:
		return "not_found"
	case ErrInvalidTransition:
		return "invalid_transition"
	case ErrInsufficientStock:
		return "insufficient_stock"
	case ErrConflict:
		return "conflict"
	case ErrForbidden:
		return "forbidden"
	case ErrUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}
