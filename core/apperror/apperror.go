package apperror

import (
	"errors"
	"fmt"
)

// Kind identifies a stable error category that callers can branch on.
// The string value is surfaced in API responses and logs.
type Kind string

const (
	// KindInvalidReference means a filter reference contained no extractable numeric id.
	KindInvalidReference Kind = "invalid_reference"
	// KindFilterNotFound means a well-formed filter id does not exist in the CRM.
	KindFilterNotFound Kind = "filter_not_found"
	// KindExternalFetch means the CRM/API pull failed after bounded retries.
	KindExternalFetch Kind = "external_fetch"
	// KindStorage means a persistence read or write failed.
	KindStorage Kind = "storage"
	// KindConcurrencyConflict means another workflow holds the lock for the same filter identity.
	KindConcurrencyConflict Kind = "concurrency_conflict"
)

// Error is an error with a stable kind tag and human-readable detail.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same kind, so sentinel comparisons like
// errors.Is(err, apperror.ErrFilterNotFound) work regardless of detail text.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinel values for errors.Is checks. New errors should be created with the
// constructors below so they carry detail; these exist as match targets.
var (
	ErrInvalidReference    = &Error{Kind: KindInvalidReference, Detail: "no numeric filter id found in reference"}
	ErrFilterNotFound      = &Error{Kind: KindFilterNotFound, Detail: "filter does not exist"}
	ErrExternalFetch       = &Error{Kind: KindExternalFetch, Detail: "external fetch failed"}
	ErrStorage             = &Error{Kind: KindStorage, Detail: "storage operation failed"}
	ErrConcurrencyConflict = &Error{Kind: KindConcurrencyConflict, Detail: "filter is locked by another run"}
)

// New creates an error of the given kind with formatted detail.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind that wraps an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Cause: cause}
}

// HTTPStatus maps an error's kind to the status code API handlers respond
// with. Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidReference:
		return 400
	case KindFilterNotFound:
		return 404
	case KindExternalFetch:
		return 502
	case KindConcurrencyConflict:
		return 409
	default:
		return 500
	}
}

// KindOf returns the kind of err if it is (or wraps) an *Error, or "" otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
