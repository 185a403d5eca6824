// Package apperr holds the error kinds shared by every domain package.
// Domain sentinels wrap one of these so callers can classify with errors.Is.
package apperr

import "errors"

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrForbidden         = errors.New("access denied")
	ErrUnauthenticated   = errors.New("authentication required")
)

// IsClassified reports whether err wraps one of the kinds above, i.e. it is
// an outcome of the caller's input rather than an infrastructure failure.
func IsClassified(err error) bool {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrInvalidTransition, ErrForbidden, ErrUnauthenticated} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
