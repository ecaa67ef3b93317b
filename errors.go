package tategb

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an [Error] returned by this package, per spec.md §7.
type Kind int

const (
	// KindNotImplementedAlgorithm: an unknown algorithm name was requested.
	KindNotImplementedAlgorithm Kind = iota
	// KindInvalidPrecision: the requested precision is not a positive
	// finite integer.
	KindInvalidPrecision
	// KindPrecisionExhausted: during reduction every term vanished into
	// O(π^∞) before a non-zero result could be certified.
	KindPrecisionExhausted
	// KindCancelled: the driver was aborted via its cancellation token.
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindNotImplementedAlgorithm:
		return "not implemented algorithm"
	case KindInvalidPrecision:
		return "invalid precision"
	case KindPrecisionExhausted:
		return "precision exhausted"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is the error type returned for the four recognised failure kinds of
// spec.md §7. Anything else (division by a zero term, a non-divisible
// quotient request) is a programming error in the engine's contract and is
// reported as a panic, not an Error: spec.md §7 treats those as fatal
// internal inconsistencies, not recoverable conditions.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(k Kind, format string, args ...interface{}) error {
	return errors.WithStack(&Error{Kind: k, Message: fmt.Sprintf(format, args...)})
}

// AsError reports whether err (or one it wraps) is a *tategb.Error, and
// returns it.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// errNotImplementedAlgorithm reports an unrecognised algorithm name.
func errNotImplementedAlgorithm(algo Algorithm) error {
	return newError(KindNotImplementedAlgorithm, "algorithm %q is not implemented", algo)
}

// errInvalidPrecision reports a non-positive or non-finite precision.
func errInvalidPrecision(precision int) error {
	return newError(KindInvalidPrecision, "precision %d must be a positive finite integer", precision)
}

// errPrecisionExhausted reports that a reduction could not certify a
// non-zero result before precision ran out.
func errPrecisionExhausted(context string) error {
	return newError(KindPrecisionExhausted, "%s", context)
}

// errCancelled reports cooperative cancellation.
func errCancelled() error {
	return newError(KindCancelled, "computation cancelled")
}
