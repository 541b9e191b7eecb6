// Package simerr defines the three recoverable/non-recoverable error kinds
// used across the engine: ArgumentError, NotImplemented, and
// InvariantViolation. Kinds are sentinel values wrapped with
// github.com/pkg/errors so callers can inspect the kind via Cause while
// still getting a human-readable, call-site-specific message.
package simerr

import "github.com/pkg/errors"

// Sentinel kinds. Compare with errors.Cause(err) == KindArgument, etc.
var (
	KindArgument  = errors.New("argument error")
	KindUnsupported = errors.New("not implemented")
	KindInvariant = errors.New("invariant violation")
)

// NewArgumentError wraps KindArgument with a caller-supplied message.
// Used for caller-visible precondition violations (e.g. endtime < currentTime).
func NewArgumentError(format string, args ...interface{}) error {
	return errors.Wrapf(KindArgument, format, args...)
}

// NewNotImplemented wraps KindUnsupported with a caller-supplied message.
// Used for control-surface operations the engine deliberately does not support
// (compartment volume / patch area overrides, saveState).
func NewNotImplemented(format string, args ...interface{}) error {
	return errors.Wrapf(KindUnsupported, format, args...)
}

// NewInvariantViolation wraps KindInvariant with a caller-supplied message.
// Never returned from a function; always panicked, per the design's "no
// recoverable errors inside the event loop" rule.
func NewInvariantViolation(format string, args ...interface{}) error {
	return errors.Wrapf(KindInvariant, format, args...)
}

// IsArgument reports whether err's cause is KindArgument.
func IsArgument(err error) bool { return errors.Cause(err) == KindArgument }

// IsNotImplemented reports whether err's cause is KindUnsupported.
func IsNotImplemented(err error) bool { return errors.Cause(err) == KindUnsupported }

// IsInvariant reports whether err's cause is KindInvariant.
func IsInvariant(err error) bool { return errors.Cause(err) == KindInvariant }
