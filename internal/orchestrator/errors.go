package orchestrator

import (
	"context"
	"errors"
)

// configError signals a requested operation name absent from the operation
// map. It is a programmer error, fatal to that call only.
type configError struct{ op string }

func (e configError) Error() string { return "operation not configured: " + e.op }

// ErrNotConfigured constructs a configError for the given operation name.
func ErrNotConfigured(op string) error { return configError{op: op} }

// IsConfigError reports whether err indicates a missing operation name.
func IsConfigError(err error) bool {
	var ce configError
	return errors.As(err, &ce)
}

// IsCanceled reports whether err came from cancellation rather than operation
// failure. Canceled operations never populate the surfaced error.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
