package console

import "errors"

// unknownResourceError signals a resource name absent from the console.
type unknownResourceError struct{ name string }

func (e unknownResourceError) Error() string { return "unknown resource: " + e.name }

// ErrUnknownResource constructs an unknownResourceError.
func ErrUnknownResource(name string) error { return unknownResourceError{name: name} }

// IsUnknownResource reports whether err indicates a missing resource name.
func IsUnknownResource(err error) bool {
	var ue unknownResourceError
	return errors.As(err, &ue)
}
