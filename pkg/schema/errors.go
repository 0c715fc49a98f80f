package schema

import (
	"errors"
	"fmt"
)

// ValidationError reports a primitive document whose shape does not match
// the schema type it was fed to. The receiving instance is left partially
// populated and must be discarded.
type ValidationError struct {
	// Type is the name of the schema type that rejected the input.
	Type string

	// Want is the primitive shape the type converts from.
	Want Kind

	// Got is the offending input.
	Got any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema %s: cannot convert %T, want %s", e.Type, e.Got, e.Want)
}

// TypeMismatchError reports a merge invoked with an overlay of a different
// concrete schema type than the receiver. It is detected before any field
// is processed, so the receiver is left unmodified.
type TypeMismatchError struct {
	// Receiver is the schema type name of the merge receiver.
	Receiver string

	// Overlay is the schema type name of the rejected overlay.
	Overlay string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("schema %s: cannot merge overlay of type %s", e.Receiver, e.Overlay)
}

// IsValidation returns true if the error chain contains a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsTypeMismatch returns true if the error chain contains a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	var e *TypeMismatchError
	return errors.As(err, &e)
}
