package edm

import (
	"errors"
	"fmt"
)

var (
	// ErrNilArgument is returned when a required argument to a public entry point is nil
	ErrNilArgument = errors.New("nil argument")

	// ErrTypeNotFound is returned when a qualified type name cannot be resolved
	ErrTypeNotFound = errors.New("type not found")
)

// ArgumentError reports a nil or missing argument passed to a public entry point.
// It identifies the offending parameter by name.
type ArgumentError struct {
	Param string
}

// Error implements the error interface
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("argument %q must not be nil", e.Param)
}

// Is reports whether target is ErrNilArgument
func (e *ArgumentError) Is(target error) bool {
	return target == ErrNilArgument
}

// NilArgument returns an ArgumentError for param
func NilArgument(param string) error {
	return &ArgumentError{Param: param}
}
