package capabilities

import (
	"errors"
	"fmt"
)

var (
	// ErrKindNotSupported is returned when a record is requested for a
	// capability term this package deliberately does not decode
	ErrKindNotSupported = errors.New("restriction kind not supported")

	// ErrUnknownKind is returned when a term name matches no known kind
	ErrUnknownKind = errors.New("unknown restriction kind")
)

// UnsupportedKindError identifies the kind that could not be built
type UnsupportedKindError struct {
	Kind Kind
}

// Error implements the error interface
func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("%s: %s", ErrKindNotSupported, e.Kind)
}

// Is reports whether target is ErrKindNotSupported
func (e *UnsupportedKindError) Is(target error) bool {
	return target == ErrKindNotSupported
}
