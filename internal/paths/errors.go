package paths

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPath is returned when a path is built without segments
	ErrEmptyPath = errors.New("path has no segments")

	// ErrInvalidPathShape is returned when a segment sequence matches no path kind
	ErrInvalidPathShape = errors.New("invalid path shape")

	// ErrUnresolvedSegment is returned when a path string names something the model lacks
	ErrUnresolvedSegment = errors.New("unresolved path segment")
)

// ShapeError reports a segment sequence that cannot be classified
type ShapeError struct {
	Path string
	Len  int
}

// Error implements the error interface
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s has %d segments and no navigation property, operation or operation import", ErrInvalidPathShape, e.Path, e.Len)
}

// Is reports whether target is ErrInvalidPathShape
func (e *ShapeError) Is(target error) bool {
	return target == ErrInvalidPathShape
}
