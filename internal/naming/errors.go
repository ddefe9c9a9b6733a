package naming

import "errors"

var (
	// ErrNoComplexProperty is returned when a complex-property name is
	// requested for a path without a complex property segment
	ErrNoComplexProperty = errors.New("path has no complex property segment")

	// ErrNoTypeCast is returned when a type-cast prefix is requested for a
	// path without a type cast after its first segment
	ErrNoTypeCast = errors.New("path has no type cast segment")

	// ErrNoNavigationSource is returned when a name needs the root entity set
	// or singleton and the path starts elsewhere
	ErrNoNavigationSource = errors.New("path does not start with a navigation source")
)
