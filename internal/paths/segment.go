package paths

import (
	"strings"

	"github.com/conduit-lang/edmoas/internal/edm"
)

// SegmentKind identifies the variant of a Segment
type SegmentKind int

const (
	NavigationSourceSegmentKind SegmentKind = iota
	KeySegmentKind
	NavigationPropertySegmentKind
	TypeCastSegmentKind
	ComplexPropertySegmentKind
	OperationSegmentKind
	OperationImportSegmentKind
)

var segmentKindNames = [...]string{
	NavigationSourceSegmentKind:   "NavigationSource",
	KeySegmentKind:                "Key",
	NavigationPropertySegmentKind: "NavigationProperty",
	TypeCastSegmentKind:           "TypeCast",
	ComplexPropertySegmentKind:    "ComplexProperty",
	OperationSegmentKind:          "Operation",
	OperationImportSegmentKind:    "OperationImport",
}

// String returns the segment kind name
func (k SegmentKind) String() string {
	if k < 0 || int(k) >= len(segmentKindNames) {
		return "Unknown"
	}
	return segmentKindNames[k]
}

// Segment is one hop of a request path. The set of implementations is
// closed; segments are immutable once constructed.
type Segment interface {
	SegmentKind() SegmentKind
	// Identifier is the segment's name as it contributes to naming
	Identifier() string
	segment()
}

// NavigationSourceSegment addresses an entity set or singleton
type NavigationSourceSegment struct {
	source edm.NavigationSource
}

// NewNavigationSourceSegment creates a root segment for source
func NewNavigationSourceSegment(source edm.NavigationSource) *NavigationSourceSegment {
	return &NavigationSourceSegment{source: source}
}

func (*NavigationSourceSegment) segment() {}

// SegmentKind implements Segment
func (*NavigationSourceSegment) SegmentKind() SegmentKind { return NavigationSourceSegmentKind }

// Identifier implements Segment
func (s *NavigationSourceSegment) Identifier() string { return s.source.Name() }

// NavigationSource returns the addressed entity set or singleton
func (s *NavigationSourceSegment) NavigationSource() edm.NavigationSource { return s.source }

// EntityType returns the entity type of the navigation source
func (s *NavigationSourceSegment) EntityType() *edm.EntityType { return s.source.EntityType() }

// IsSingleton reports whether the source is a singleton
func (s *NavigationSourceSegment) IsSingleton() bool {
	return s.source.SourceKind() == edm.SingletonSource
}

// KeySegment addresses one entity of a collection by key
type KeySegment struct {
	entityType *edm.EntityType
	names      []string
	alternate  bool
}

// NewKeySegment creates a key segment using the entity type's primary key
func NewKeySegment(entityType *edm.EntityType) *KeySegment {
	var names []string
	for _, p := range entityType.Key() {
		names = append(names, p.Name())
	}
	return &KeySegment{entityType: entityType, names: names}
}

// NewAlternateKeySegment creates a key segment for a declared alternate key
// made of the named properties
func NewAlternateKeySegment(entityType *edm.EntityType, names ...string) *KeySegment {
	return &KeySegment{entityType: entityType, names: append([]string(nil), names...), alternate: true}
}

func (*KeySegment) segment() {}

// SegmentKind implements Segment
func (*KeySegment) SegmentKind() SegmentKind { return KeySegmentKind }

// Identifier returns the key property names joined with ","
func (s *KeySegment) Identifier() string { return strings.Join(s.names, ",") }

// EntityType returns the keyed entity type
func (s *KeySegment) EntityType() *edm.EntityType { return s.entityType }

// KeyNames returns the key property names
func (s *KeySegment) KeyNames() []string { return append([]string(nil), s.names...) }

// IsComposite reports whether the key has more than one property
func (s *KeySegment) IsComposite() bool { return len(s.names) > 1 }

// IsAlternate reports whether the segment uses an alternate key
func (s *KeySegment) IsAlternate() bool { return s.alternate }

// NavigationPropertySegment follows a navigation property
type NavigationPropertySegment struct {
	property *edm.NavigationProperty
}

// NewNavigationPropertySegment creates a segment following property
func NewNavigationPropertySegment(property *edm.NavigationProperty) *NavigationPropertySegment {
	return &NavigationPropertySegment{property: property}
}

func (*NavigationPropertySegment) segment() {}

// SegmentKind implements Segment
func (*NavigationPropertySegment) SegmentKind() SegmentKind { return NavigationPropertySegmentKind }

// Identifier implements Segment
func (s *NavigationPropertySegment) Identifier() string { return s.property.Name() }

// NavigationProperty returns the followed property
func (s *NavigationPropertySegment) NavigationProperty() *edm.NavigationProperty { return s.property }

// Target returns the target entity type
func (s *NavigationPropertySegment) Target() *edm.EntityType { return s.property.Target() }

// IsCollection reports whether the property is collection-valued
func (s *NavigationPropertySegment) IsCollection() bool { return s.property.IsCollection() }

// TypeCastSegment narrows the preceding segment to a derived type
type TypeCastSegment struct {
	typ edm.StructuredType
}

// NewTypeCastSegment creates a cast to typ
func NewTypeCastSegment(typ edm.StructuredType) *TypeCastSegment {
	return &TypeCastSegment{typ: typ}
}

func (*TypeCastSegment) segment() {}

// SegmentKind implements Segment
func (*TypeCastSegment) SegmentKind() SegmentKind { return TypeCastSegmentKind }

// Identifier returns the qualified name of the cast type
func (s *TypeCastSegment) Identifier() string { return s.typ.FullName() }

// StructuredType returns the cast type
func (s *TypeCastSegment) StructuredType() edm.StructuredType { return s.typ }

// ComplexPropertySegment selects a complex-typed structural property
type ComplexPropertySegment struct {
	property *edm.Property
}

// NewComplexPropertySegment creates a segment selecting property
func NewComplexPropertySegment(property *edm.Property) *ComplexPropertySegment {
	return &ComplexPropertySegment{property: property}
}

func (*ComplexPropertySegment) segment() {}

// SegmentKind implements Segment
func (*ComplexPropertySegment) SegmentKind() SegmentKind { return ComplexPropertySegmentKind }

// Identifier implements Segment
func (s *ComplexPropertySegment) Identifier() string { return s.property.Name() }

// Property returns the selected property
func (s *ComplexPropertySegment) Property() *edm.Property { return s.property }

// ComplexType returns the property's complex type
func (s *ComplexPropertySegment) ComplexType() *edm.ComplexType { return s.property.ComplexType() }

// IsCollection reports whether the property is collection-valued
func (s *ComplexPropertySegment) IsCollection() bool { return s.property.Type().Collection }

// OperationSegment invokes a bound action or function
type OperationSegment struct {
	operation edm.Operation
}

// NewOperationSegment creates a segment invoking operation
func NewOperationSegment(operation edm.Operation) *OperationSegment {
	return &OperationSegment{operation: operation}
}

func (*OperationSegment) segment() {}

// SegmentKind implements Segment
func (*OperationSegment) SegmentKind() SegmentKind { return OperationSegmentKind }

// Identifier returns the qualified operation name
func (s *OperationSegment) Identifier() string { return s.operation.FullName() }

// Operation returns the invoked operation
func (s *OperationSegment) Operation() edm.Operation { return s.operation }

// OperationImportSegment invokes an action or function import
type OperationImportSegment struct {
	imp *edm.OperationImport
}

// NewOperationImportSegment creates a segment invoking imp
func NewOperationImportSegment(imp *edm.OperationImport) *OperationImportSegment {
	return &OperationImportSegment{imp: imp}
}

func (*OperationImportSegment) segment() {}

// SegmentKind implements Segment
func (*OperationImportSegment) SegmentKind() SegmentKind { return OperationImportSegmentKind }

// Identifier implements Segment
func (s *OperationImportSegment) Identifier() string { return s.imp.Name() }

// OperationImport returns the invoked import
func (s *OperationImportSegment) OperationImport() *edm.OperationImport { return s.imp }
