// Package paths models request paths through an entity data model as
// ordered sequences of segments and classifies them.
package paths

import (
	"fmt"
	"strings"
	"sync"

	"github.com/conduit-lang/edmoas/internal/edm"
)

// Kind classifies a whole path
type Kind int

const (
	KindEntitySet Kind = iota
	KindSingleton
	KindEntity
	KindNavigationProperty
	KindOperation
	KindOperationImport
)

// String returns the path kind name
func (k Kind) String() string {
	switch k {
	case KindEntitySet:
		return "EntitySet"
	case KindSingleton:
		return "Singleton"
	case KindEntity:
		return "Entity"
	case KindNavigationProperty:
		return "NavigationProperty"
	case KindOperation:
		return "Operation"
	case KindOperationImport:
		return "OperationImport"
	default:
		return "Unknown"
	}
}

// Path is an immutable, non-empty sequence of segments. Its kind is computed
// on first use; Append returns a new path rather than changing this one.
type Path struct {
	segments []Segment

	once sync.Once
	kind Kind
	err  error
}

// New creates a path from segments
func New(segments ...Segment) (*Path, error) {
	if len(segments) == 0 {
		return nil, ErrEmptyPath
	}
	for i, s := range segments {
		if s == nil {
			return nil, edm.NilArgument(fmt.Sprintf("segments[%d]", i))
		}
	}
	return &Path{segments: append([]Segment(nil), segments...)}, nil
}

// MustNew is like New but panics on error
func MustNew(segments ...Segment) *Path {
	p, err := New(segments...)
	if err != nil {
		panic(err)
	}
	return p
}

// Segments returns a copy of the segments
func (p *Path) Segments() []Segment { return append([]Segment(nil), p.segments...) }

// Len returns the number of segments
func (p *Path) Len() int { return len(p.segments) }

// At returns the segment at index i
func (p *Path) At(i int) Segment { return p.segments[i] }

// First returns the first segment
func (p *Path) First() Segment { return p.segments[0] }

// Last returns the last segment
func (p *Path) Last() Segment { return p.segments[len(p.segments)-1] }

// Append returns a new path with segments added at the end
func (p *Path) Append(segments ...Segment) (*Path, error) {
	all := make([]Segment, 0, len(p.segments)+len(segments))
	all = append(all, p.segments...)
	all = append(all, segments...)
	return New(all...)
}

// NavigationSource returns the root navigation source segment, or nil when
// the path starts with an operation import
func (p *Path) NavigationSource() *NavigationSourceSegment {
	root, _ := p.segments[0].(*NavigationSourceSegment)
	return root
}

// Classify returns the path kind, or a *ShapeError when the segment
// sequence matches none
func (p *Path) Classify() (Kind, error) {
	p.once.Do(func() {
		p.kind, p.err = classify(p)
	})
	return p.kind, p.err
}

// Kind returns the path kind. A path that cannot be classified is a
// construction bug and Kind panics with the *ShapeError.
func (p *Path) Kind() Kind {
	kind, err := p.Classify()
	if err != nil {
		panic(err)
	}
	return kind
}

func classify(p *Path) (Kind, error) {
	has := func(kind SegmentKind) bool {
		for _, s := range p.segments {
			if s.SegmentKind() == kind {
				return true
			}
		}
		return false
	}

	switch {
	case has(NavigationPropertySegmentKind):
		return KindNavigationProperty, nil
	case has(OperationImportSegmentKind):
		return KindOperationImport, nil
	case has(OperationSegmentKind):
		return KindOperation, nil
	}

	switch len(p.segments) {
	case 1:
		if root := p.NavigationSource(); root != nil && root.IsSingleton() {
			return KindSingleton, nil
		}
		return KindEntitySet, nil
	case 2:
		if _, ok := p.segments[1].(*KeySegment); ok && p.NavigationSource() != nil {
			return KindEntity, nil
		}
	}
	return 0, &ShapeError{Path: p.String(), Len: len(p.segments)}
}

// NavigationPropertyPath returns the names of the navigation and complex
// property segments joined with "/", e.g. "friends/photos". Keys and type
// casts are skipped.
func (p *Path) NavigationPropertyPath() string {
	var names []string
	for _, s := range p.segments[1:] {
		switch s.(type) {
		case *NavigationPropertySegment, *ComplexPropertySegment:
			names = append(names, s.Identifier())
		}
	}
	return strings.Join(names, "/")
}

// LastNavigationProperty returns the last navigation property segment, or nil
func (p *Path) LastNavigationProperty() *NavigationPropertySegment {
	for i := len(p.segments) - 1; i >= 0; i-- {
		if nav, ok := p.segments[i].(*NavigationPropertySegment); ok {
			return nav
		}
	}
	return nil
}

// String renders the path in the form accepted by Parse
func (p *Path) String() string {
	var b strings.Builder
	for _, s := range p.segments {
		b.WriteByte('/')
		if key, ok := s.(*KeySegment); ok {
			b.WriteByte('{')
			if key.IsAlternate() {
				b.WriteString(alternateKeyPrefix)
			}
			b.WriteString(key.Identifier())
			b.WriteByte('}')
			continue
		}
		b.WriteString(s.Identifier())
	}
	return b.String()
}
