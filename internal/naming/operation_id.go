// Package naming derives the operation ids, tag names and segment names
// used for a path in the generated API description.
package naming

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/paths"
	utilstrings "github.com/conduit-lang/edmoas/internal/util/strings"
)

// Operation id verbs
const (
	VerbList   = "List"
	VerbGet    = "Get"
	VerbCreate = "Create"
	VerbUpdate = "Update"
	VerbDelete = "Delete"
)

func rootName(p *paths.Path) string {
	if root := p.NavigationSource(); root != nil {
		return root.NavigationSource().Name()
	}
	return p.First().Identifier()
}

func navigationNames(p *paths.Path) []string {
	items := []string{rootName(p)}
	for _, s := range p.Segments()[1:] {
		if nav, ok := s.(*paths.NavigationPropertySegment); ok {
			items = append(items, nav.NavigationProperty().Name())
		}
	}
	return items
}

// NavigationPropertyOperationID joins the root navigation source and every
// navigation property of p with ".". The last item gets prefix and an
// upper-cased first character:
//
//	/People/{id}/friends/photos, "List" -> People.friends.ListPhotos
func NavigationPropertyOperationID(p *paths.Path, prefix string) string {
	items := navigationNames(p)
	last := len(items) - 1
	items[last] = prefix + utilstrings.UpperFirst(items[last])
	return strings.Join(items, ".")
}

// ComplexPropertyOperationID is NavigationPropertyOperationID terminated by
// the last complex property of p instead of a navigation property
func ComplexPropertyOperationID(p *paths.Path, prefix string) (string, error) {
	complexSeg, _ := lastComplexProperty(p)
	if complexSeg == nil {
		return "", ErrNoComplexProperty
	}
	items := navigationNames(p)
	items = append(items, prefix+utilstrings.UpperFirst(complexSeg.Property().Name()))
	return strings.Join(items, "."), nil
}

func lastComplexProperty(p *paths.Path) (*paths.ComplexPropertySegment, int) {
	for i := p.Len() - 1; i >= 0; i-- {
		if c, ok := p.At(i).(*paths.ComplexPropertySegment); ok {
			return c, i
		}
	}
	return nil, -1
}

func listOrGet(include, many bool) string {
	switch {
	case !include:
		return ""
	case many:
		return VerbList
	default:
		return VerbGet
	}
}

// TypeCastOperationIDPrefix builds the operation id prefix for a path whose
// last type cast follows a navigation source, key, navigation property or
// complex property. When includeListOrGet is set the terminal fragment
// carries "List" or "Get" depending on the cardinality of what is cast.
func TypeCastOperationIDPrefix(p *paths.Path, includeListOrGet bool) (string, error) {
	castAt := -1
	for i := p.Len() - 1; i > 0; i-- {
		if _, ok := p.At(i).(*paths.TypeCastSegment); ok {
			castAt = i
			break
		}
	}
	if castAt < 1 {
		return "", ErrNoTypeCast
	}

	before := p.At(castAt - 1)
	indexedNavigation := false
	if _, ok := before.(*paths.KeySegment); ok && castAt >= 2 {
		_, indexedNavigation = p.At(castAt - 2).(*paths.NavigationPropertySegment)
	}

	switch seg := before.(type) {
	case *paths.ComplexPropertySegment:
		return ComplexPropertyOperationID(p, listOrGet(includeListOrGet, seg.IsCollection()))

	case *paths.NavigationPropertySegment:
		many := seg.NavigationProperty().TargetMultiplicity() == edm.MultiplicityMany
		return NavigationPropertyOperationID(p, listOrGet(includeListOrGet, many)), nil

	case *paths.KeySegment:
		if indexedNavigation {
			return NavigationPropertyOperationID(p, listOrGet(includeListOrGet, false)), nil
		}
		root := p.NavigationSource()
		if root == nil {
			return "", ErrNoNavigationSource
		}
		typeName := seg.EntityType().Name()
		operation := listOrGet(includeListOrGet, false) + utilstrings.UpperFirst(typeName)
		if seg.IsAlternate() {
			operation += "By" + utilstrings.UpperFirstEach(seg.Identifier())
		}
		return root.NavigationSource().Name() + "." + typeName + "." + operation, nil

	case *paths.NavigationSourceSegment:
		typeName := seg.EntityType().Name()
		operation := listOrGet(includeListOrGet, !seg.IsSingleton()) + utilstrings.UpperFirst(typeName)
		return seg.NavigationSource().Name() + "." + typeName + "." + operation, nil
	}

	return "", fmt.Errorf("%w: cast follows a %s segment", ErrNoTypeCast, before.SegmentKind())
}

// NavigationSourceOperationID names an operation on an entity set or
// singleton itself, e.g. People.Person.ListPerson
func NavigationSourceOperationID(source edm.NavigationSource, verb string) string {
	typeName := source.EntityType().Name()
	return source.Name() + "." + typeName + "." + verb + utilstrings.UpperFirst(typeName)
}

// EntitySetOperationID names an operation on an entity set or one of its entities
func EntitySetOperationID(set *edm.EntitySet, verb string) string {
	return NavigationSourceOperationID(set, verb)
}

// SingletonOperationID names an operation on a singleton
func SingletonOperationID(singleton *edm.Singleton, verb string) string {
	return NavigationSourceOperationID(singleton, verb)
}

// OperationOperationID names the invocation of the last bound operation in
// p: the root, each navigation or complex property and cast type, then the
// operation name
func OperationOperationID(p *paths.Path) string {
	items := []string{rootName(p)}
	for _, s := range p.Segments()[1:] {
		switch seg := s.(type) {
		case *paths.NavigationPropertySegment, *paths.ComplexPropertySegment:
			items = append(items, seg.Identifier())
		case *paths.TypeCastSegment:
			items = append(items, seg.StructuredType().QName().Name)
		case *paths.OperationSegment:
			items = append(items, utilstrings.UpperFirst(seg.Operation().Name()))
		}
	}
	return strings.Join(items, ".")
}

// OperationImportOperationID names the invocation of an action or function import
func OperationImportOperationID(imp *edm.OperationImport) string {
	if imp.IsActionImport() {
		return "ActionImport." + imp.Name()
	}
	return "FunctionImport." + imp.Name()
}
