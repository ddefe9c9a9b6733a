package naming

import (
	"strings"

	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/paths"
)

// NavigationPropertyTagName names the tag of a navigation property path.
// Navigation property names are kept until depth-1 items have been
// collected; the path then collapses to the target entity type name of the
// current navigation property. The last navigation property always
// contributes its target type name.
//
//	/People/{id}/friends/photos, depth 2 -> People.Person
//	/People/{id}/friends/photos, depth 4 -> People.friends.Photo
func NavigationPropertyTagName(p *paths.Path, depth int) string {
	items := []string{rootName(p)}
	last := p.LastNavigationProperty()
	for _, s := range p.Segments()[1:] {
		nav, ok := s.(*paths.NavigationPropertySegment)
		if !ok {
			continue
		}
		if nav == last || len(items) >= depth-1 {
			items = append(items, nav.Target().Name())
			break
		}
		items = append(items, nav.NavigationProperty().Name())
	}
	return strings.Join(items, ".")
}

// ComplexPropertyTagName names the tag of a path ending in a complex
// property. When the complex property follows a navigation property, or a
// key of one, with any type casts in between, the navigation property tag is
// used; otherwise the root name. The complex type name is appended while the
// tag has fewer than depth items.
func ComplexPropertyTagName(p *paths.Path, depth int) (string, error) {
	complexSeg, at := lastComplexProperty(p)
	if complexSeg == nil || at < 1 {
		return "", ErrNoComplexProperty
	}

	before := at - 1
	for before > 0 {
		if _, ok := p.At(before).(*paths.TypeCastSegment); !ok {
			break
		}
		before--
	}

	useNavigationTag := false
	switch p.At(before).(type) {
	case *paths.NavigationPropertySegment:
		useNavigationTag = true
	case *paths.KeySegment:
		if before > 0 {
			_, useNavigationTag = p.At(before - 1).(*paths.NavigationPropertySegment)
		}
	}

	items := []string{rootName(p)}
	if useNavigationTag {
		items = strings.Split(NavigationPropertyTagName(p, depth), ".")
	}
	if len(items) < depth {
		if ct := complexSeg.ComplexType(); ct != nil {
			items = append(items, ct.Name())
		}
	}
	return strings.Join(items, "."), nil
}

// EntityTypeTagName names the tag shared by an entity set or singleton and
// its entities, e.g. People.Person
func EntityTypeTagName(source edm.NavigationSource) string {
	return source.Name() + "." + source.EntityType().Name()
}

// OperationTagName names the tag of a bound operation path: the root
// followed by "Actions" or "Functions"
func OperationTagName(p *paths.Path, op edm.Operation) string {
	if op.IsAction() {
		return rootName(p) + ".Actions"
	}
	return rootName(p) + ".Functions"
}

// OperationImportTagName names the tag of an operation import: its entity
// set when it has one, otherwise the import itself
func OperationImportTagName(imp *edm.OperationImport) string {
	if set := imp.EntitySet(); set != nil {
		return set.Name()
	}
	return imp.Name()
}
