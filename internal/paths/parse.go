package paths

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/edmoas/internal/edm"
)

const alternateKeyPrefix = "alt:"

// Parse builds a path from its "/"-separated string form, resolving each
// segment against model:
//
//	/People/{UserName}/Friends/NS.Employee/NS.GetPeers
//	/Customers/{alt:Email,Region}
//	/ResetDataSource
//
// The first segment names an entity set, singleton or operation import.
// "{...}" is a key of the current entity type; "{alt:A,B}" is an alternate
// key. A dotted name is a type cast when it resolves to a structured type,
// otherwise a bound operation. Anything else is a navigation property or a
// complex property of the current type.
func Parse(model *edm.Model, raw string) (*Path, error) {
	if model == nil {
		return nil, edm.NilArgument("model")
	}
	container := model.Container()
	if container == nil {
		return nil, fmt.Errorf("%w: model has no entity container", ErrUnresolvedSegment)
	}

	parts := strings.Split(strings.Trim(raw, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return nil, ErrEmptyPath
	}

	p := &parser{model: model, raw: raw}
	first := trimCall(parts[0])
	if source := container.FindNavigationSource(first); source != nil {
		p.push(NewNavigationSourceSegment(source), source.EntityType())
	} else if imp := container.FindOperationImport(first); imp != nil {
		var next edm.StructuredType
		if set := imp.EntitySet(); set != nil {
			next = set.EntityType()
		}
		p.push(NewOperationImportSegment(imp), next)
	} else {
		return nil, p.unresolved(parts[0], "no entity set, singleton or operation import")
	}

	for _, part := range parts[1:] {
		if err := p.next(part); err != nil {
			return nil, err
		}
	}
	return New(p.segments...)
}

// MustParse is like Parse but panics on error
func MustParse(model *edm.Model, raw string) *Path {
	p, err := Parse(model, raw)
	if err != nil {
		panic(err)
	}
	return p
}

type parser struct {
	model    *edm.Model
	raw      string
	segments []Segment
	current  edm.StructuredType
}

func (p *parser) push(s Segment, next edm.StructuredType) {
	p.segments = append(p.segments, s)
	p.current = next
}

func (p *parser) unresolved(part, reason string) error {
	return fmt.Errorf("%w: %q in %s: %s", ErrUnresolvedSegment, part, p.raw, reason)
}

func (p *parser) next(part string) error {
	if p.current == nil {
		return p.unresolved(part, "previous segment has no structured type")
	}

	if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
		return p.key(part[1 : len(part)-1])
	}

	name := trimCall(part)
	if strings.Contains(name, ".") {
		return p.qualified(part, name)
	}

	if nav := findNavigationProperty(p.current, name); nav != nil {
		p.push(NewNavigationPropertySegment(nav), nav.Target())
		return nil
	}
	if prop := findProperty(p.current, name); prop != nil {
		ct := prop.ComplexType()
		if ct == nil {
			return p.unresolved(part, "property is not complex-typed")
		}
		p.push(NewComplexPropertySegment(prop), ct)
		return nil
	}
	return p.unresolved(part, "no such property on "+p.current.FullName())
}

func (p *parser) key(body string) error {
	et, ok := p.current.(*edm.EntityType)
	if !ok {
		return p.unresolved("{"+body+"}", "key on a non-entity type")
	}
	if alt, ok := strings.CutPrefix(body, alternateKeyPrefix); ok {
		var names []string
		for _, name := range strings.Split(alt, ",") {
			name = strings.TrimSpace(name)
			if et.FindProperty(name) == nil {
				return p.unresolved("{"+body+"}", "alternate key property "+name+" not found")
			}
			names = append(names, name)
		}
		p.push(NewAlternateKeySegment(et, names...), et)
		return nil
	}
	if len(et.Key()) == 0 {
		return p.unresolved("{"+body+"}", et.FullName()+" declares no key")
	}
	p.push(NewKeySegment(et), et)
	return nil
}

func (p *parser) qualified(part, name string) error {
	if st, err := p.model.FindStructuredType(name); err == nil {
		p.push(NewTypeCastSegment(st), st)
		return nil
	}

	for _, op := range p.model.FindOperations(name) {
		bp := op.BindingParameter()
		if bp == nil || !bindsTo(bp.Type().Type, p.current) {
			continue
		}
		var next edm.StructuredType
		if fn, ok := op.(*edm.Function); ok {
			next, _ = fn.ReturnType().Type.(edm.StructuredType)
		}
		p.push(NewOperationSegment(op), next)
		return nil
	}
	return p.unresolved(part, "no structured type or bound operation")
}

// bindsTo reports whether a binding parameter of type bound accepts current
func bindsTo(bound edm.Type, current edm.StructuredType) bool {
	for cur := current; cur != nil; cur = cur.Base() {
		if edm.Type(cur) == bound {
			return true
		}
	}
	return false
}

func trimCall(part string) string {
	if i := strings.Index(part, "("); i >= 0 {
		return part[:i]
	}
	return part
}

func findNavigationProperty(t edm.StructuredType, name string) *edm.NavigationProperty {
	for _, nav := range edm.AllNavigationProperties(t) {
		if nav.Name() == name {
			return nav
		}
	}
	return nil
}

func findProperty(t edm.StructuredType, name string) *edm.Property {
	for _, prop := range edm.AllProperties(t) {
		if prop.Name() == name {
			return prop
		}
	}
	return nil
}
