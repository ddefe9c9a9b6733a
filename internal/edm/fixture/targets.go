package fixture

import (
	"strings"

	"github.com/conduit-lang/edmoas/internal/edm"
)

// resolveTargets finds the elements an annotation target names:
//
//	Container, NS.Container          the entity container
//	People, NS.Container/People      an entity set, singleton or import
//	NS.Person, NS.Person/Name        a type, or one of its properties
//	NS.ShareTrip, NS.ShareTrip/p     every overload of an operation, or a parameter
func resolveTargets(m *edm.Model, target string) ([]edm.Annotatable, error) {
	if target == "" {
		return nil, invalid("annotation has no target")
	}

	if c := m.Container(); c != nil {
		name := target
		if rest, ok := strings.CutPrefix(target, c.TargetName()+"/"); ok {
			name = rest
		} else if rest, ok := strings.CutPrefix(target, c.Name()+"/"); ok {
			name = rest
		}
		if name == c.Name() || name == c.TargetName() {
			return []edm.Annotatable{c}, nil
		}
		if source := c.FindNavigationSource(name); source != nil {
			return []edm.Annotatable{source}, nil
		}
		if imp := c.FindOperationImport(name); imp != nil {
			return []edm.Annotatable{imp}, nil
		}
	}

	head, member, _ := strings.Cut(target, "/")

	if t, err := m.FindType(head); err == nil {
		if member == "" {
			if a, ok := t.(edm.Annotatable); ok {
				return []edm.Annotatable{a}, nil
			}
			return nil, invalid("type %s cannot be annotated", head)
		}
		st, ok := t.(edm.StructuredType)
		if !ok {
			return nil, invalid("type %s has no members", head)
		}
		for _, p := range edm.AllProperties(st) {
			if p.Name() == member {
				return []edm.Annotatable{p}, nil
			}
		}
		for _, n := range edm.AllNavigationProperties(st) {
			if n.Name() == member {
				return []edm.Annotatable{n}, nil
			}
		}
		return nil, invalid("type %s has no property %s", head, member)
	}

	if ops := m.FindOperations(head); len(ops) > 0 {
		var out []edm.Annotatable
		for _, op := range ops {
			if member == "" {
				out = append(out, op)
				continue
			}
			for _, p := range op.Parameters() {
				if p.Name() == member {
					out = append(out, p)
				}
			}
		}
		if len(out) == 0 {
			return nil, invalid("operation %s has no parameter %s", head, member)
		}
		return out, nil
	}

	return nil, invalid("unknown annotation target %q", target)
}
