package fixture

import (
	"strings"

	"github.com/conduit-lang/edmoas/internal/edm"
)

type builder struct {
	model    *edm.Model
	entities map[string]*edm.EntityType
	complex  map[string]*edm.ComplexType
}

// Build creates the model described by the document. Types are declared
// before any reference to them is resolved, so declaration order does not
// matter.
func (d *Document) Build() (*edm.Model, error) {
	b := &builder{
		model:    edm.NewModel(),
		entities: make(map[string]*edm.EntityType),
		complex:  make(map[string]*edm.ComplexType),
	}

	schemas := make([]*edm.Schema, len(d.Schemas))
	for i, s := range d.Schemas {
		if s.Namespace == "" {
			return nil, invalid("schema %d has no namespace", i)
		}
		schemas[i] = b.model.AddSchema(s.Namespace, s.Alias)
		b.declare(schemas[i], s)
	}

	for i, s := range d.Schemas {
		if err := b.define(s); err != nil {
			return nil, err
		}
		if err := b.operations(schemas[i], s); err != nil {
			return nil, err
		}
	}

	if d.Container != nil {
		if err := b.container(d.Container); err != nil {
			return nil, err
		}
	}

	for _, a := range d.Annotations {
		if err := b.annotate(a); err != nil {
			return nil, err
		}
	}
	return b.model, nil
}

func (b *builder) declare(schema *edm.Schema, s Schema) {
	for _, t := range s.EntityTypes {
		et := schema.AddEntityType(t.Name, nil)
		et.SetAbstract(t.Abstract)
		b.entities[s.Namespace+"."+t.Name] = et
	}
	for _, t := range s.ComplexTypes {
		ct := schema.AddComplexType(t.Name, nil)
		ct.SetAbstract(t.Abstract)
		b.complex[s.Namespace+"."+t.Name] = ct
	}
	for _, t := range s.EnumTypes {
		schema.AddEnumType(t.Name, t.Flags, t.Members...)
	}
}

// qualify resolves a type name written in schema ns. Unqualified names
// refer to ns; alias-qualified names and Edm primitives are accepted.
func (b *builder) qualify(ns, name string) (edm.Type, error) {
	if name == "" {
		return nil, invalid("missing type name in %s", ns)
	}
	if !strings.Contains(name, ".") {
		name = ns + "." + name
	}
	t, err := b.model.FindType(name)
	if err != nil {
		return nil, invalid("%v", err)
	}
	return t, nil
}

func (b *builder) entityType(ns, name string) (*edm.EntityType, error) {
	t, err := b.qualify(ns, name)
	if err != nil {
		return nil, err
	}
	et, ok := t.(*edm.EntityType)
	if !ok {
		return nil, invalid("%s is not an entity type", name)
	}
	return et, nil
}

func (b *builder) typeRef(ns, name string, nullable, collection bool) (edm.TypeRef, error) {
	t, err := b.qualify(ns, name)
	if err != nil {
		return edm.TypeRef{}, err
	}
	return edm.TypeRef{Type: t, Nullable: nullable, Collection: collection}, nil
}

func (b *builder) define(s Schema) error {
	for _, t := range s.EntityTypes {
		et := b.entities[s.Namespace+"."+t.Name]
		if t.Base != "" {
			base, err := b.entityType(s.Namespace, t.Base)
			if err != nil {
				return err
			}
			et.SetBaseType(base)
		}

		keys := make(map[string]bool, len(t.Key))
		for _, k := range t.Key {
			keys[k] = true
		}
		for _, p := range t.Properties {
			ref, err := b.typeRef(s.Namespace, p.Type, p.Nullable, p.Collection)
			if err != nil {
				return err
			}
			var prop *edm.Property
			if keys[p.Name] {
				prop = et.AddKeyProperty(p.Name, ref)
				delete(keys, p.Name)
			} else {
				prop = et.AddProperty(p.Name, ref)
			}
			if p.Default != nil {
				prop.SetDefaultValue(*p.Default)
			}
		}
		for _, k := range t.Key {
			if keys[k] {
				return invalid("key %s of %s is not a declared property", k, t.Name)
			}
		}

		for _, n := range t.Navigation {
			if err := b.navigation(s.Namespace, n, et.AddNavigationProperty); err != nil {
				return err
			}
		}
	}

	for _, t := range s.ComplexTypes {
		ct := b.complex[s.Namespace+"."+t.Name]
		if t.Base != "" {
			base, err := b.qualify(s.Namespace, t.Base)
			if err != nil {
				return err
			}
			bc, ok := base.(*edm.ComplexType)
			if !ok {
				return invalid("%s is not a complex type", t.Base)
			}
			ct.SetBaseType(bc)
		}
		if len(t.Key) > 0 {
			return invalid("complex type %s cannot declare a key", t.Name)
		}
		for _, p := range t.Properties {
			ref, err := b.typeRef(s.Namespace, p.Type, p.Nullable, p.Collection)
			if err != nil {
				return err
			}
			prop := ct.AddProperty(p.Name, ref)
			if p.Default != nil {
				prop.SetDefaultValue(*p.Default)
			}
		}
		for _, n := range t.Navigation {
			if err := b.navigation(s.Namespace, n, ct.AddNavigationProperty); err != nil {
				return err
			}
		}
	}
	return nil
}

type addNavigation func(name string, target *edm.EntityType, collection, nullable bool) *edm.NavigationProperty

func (b *builder) navigation(ns string, n Navigation, add addNavigation) error {
	target, err := b.entityType(ns, n.Target)
	if err != nil {
		return err
	}
	add(n.Name, target, n.Collection, n.Nullable).
		SetContainsTarget(n.ContainsTarget).
		SetPartner(n.Partner)
	return nil
}

func (b *builder) operations(schema *edm.Schema, s Schema) error {
	for _, op := range s.Actions {
		if op.Returns != nil {
			return invalid("action %s declares a return type", op.Name)
		}
		action := schema.AddAction(op.Name, op.Bound)
		for _, p := range op.Parameters {
			ref, err := b.typeRef(s.Namespace, p.Type, p.Nullable, p.Collection)
			if err != nil {
				return err
			}
			action.AddParameter(p.Name, ref).SetOptional(p.Optional)
		}
	}

	for _, op := range s.Functions {
		if op.Returns == nil {
			return invalid("function %s has no return type", op.Name)
		}
		ret, err := b.typeRef(s.Namespace, op.Returns.Type, op.Returns.Nullable, op.Returns.Collection)
		if err != nil {
			return err
		}
		function := schema.AddFunction(op.Name, op.Bound, ret).SetComposable(op.Composable)
		for _, p := range op.Parameters {
			ref, err := b.typeRef(s.Namespace, p.Type, p.Nullable, p.Collection)
			if err != nil {
				return err
			}
			function.AddParameter(p.Name, ref).SetOptional(p.Optional)
		}
	}
	return nil
}

func (b *builder) container(c *Container) error {
	if c.Name == "" {
		return invalid("entity container has no name")
	}
	container := b.model.SetContainer(c.Namespace, c.Name)

	for _, s := range c.EntitySets {
		et, err := b.entityType(c.Namespace, s.Type)
		if err != nil {
			return err
		}
		container.AddEntitySet(s.Name, et)
	}
	for _, s := range c.Singletons {
		et, err := b.entityType(c.Namespace, s.Type)
		if err != nil {
			return err
		}
		container.AddSingleton(s.Name, et)
	}

	for _, imp := range c.Imports {
		name := imp.Operation
		if name == "" {
			name = imp.Name
		}
		if !strings.Contains(name, ".") {
			name = c.Namespace + "." + name
		}

		var set *edm.EntitySet
		if imp.EntitySet != "" {
			if set = container.FindEntitySet(imp.EntitySet); set == nil {
				return invalid("import %s names unknown entity set %s", imp.Name, imp.EntitySet)
			}
		}

		op := unboundOperation(b.model.FindOperations(name))
		switch v := op.(type) {
		case *edm.Action:
			container.AddActionImport(imp.Name, v, set)
		case *edm.Function:
			container.AddFunctionImport(imp.Name, v, set)
		default:
			return invalid("import %s names no unbound operation %s", imp.Name, name)
		}
	}
	return nil
}

func unboundOperation(ops []edm.Operation) edm.Operation {
	for _, op := range ops {
		if !op.IsBound() {
			return op
		}
	}
	return nil
}

func (b *builder) annotate(a Annotation) error {
	if a.Term == "" {
		return invalid("annotation on %s has no term", a.Target)
	}
	targets, err := resolveTargets(b.model, a.Target)
	if err != nil {
		return err
	}
	expr, err := Expression(&a.Value)
	if err != nil {
		return invalid("annotation %s on %s: %v", a.Term, a.Target, err)
	}
	for _, t := range targets {
		b.model.Annotate(t, a.Term, expr)
	}
	return nil
}
