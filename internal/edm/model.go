package edm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Model is an in-memory Entity Data Model.
//
// Every model carries a stable identity assigned at construction. Caches that
// hold per-model results key on ID() rather than on the last model they saw,
// so interleaving work across several models never invalidates anything.
type Model struct {
	id        uuid.UUID
	schemas   []*Schema
	container *EntityContainer

	mu          sync.RWMutex
	annotations map[Annotatable]map[string]Expression
}

// NewModel creates an empty model with a fresh identity
func NewModel() *Model {
	return &Model{
		id:          uuid.New(),
		annotations: make(map[Annotatable]map[string]Expression),
	}
}

// ID returns the model identity
func (m *Model) ID() uuid.UUID { return m.id }

// AddSchema declares a schema. alias may be empty.
func (m *Model) AddSchema(namespace, alias string) *Schema {
	s := &Schema{namespace: namespace, alias: alias, model: m}
	m.schemas = append(m.schemas, s)
	return s
}

// Schemas returns the declared schemas
func (m *Model) Schemas() []*Schema { return m.schemas }

// SetContainer declares the entity container of the model
func (m *Model) SetContainer(namespace, name string) *EntityContainer {
	m.container = &EntityContainer{namespace: namespace, name: name}
	return m.container
}

// Container returns the entity container, or nil
func (m *Model) Container() *EntityContainer { return m.container }

// Annotate attaches a vocabulary annotation to target. A nil value
// denotes a tag annotation applied without an explicit value.
func (m *Model) Annotate(target Annotatable, term string, value Expression) {
	m.mu.Lock()
	defer m.mu.Unlock()

	terms, ok := m.annotations[target]
	if !ok {
		terms = make(map[string]Expression)
		m.annotations[target] = terms
	}
	terms[term] = value
}

// FindAnnotation returns the annotation of term applied to target.
// The returned expression is nil for tag annotations without a value.
func (m *Model) FindAnnotation(target Annotatable, term string) (Expression, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	terms, ok := m.annotations[target]
	if !ok {
		return nil, false
	}
	expr, ok := terms[term]
	return expr, ok
}

// NamespaceAlias returns the alias declared for namespace
func (m *Model) NamespaceAlias(namespace string) (string, bool) {
	for _, s := range m.schemas {
		if s.namespace == namespace && s.alias != "" {
			return s.alias, true
		}
	}
	return "", false
}

// resolveNamespace maps an alias to its namespace; other names pass through
func (m *Model) resolveNamespace(qualifier string) string {
	for _, s := range m.schemas {
		if s.alias != "" && s.alias == qualifier {
			return s.namespace
		}
	}
	return qualifier
}

// FindType resolves a qualified type name. Alias-qualified names and
// "Edm." primitives are accepted.
func (m *Model) FindType(fullName string) (Type, error) {
	if p, ok := LookupPrimitive(fullName); ok && strings.HasPrefix(fullName, "Edm.") {
		return p, nil
	}
	ns, name := splitQualified(fullName)
	ns = m.resolveNamespace(ns)
	for _, s := range m.schemas {
		if s.namespace != ns {
			continue
		}
		for _, t := range s.types {
			if typeName(t) == name {
				return t, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, fullName)
}

// FindStructuredType resolves a qualified entity or complex type name
func (m *Model) FindStructuredType(fullName string) (StructuredType, error) {
	t, err := m.FindType(fullName)
	if err != nil {
		return nil, err
	}
	st, ok := t.(StructuredType)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a structured type", ErrTypeNotFound, fullName)
	}
	return st, nil
}

// FindOperations returns all operations with the given qualified name
func (m *Model) FindOperations(fullName string) []Operation {
	ns, name := splitQualified(fullName)
	ns = m.resolveNamespace(ns)
	var ops []Operation
	for _, s := range m.schemas {
		if s.namespace != ns {
			continue
		}
		for _, op := range s.operations {
			if op.Name() == name {
				ops = append(ops, op)
			}
		}
	}
	return ops
}

// FindBoundOperations returns the operations bound to bindingType. When
// collection is true only operations bound to a collection of the type match.
// Operations bound to a base type of bindingType are included.
func (m *Model) FindBoundOperations(bindingType StructuredType, collection bool) []Operation {
	var ops []Operation
	for _, s := range m.schemas {
		for _, op := range s.operations {
			bp := op.BindingParameter()
			if bp == nil || bp.Type().Collection != collection {
				continue
			}
			for cur := bindingType; cur != nil; cur = cur.Base() {
				if bp.Type().Type == Type(cur) {
					ops = append(ops, op)
					break
				}
			}
		}
	}
	return ops
}

// DerivedTypes returns every structured type that directly or transitively
// derives from base, in declaration order.
func (m *Model) DerivedTypes(base StructuredType) []StructuredType {
	var derived []StructuredType
	for _, s := range m.schemas {
		for _, t := range s.types {
			st, ok := t.(StructuredType)
			if !ok || st == base {
				continue
			}
			for cur := st.Base(); cur != nil; cur = cur.Base() {
				if cur == base {
					derived = append(derived, st)
					break
				}
			}
		}
	}
	return derived
}

// Schema is a namespace of types and operations
type Schema struct {
	namespace  string
	alias      string
	model      *Model
	types      []Type
	operations []Operation
}

// Namespace returns the schema namespace
func (s *Schema) Namespace() string { return s.namespace }

// Alias returns the schema alias, which may be empty
func (s *Schema) Alias() string { return s.alias }

// Types returns the declared types
func (s *Schema) Types() []Type { return s.types }

// Operations returns the declared actions and functions
func (s *Schema) Operations() []Operation { return s.operations }

// AddEntityType declares an entity type. base may be nil.
func (s *Schema) AddEntityType(name string, base *EntityType) *EntityType {
	t := &EntityType{structured: structured{namespace: s.namespace, name: name}, base: base}
	s.types = append(s.types, t)
	return t
}

// AddComplexType declares a complex type. base may be nil.
func (s *Schema) AddComplexType(name string, base *ComplexType) *ComplexType {
	t := &ComplexType{structured: structured{namespace: s.namespace, name: name}, base: base}
	s.types = append(s.types, t)
	return t
}

// AddEnumType declares an enum type. Members of a flags enum get
// successive powers of two, others successive integers.
func (s *Schema) AddEnumType(name string, flags bool, members ...string) *EnumType {
	t := &EnumType{namespace: s.namespace, name: name, flags: flags}
	for i, member := range members {
		value := int64(i)
		if flags {
			value = int64(1) << i
		}
		t.members = append(t.members, EnumMember{Name: member, Value: value})
	}
	s.types = append(s.types, t)
	return t
}

// AddAction declares an action
func (s *Schema) AddAction(name string, bound bool) *Action {
	a := &Action{operation: operation{namespace: s.namespace, name: name, bound: bound}}
	s.operations = append(s.operations, a)
	return a
}

// AddFunction declares a function
func (s *Schema) AddFunction(name string, bound bool, returnType TypeRef) *Function {
	f := &Function{operation: operation{namespace: s.namespace, name: name, bound: bound}, returnType: returnType}
	s.operations = append(s.operations, f)
	return f
}

func splitQualified(fullName string) (string, string) {
	i := strings.LastIndex(fullName, ".")
	if i < 0 {
		return "", fullName
	}
	return fullName[:i], fullName[i+1:]
}

func typeName(t Type) string {
	switch v := t.(type) {
	case *EntityType:
		return v.name
	case *ComplexType:
		return v.name
	case *EnumType:
		return v.name
	case *PrimitiveType:
		return v.name
	default:
		return ""
	}
}
