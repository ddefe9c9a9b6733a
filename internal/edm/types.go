// Package edm provides the in-memory Entity Data Model consumed by the
// conversion engine. The model is built once and treated as read-only
// afterwards; the engine never mutates it.
package edm

import "strings"

// QualifiedName is a namespace-qualified schema element name
type QualifiedName struct {
	Namespace string
	Name      string
}

// String returns "Namespace.Name", or the bare name when there is no namespace
func (q QualifiedName) String() string {
	if q.Namespace == "" {
		return q.Name
	}
	return q.Namespace + "." + q.Name
}

// Annotatable is any model element that can carry vocabulary annotations.
// Implementations are pointers and are compared by identity.
type Annotatable interface {
	TargetName() string
}

// SchemaElement is a named element declared directly in a schema
type SchemaElement interface {
	Annotatable
	QName() QualifiedName
}

// TypeKind classifies model types
type TypeKind int

const (
	PrimitiveKind TypeKind = iota
	EntityKind
	ComplexKind
	EnumKind
)

// Type is any model type
type Type interface {
	TypeKind() TypeKind
	FullName() string
}

// PrimitiveType is a built-in Edm type such as Edm.String
type PrimitiveType struct {
	name string
}

// TypeKind implements Type
func (*PrimitiveType) TypeKind() TypeKind { return PrimitiveKind }

// FullName implements Type
func (p *PrimitiveType) FullName() string { return "Edm." + p.name }

// Name returns the unqualified primitive name
func (p *PrimitiveType) Name() string { return p.name }

var primitives = map[string]*PrimitiveType{}

func primitive(name string) *PrimitiveType {
	p := &PrimitiveType{name: name}
	primitives[name] = p
	return p
}

// Built-in primitive types
var (
	String         = primitive("String")
	Boolean        = primitive("Boolean")
	Byte           = primitive("Byte")
	Int16          = primitive("Int16")
	Int32          = primitive("Int32")
	Int64          = primitive("Int64")
	Decimal        = primitive("Decimal")
	Double         = primitive("Double")
	Single         = primitive("Single")
	Guid           = primitive("Guid")
	Date           = primitive("Date")
	DateTimeOffset = primitive("DateTimeOffset")
	Duration       = primitive("Duration")
	TimeOfDay      = primitive("TimeOfDay")
	Binary         = primitive("Binary")
	Stream         = primitive("Stream")
)

// LookupPrimitive resolves "Edm.X" or "X" to a built-in primitive type
func LookupPrimitive(name string) (*PrimitiveType, bool) {
	p, ok := primitives[strings.TrimPrefix(name, "Edm.")]
	return p, ok
}

// TypeRef is a reference to a type together with its facets
type TypeRef struct {
	Type       Type
	Nullable   bool
	Collection bool
}

// Ref builds a non-nullable single-valued TypeRef
func Ref(t Type) TypeRef {
	return TypeRef{Type: t}
}

// NullableRef builds a nullable single-valued TypeRef
func NullableRef(t Type) TypeRef {
	return TypeRef{Type: t, Nullable: true}
}

// CollectionRef builds a collection-valued TypeRef
func CollectionRef(t Type) TypeRef {
	return TypeRef{Type: t, Collection: true}
}

// StructuredType is an entity or complex type
type StructuredType interface {
	Type
	SchemaElement
	Base() StructuredType
	DeclaredProperties() []*Property
	DeclaredNavigationProperties() []*NavigationProperty
}

type structured struct {
	namespace  string
	name       string
	abstract   bool
	properties []*Property
	navigation []*NavigationProperty
}

func (s *structured) qname() QualifiedName {
	return QualifiedName{Namespace: s.namespace, Name: s.name}
}

// EntityType is an entity type declared in a schema
type EntityType struct {
	structured
	base *EntityType
	key  []*Property
}

// TypeKind implements Type
func (*EntityType) TypeKind() TypeKind { return EntityKind }

// Name returns the unqualified type name
func (t *EntityType) Name() string { return t.name }

// Namespace returns the declaring schema namespace
func (t *EntityType) Namespace() string { return t.namespace }

// QName implements SchemaElement
func (t *EntityType) QName() QualifiedName { return t.qname() }

// FullName implements Type
func (t *EntityType) FullName() string { return t.qname().String() }

// TargetName implements Annotatable
func (t *EntityType) TargetName() string { return t.FullName() }

// Abstract reports whether the type is abstract
func (t *EntityType) Abstract() bool { return t.abstract }

// SetAbstract marks the type abstract
func (t *EntityType) SetAbstract(abstract bool) { t.abstract = abstract }

// BaseType returns the base entity type or nil
func (t *EntityType) BaseType() *EntityType { return t.base }

// SetBaseType sets the base entity type
func (t *EntityType) SetBaseType(base *EntityType) { t.base = base }

// Base implements StructuredType. It never returns a typed nil.
func (t *EntityType) Base() StructuredType {
	if t.base == nil {
		return nil
	}
	return t.base
}

// DeclaredProperties implements StructuredType
func (t *EntityType) DeclaredProperties() []*Property { return t.properties }

// DeclaredNavigationProperties implements StructuredType
func (t *EntityType) DeclaredNavigationProperties() []*NavigationProperty { return t.navigation }

// AddProperty declares a structural property
func (t *EntityType) AddProperty(name string, typ TypeRef) *Property {
	p := &Property{name: name, typ: typ, declaring: t}
	t.properties = append(t.properties, p)
	return p
}

// AddKeyProperty declares a structural property and appends it to the key
func (t *EntityType) AddKeyProperty(name string, typ TypeRef) *Property {
	p := t.AddProperty(name, typ)
	t.key = append(t.key, p)
	return p
}

// AddNavigationProperty declares a navigation property
func (t *EntityType) AddNavigationProperty(name string, target *EntityType, collection, nullable bool) *NavigationProperty {
	n := &NavigationProperty{name: name, target: target, collection: collection, nullable: nullable, declaring: t}
	t.navigation = append(t.navigation, n)
	return n
}

// DeclaredKey returns the key declared on this type only
func (t *EntityType) DeclaredKey() []*Property { return t.key }

// Key returns the effective key, inherited from the nearest base that declares one
func (t *EntityType) Key() []*Property {
	for cur := t; cur != nil; cur = cur.base {
		if len(cur.key) > 0 {
			return cur.key
		}
	}
	return nil
}

// IsKeyProperty reports whether p is part of the effective key
func (t *EntityType) IsKeyProperty(p *Property) bool {
	for _, k := range t.Key() {
		if k == p {
			return true
		}
	}
	return false
}

// FindProperty looks up a structural property, including inherited ones
func (t *EntityType) FindProperty(name string) *Property {
	return findProperty(t, name)
}

// FindNavigationProperty looks up a navigation property, including inherited ones
func (t *EntityType) FindNavigationProperty(name string) *NavigationProperty {
	return findNavigationProperty(t, name)
}

// ComplexType is a complex type declared in a schema
type ComplexType struct {
	structured
	base *ComplexType
}

// TypeKind implements Type
func (*ComplexType) TypeKind() TypeKind { return ComplexKind }

// Name returns the unqualified type name
func (t *ComplexType) Name() string { return t.name }

// Namespace returns the declaring schema namespace
func (t *ComplexType) Namespace() string { return t.namespace }

// QName implements SchemaElement
func (t *ComplexType) QName() QualifiedName { return t.qname() }

// FullName implements Type
func (t *ComplexType) FullName() string { return t.qname().String() }

// TargetName implements Annotatable
func (t *ComplexType) TargetName() string { return t.FullName() }

// Abstract reports whether the type is abstract
func (t *ComplexType) Abstract() bool { return t.abstract }

// SetAbstract marks the type abstract
func (t *ComplexType) SetAbstract(abstract bool) { t.abstract = abstract }

// BaseType returns the base complex type or nil
func (t *ComplexType) BaseType() *ComplexType { return t.base }

// SetBaseType sets the base complex type
func (t *ComplexType) SetBaseType(base *ComplexType) { t.base = base }

// Base implements StructuredType. It never returns a typed nil.
func (t *ComplexType) Base() StructuredType {
	if t.base == nil {
		return nil
	}
	return t.base
}

// DeclaredProperties implements StructuredType
func (t *ComplexType) DeclaredProperties() []*Property { return t.properties }

// DeclaredNavigationProperties implements StructuredType
func (t *ComplexType) DeclaredNavigationProperties() []*NavigationProperty { return t.navigation }

// AddProperty declares a structural property
func (t *ComplexType) AddProperty(name string, typ TypeRef) *Property {
	p := &Property{name: name, typ: typ, declaring: t}
	t.properties = append(t.properties, p)
	return p
}

// AddNavigationProperty declares a navigation property
func (t *ComplexType) AddNavigationProperty(name string, target *EntityType, collection, nullable bool) *NavigationProperty {
	n := &NavigationProperty{name: name, target: target, collection: collection, nullable: nullable, declaring: t}
	t.navigation = append(t.navigation, n)
	return n
}

// FindProperty looks up a structural property, including inherited ones
func (t *ComplexType) FindProperty(name string) *Property {
	return findProperty(t, name)
}

// FindNavigationProperty looks up a navigation property, including inherited ones
func (t *ComplexType) FindNavigationProperty(name string) *NavigationProperty {
	return findNavigationProperty(t, name)
}

// EnumMember is a named enum value
type EnumMember struct {
	Name  string
	Value int64
}

// EnumType is an enumeration type declared in a schema
type EnumType struct {
	namespace string
	name      string
	flags     bool
	members   []EnumMember
}

// TypeKind implements Type
func (*EnumType) TypeKind() TypeKind { return EnumKind }

// Name returns the unqualified type name
func (t *EnumType) Name() string { return t.name }

// QName implements SchemaElement
func (t *EnumType) QName() QualifiedName { return QualifiedName{Namespace: t.namespace, Name: t.name} }

// FullName implements Type
func (t *EnumType) FullName() string { return t.QName().String() }

// TargetName implements Annotatable
func (t *EnumType) TargetName() string { return t.FullName() }

// IsFlags reports whether members combine as bit flags
func (t *EnumType) IsFlags() bool { return t.flags }

// Members returns the declared members
func (t *EnumType) Members() []EnumMember { return t.members }

// Property is a structural property of an entity or complex type
type Property struct {
	name         string
	typ          TypeRef
	defaultValue *string
	declaring    StructuredType
}

// Name returns the property name
func (p *Property) Name() string { return p.name }

// Type returns the property type reference
func (p *Property) Type() TypeRef { return p.typ }

// DeclaringType returns the type that declares the property
func (p *Property) DeclaringType() StructuredType { return p.declaring }

// TargetName implements Annotatable
func (p *Property) TargetName() string { return p.declaring.FullName() + "/" + p.name }

// DefaultValue returns the declared default value, if any
func (p *Property) DefaultValue() (string, bool) {
	if p.defaultValue == nil {
		return "", false
	}
	return *p.defaultValue, true
}

// SetDefaultValue declares a default value
func (p *Property) SetDefaultValue(v string) *Property {
	p.defaultValue = &v
	return p
}

// ComplexType returns the complex type of the property, or nil for other types
func (p *Property) ComplexType() *ComplexType {
	ct, _ := p.typ.Type.(*ComplexType)
	return ct
}

// Multiplicity is the cardinality of a navigation property target
type Multiplicity int

const (
	MultiplicityOne Multiplicity = iota
	MultiplicityZeroOrOne
	MultiplicityMany
)

// NavigationProperty is a navigation property of an entity or complex type
type NavigationProperty struct {
	name           string
	target         *EntityType
	collection     bool
	nullable       bool
	containsTarget bool
	partner        string
	declaring      StructuredType
}

// Name returns the property name
func (n *NavigationProperty) Name() string { return n.name }

// Target returns the target entity type
func (n *NavigationProperty) Target() *EntityType { return n.target }

// IsCollection reports whether the property targets many entities
func (n *NavigationProperty) IsCollection() bool { return n.collection }

// Nullable reports whether the property type is nullable
func (n *NavigationProperty) Nullable() bool { return n.nullable }

// ContainsTarget reports whether the property is a containment navigation property
func (n *NavigationProperty) ContainsTarget() bool { return n.containsTarget }

// SetContainsTarget marks the property as containment
func (n *NavigationProperty) SetContainsTarget(contains bool) *NavigationProperty {
	n.containsTarget = contains
	return n
}

// Partner returns the partner navigation property name
func (n *NavigationProperty) Partner() string { return n.partner }

// SetPartner sets the partner navigation property name
func (n *NavigationProperty) SetPartner(partner string) *NavigationProperty {
	n.partner = partner
	return n
}

// DeclaringType returns the type that declares the property
func (n *NavigationProperty) DeclaringType() StructuredType { return n.declaring }

// TargetName implements Annotatable
func (n *NavigationProperty) TargetName() string { return n.declaring.FullName() + "/" + n.name }

// TargetMultiplicity returns the cardinality of the target
func (n *NavigationProperty) TargetMultiplicity() Multiplicity {
	switch {
	case n.collection:
		return MultiplicityMany
	case n.nullable:
		return MultiplicityZeroOrOne
	default:
		return MultiplicityOne
	}
}

// AllProperties returns the structural properties of t, base types first
func AllProperties(t StructuredType) []*Property {
	var chain []StructuredType
	for cur := t; cur != nil; cur = cur.Base() {
		chain = append(chain, cur)
	}
	var props []*Property
	for i := len(chain) - 1; i >= 0; i-- {
		props = append(props, chain[i].DeclaredProperties()...)
	}
	return props
}

// AllNavigationProperties returns the navigation properties of t, base types first
func AllNavigationProperties(t StructuredType) []*NavigationProperty {
	var chain []StructuredType
	for cur := t; cur != nil; cur = cur.Base() {
		chain = append(chain, cur)
	}
	var props []*NavigationProperty
	for i := len(chain) - 1; i >= 0; i-- {
		props = append(props, chain[i].DeclaredNavigationProperties()...)
	}
	return props
}

func findProperty(t StructuredType, name string) *Property {
	for cur := t; cur != nil; cur = cur.Base() {
		for _, p := range cur.DeclaredProperties() {
			if p.name == name {
				return p
			}
		}
	}
	return nil
}

func findNavigationProperty(t StructuredType, name string) *NavigationProperty {
	for cur := t; cur != nil; cur = cur.Base() {
		for _, n := range cur.DeclaredNavigationProperties() {
			if n.name == name {
				return n
			}
		}
	}
	return nil
}
