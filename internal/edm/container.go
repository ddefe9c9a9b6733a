package edm

// NavigationSourceKind distinguishes entity sets from singletons
type NavigationSourceKind int

const (
	EntitySetSource NavigationSourceKind = iota
	SingletonSource
)

// String returns the name of the navigation source kind
func (k NavigationSourceKind) String() string {
	if k == SingletonSource {
		return "singleton"
	}
	return "entitySet"
}

// NavigationSource is an entity set or singleton
type NavigationSource interface {
	Annotatable
	Name() string
	SourceKind() NavigationSourceKind
	EntityType() *EntityType
	Container() *EntityContainer
}

// EntityContainer groups the addressable entry points of a service
type EntityContainer struct {
	namespace  string
	name       string
	entitySets []*EntitySet
	singletons []*Singleton
	imports    []*OperationImport
}

// Name returns the container name
func (c *EntityContainer) Name() string { return c.name }

// QName returns the qualified container name
func (c *EntityContainer) QName() QualifiedName {
	return QualifiedName{Namespace: c.namespace, Name: c.name}
}

// TargetName implements Annotatable
func (c *EntityContainer) TargetName() string { return c.QName().String() }

// EntitySets returns the declared entity sets
func (c *EntityContainer) EntitySets() []*EntitySet { return c.entitySets }

// Singletons returns the declared singletons
func (c *EntityContainer) Singletons() []*Singleton { return c.singletons }

// OperationImports returns the declared action and function imports
func (c *EntityContainer) OperationImports() []*OperationImport { return c.imports }

// AddEntitySet declares an entity set
func (c *EntityContainer) AddEntitySet(name string, typ *EntityType) *EntitySet {
	s := &EntitySet{name: name, typ: typ, container: c}
	c.entitySets = append(c.entitySets, s)
	return s
}

// AddSingleton declares a singleton
func (c *EntityContainer) AddSingleton(name string, typ *EntityType) *Singleton {
	s := &Singleton{name: name, typ: typ, container: c}
	c.singletons = append(c.singletons, s)
	return s
}

// AddActionImport declares an action import
func (c *EntityContainer) AddActionImport(name string, action *Action, set *EntitySet) *OperationImport {
	i := &OperationImport{name: name, operation: action, entitySet: set, container: c}
	c.imports = append(c.imports, i)
	return i
}

// AddFunctionImport declares a function import
func (c *EntityContainer) AddFunctionImport(name string, function *Function, set *EntitySet) *OperationImport {
	i := &OperationImport{name: name, operation: function, entitySet: set, container: c}
	c.imports = append(c.imports, i)
	return i
}

// FindEntitySet looks up an entity set by name
func (c *EntityContainer) FindEntitySet(name string) *EntitySet {
	for _, s := range c.entitySets {
		if s.name == name {
			return s
		}
	}
	return nil
}

// FindSingleton looks up a singleton by name
func (c *EntityContainer) FindSingleton(name string) *Singleton {
	for _, s := range c.singletons {
		if s.name == name {
			return s
		}
	}
	return nil
}

// FindNavigationSource looks up an entity set or singleton by name.
// It never returns a typed nil.
func (c *EntityContainer) FindNavigationSource(name string) NavigationSource {
	if s := c.FindEntitySet(name); s != nil {
		return s
	}
	if s := c.FindSingleton(name); s != nil {
		return s
	}
	return nil
}

// FindOperationImport looks up an operation import by name
func (c *EntityContainer) FindOperationImport(name string) *OperationImport {
	for _, i := range c.imports {
		if i.name == name {
			return i
		}
	}
	return nil
}

// EntitySet is a collection-valued navigation source
type EntitySet struct {
	name      string
	typ       *EntityType
	container *EntityContainer
}

// Name implements NavigationSource
func (s *EntitySet) Name() string { return s.name }

// SourceKind implements NavigationSource
func (*EntitySet) SourceKind() NavigationSourceKind { return EntitySetSource }

// EntityType implements NavigationSource
func (s *EntitySet) EntityType() *EntityType { return s.typ }

// Container implements NavigationSource
func (s *EntitySet) Container() *EntityContainer { return s.container }

// TargetName implements Annotatable
func (s *EntitySet) TargetName() string { return s.container.TargetName() + "/" + s.name }

// Singleton is a single-valued navigation source
type Singleton struct {
	name      string
	typ       *EntityType
	container *EntityContainer
}

// Name implements NavigationSource
func (s *Singleton) Name() string { return s.name }

// SourceKind implements NavigationSource
func (*Singleton) SourceKind() NavigationSourceKind { return SingletonSource }

// EntityType implements NavigationSource
func (s *Singleton) EntityType() *EntityType { return s.typ }

// Container implements NavigationSource
func (s *Singleton) Container() *EntityContainer { return s.container }

// TargetName implements Annotatable
func (s *Singleton) TargetName() string { return s.container.TargetName() + "/" + s.name }

// OperationImport exposes an unbound action or function in the container
type OperationImport struct {
	name      string
	operation Operation
	entitySet *EntitySet
	container *EntityContainer
}

// Name returns the import name
func (i *OperationImport) Name() string { return i.name }

// Operation returns the imported operation
func (i *OperationImport) Operation() Operation { return i.operation }

// IsActionImport reports whether the import exposes an action
func (i *OperationImport) IsActionImport() bool { return i.operation.IsAction() }

// EntitySet returns the entity set of the result, or nil
func (i *OperationImport) EntitySet() *EntitySet { return i.entitySet }

// Container returns the declaring container
func (i *OperationImport) Container() *EntityContainer { return i.container }

// TargetName implements Annotatable
func (i *OperationImport) TargetName() string { return i.container.TargetName() + "/" + i.name }
