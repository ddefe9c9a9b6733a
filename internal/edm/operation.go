package edm

// Operation is an action or a function
type Operation interface {
	SchemaElement
	Name() string
	Namespace() string
	FullName() string
	IsAction() bool
	IsBound() bool
	Parameters() []*Parameter
	BindingParameter() *Parameter
}

// Parameter is an operation parameter
type Parameter struct {
	name      string
	typ       TypeRef
	optional  bool
	operation Operation
}

// Name returns the parameter name
func (p *Parameter) Name() string { return p.name }

// Type returns the parameter type reference
func (p *Parameter) Type() TypeRef { return p.typ }

// Optional reports whether the parameter is declared optional
func (p *Parameter) Optional() bool { return p.optional }

// SetOptional declares the parameter optional
func (p *Parameter) SetOptional(optional bool) *Parameter {
	p.optional = optional
	return p
}

// Operation returns the declaring operation
func (p *Parameter) Operation() Operation { return p.operation }

// TargetName implements Annotatable
func (p *Parameter) TargetName() string { return p.operation.FullName() + "/" + p.name }

type operation struct {
	namespace  string
	name       string
	bound      bool
	parameters []*Parameter
}

func (o *operation) Name() string      { return o.name }
func (o *operation) Namespace() string { return o.namespace }
func (o *operation) IsBound() bool     { return o.bound }

func (o *operation) QName() QualifiedName {
	return QualifiedName{Namespace: o.namespace, Name: o.name}
}

func (o *operation) FullName() string   { return o.QName().String() }
func (o *operation) TargetName() string { return o.FullName() }

func (o *operation) Parameters() []*Parameter { return o.parameters }

// BindingParameter returns the first parameter of a bound operation
func (o *operation) BindingParameter() *Parameter {
	if !o.bound || len(o.parameters) == 0 {
		return nil
	}
	return o.parameters[0]
}

// Action is an operation with side effects, invoked with POST
type Action struct {
	operation
}

// IsAction implements Operation
func (*Action) IsAction() bool { return true }

// AddParameter declares a parameter. For a bound action the first
// parameter is the binding parameter.
func (a *Action) AddParameter(name string, typ TypeRef) *Parameter {
	p := &Parameter{name: name, typ: typ, operation: a}
	a.parameters = append(a.parameters, p)
	return p
}

// Function is a side-effect free operation, invoked with GET
type Function struct {
	operation
	returnType TypeRef
	composable bool
}

// IsAction implements Operation
func (*Function) IsAction() bool { return false }

// ReturnType returns the function return type
func (f *Function) ReturnType() TypeRef { return f.returnType }

// Composable reports whether the function result can be further composed
func (f *Function) Composable() bool { return f.composable }

// SetComposable marks the function composable
func (f *Function) SetComposable(composable bool) *Function {
	f.composable = composable
	return f
}

// AddParameter declares a parameter. For a bound function the first
// parameter is the binding parameter.
func (f *Function) AddParameter(name string, typ TypeRef) *Parameter {
	p := &Parameter{name: name, typ: typ, operation: f}
	f.parameters = append(f.parameters, p)
	return p
}

// NonBindingParameters returns the parameters of op other than the binding parameter
func NonBindingParameters(op Operation) []*Parameter {
	params := op.Parameters()
	if op.IsBound() && len(params) > 0 {
		return params[1:]
	}
	return params
}
