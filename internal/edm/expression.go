package edm

// ExpressionKind discriminates the shapes a vocabulary annotation value can take
type ExpressionKind int

const (
	ExpressionBoolConstant ExpressionKind = iota
	ExpressionStringConstant
	ExpressionIntConstant
	ExpressionEnumMember
	ExpressionPath
	ExpressionRecord
	ExpressionCollection
)

// String returns the name of the expression kind
func (k ExpressionKind) String() string {
	switch k {
	case ExpressionBoolConstant:
		return "bool"
	case ExpressionStringConstant:
		return "string"
	case ExpressionIntConstant:
		return "int"
	case ExpressionEnumMember:
		return "enum"
	case ExpressionPath:
		return "path"
	case ExpressionRecord:
		return "record"
	case ExpressionCollection:
		return "collection"
	default:
		return "unknown"
	}
}

// Expression is an immutable annotation value
type Expression interface {
	ExpressionKind() ExpressionKind
}

// BoolConstant is a boolean constant expression
type BoolConstant bool

// ExpressionKind implements Expression
func (BoolConstant) ExpressionKind() ExpressionKind { return ExpressionBoolConstant }

// StringConstant is a string constant expression
type StringConstant string

// ExpressionKind implements Expression
func (StringConstant) ExpressionKind() ExpressionKind { return ExpressionStringConstant }

// IntConstant is an integer constant expression
type IntConstant int64

// ExpressionKind implements Expression
func (IntConstant) ExpressionKind() ExpressionKind { return ExpressionIntConstant }

// EnumMemberReference references one or more enum members.
// Members are written "Namespace.EnumType/Member"; several members are
// only meaningful for flag enums.
type EnumMemberReference []string

// ExpressionKind implements Expression
func (EnumMemberReference) ExpressionKind() ExpressionKind { return ExpressionEnumMember }

// EnumMembers builds an EnumMemberReference
func EnumMembers(members ...string) EnumMemberReference {
	return EnumMemberReference(members)
}

// PathExpressionKind distinguishes the flavours of path expressions
type PathExpressionKind int

const (
	PropertyPathKind PathExpressionKind = iota
	NavigationPropertyPathKind
	AnnotationPathKind
)

// PathExpression is a property, navigation property or annotation path
type PathExpression struct {
	PathKind PathExpressionKind
	Value    string
}

// ExpressionKind implements Expression
func (*PathExpression) ExpressionKind() ExpressionKind { return ExpressionPath }

// PropertyPath builds a property path expression
func PropertyPath(path string) *PathExpression {
	return &PathExpression{PathKind: PropertyPathKind, Value: path}
}

// NavigationPropertyPath builds a navigation property path expression
func NavigationPropertyPath(path string) *PathExpression {
	return &PathExpression{PathKind: NavigationPropertyPathKind, Value: path}
}

// PropertyValue is one named field of a record expression
type PropertyValue struct {
	Name  string
	Value Expression
}

// Field builds a PropertyValue
func Field(name string, value Expression) PropertyValue {
	return PropertyValue{Name: name, Value: value}
}

// Record is a record expression: an ordered list of named fields
type Record struct {
	Type       string
	Properties []PropertyValue
}

// NewRecord builds a record expression from fields
func NewRecord(fields ...PropertyValue) *Record {
	return &Record{Properties: fields}
}

// ExpressionKind implements Expression
func (*Record) ExpressionKind() ExpressionKind { return ExpressionRecord }

// Field returns the value of the named field. The first match wins.
func (r *Record) Field(name string) (Expression, bool) {
	if r == nil {
		return nil, false
	}
	for _, p := range r.Properties {
		if p.Name == name {
			return p.Value, p.Value != nil
		}
	}
	return nil, false
}

// Collection is an ordered list of expressions
type Collection []Expression

// ExpressionKind implements Expression
func (Collection) ExpressionKind() ExpressionKind { return ExpressionCollection }
