package vocabulary

import "github.com/conduit-lang/edmoas/internal/edm"

// Core vocabulary terms consulted by the decision functions
const (
	CoreNamespace                 = "Org.OData.Core.V1"
	CoreComputed                  = CoreNamespace + ".Computed"
	CoreImmutable                 = CoreNamespace + ".Immutable"
	CoreOptionalParameter         = CoreNamespace + ".OptionalParameter"
	CoreRequiresExplicitBinding   = CoreNamespace + ".RequiresExplicitBinding"
	CoreExplicitOperationBindings = CoreNamespace + ".ExplicitOperationBindings"
	CoreDescription               = CoreNamespace + ".Description"
	CoreLongDescription           = CoreNamespace + ".LongDescription"
)

// Tag reports whether a tag term applies to target. A tag applied without a
// value counts as true; a non-boolean value is treated as absent.
func Tag(model *edm.Model, target edm.Annotatable, term string) bool {
	expr, ok := model.FindAnnotation(target, term)
	if !ok {
		return false
	}
	if expr == nil {
		return true
	}
	b, ok := expr.(edm.BoolConstant)
	return ok && bool(b)
}

// IsComputed reports whether a property is read-only (Core.Computed)
func IsComputed(model *edm.Model, target edm.Annotatable) bool {
	return Tag(model, target, CoreComputed)
}

// IsImmutable reports whether a property can only be set on insert (Core.Immutable)
func IsImmutable(model *edm.Model, target edm.Annotatable) bool {
	return Tag(model, target, CoreImmutable)
}

// RequiresExplicitBinding reports whether an operation may only be bound to
// targets that list it in Core.ExplicitOperationBindings
func RequiresExplicitBinding(model *edm.Model, op edm.Operation) bool {
	return Tag(model, op, CoreRequiresExplicitBinding)
}

// ExplicitOperationBindings returns the qualified operation names listed on target
func ExplicitOperationBindings(model *edm.Model, target edm.Annotatable) []string {
	expr, ok := model.FindAnnotation(target, CoreExplicitOperationBindings)
	if !ok {
		return nil
	}
	coll, ok := expr.(edm.Collection)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(coll))
	for _, item := range coll {
		switch v := item.(type) {
		case edm.StringConstant:
			names = append(names, string(v))
		case *edm.PathExpression:
			if v != nil {
				names = append(names, v.Value)
			}
		}
	}
	return names
}

// IsOptionalParameter reports whether a parameter carries Core.OptionalParameter
func IsOptionalParameter(model *edm.Model, param *edm.Parameter) bool {
	expr, ok := model.FindAnnotation(param, CoreOptionalParameter)
	if !ok {
		return false
	}
	if expr == nil {
		return true
	}
	_, isRecord := AsRecord(expr)
	return isRecord
}

// Description returns the Core.Description of target
func Description(model *edm.Model, target edm.Annotatable) Optional[string] {
	return stringTerm(model, target, CoreDescription)
}

// LongDescription returns the Core.LongDescription of target
func LongDescription(model *edm.Model, target edm.Annotatable) Optional[string] {
	return stringTerm(model, target, CoreLongDescription)
}

func stringTerm(model *edm.Model, target edm.Annotatable, term string) Optional[string] {
	expr, ok := model.FindAnnotation(target, term)
	if !ok {
		return None[string]()
	}
	s, ok := expr.(edm.StringConstant)
	if !ok {
		return None[string]()
	}
	return Some(string(s))
}
