// Package rules holds the decisions taken for each path: whether a
// navigation is exposed, whether a bound operation applies to a target and
// whether a request body must be sent.
package rules

import (
	"strings"

	"github.com/conduit-lang/edmoas/internal/capabilities"
	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/paths"
	"github.com/conduit-lang/edmoas/internal/vocabulary"
)

// NavigabilityAllows decides navigability from the container-level
// NavigationRestrictions record and the restricted-property entry for the
// navigation property. Either may be nil.
//
// An override entry, when present, decides alone: an entry whose
// Navigability is unset allows navigation even if the container says None.
func NavigabilityAllows(container *capabilities.NavigationRestrictions, override *capabilities.NavigationPropertyRestriction) bool {
	if override != nil {
		return override.IsNavigable()
	}
	if container != nil {
		return container.IsNavigable()
	}
	return true
}

// IsNavigationPropertyNavigable resolves the NavigationRestrictions of
// source and decides whether navigationPropertyPath (e.g. "friends/photos")
// may be navigated
func IsNavigationPropertyNavigable(resolver *capabilities.Resolver, model *edm.Model, source edm.NavigationSource, navigationPropertyPath string) (bool, error) {
	if source == nil {
		return false, edm.NilArgument("source")
	}
	rec, err := resolver.Resolve(model, source, capabilities.KindNavigationRestrictions)
	if err != nil {
		return false, err
	}
	container, _ := rec.(*capabilities.NavigationRestrictions)
	return NavigabilityAllows(container, container.RestrictionFor(navigationPropertyPath)), nil
}

// IsPathNavigable checks every navigation hop of p against the navigation
// restrictions of its root. The property path up to and including each
// navigation property segment must be navigable, so a restricted
// intermediate hop blocks everything reached through it. Paths without a
// navigation property, or not rooted at an entity set or singleton, are
// always navigable.
func IsPathNavigable(resolver *capabilities.Resolver, model *edm.Model, p *paths.Path) (bool, error) {
	if p == nil {
		return false, edm.NilArgument("path")
	}
	root := p.NavigationSource()
	if root == nil || p.LastNavigationProperty() == nil {
		return true, nil
	}
	var names []string
	for _, s := range p.Segments()[1:] {
		switch s.(type) {
		case *paths.ComplexPropertySegment:
			names = append(names, s.Identifier())
		case *paths.NavigationPropertySegment:
			names = append(names, s.Identifier())
			ok, err := IsNavigationPropertyNavigable(resolver, model, root.NavigationSource(), strings.Join(names, "/"))
			if err != nil || !ok {
				return false, err
			}
		}
	}
	return true, nil
}

// OperationBindingAllowed reports whether op may be exposed on target. An
// operation tagged Core.RequiresExplicitBinding is only allowed when target
// lists it in Core.ExplicitOperationBindings.
func OperationBindingAllowed(model *edm.Model, op edm.Operation, target edm.Annotatable) bool {
	if !vocabulary.RequiresExplicitBinding(model, op) {
		return true
	}
	for _, name := range vocabulary.ExplicitOperationBindings(model, target) {
		if name == op.FullName() {
			return true
		}
		for _, candidate := range model.FindOperations(name) {
			if candidate == op {
				return true
			}
		}
	}
	return false
}

// ActionRequestBodyRequired reports whether invoking action needs a body.
// The body is optional only when there is at least one non-binding
// parameter and every one of them is nullable or optional.
func ActionRequestBodyRequired(model *edm.Model, action edm.Operation) bool {
	params := edm.NonBindingParameters(action)
	if len(params) == 0 {
		return true
	}
	for _, p := range params {
		if !IsParameterOptional(model, p) {
			return true
		}
	}
	return false
}

// IsParameterOptional reports whether a parameter may be omitted: its type
// is nullable, it is declared optional or it carries Core.OptionalParameter
func IsParameterOptional(model *edm.Model, p *edm.Parameter) bool {
	return p.Type().Nullable || p.Optional() || vocabulary.IsOptionalParameter(model, p)
}

// StructuredTypeRequestBodyRequired reports whether creating (update false)
// or updating (update true) an instance of st needs a body. Inherited
// structural and navigation properties are considered; computed properties
// are skipped, as are key properties on update. A type with nothing left to
// send does not require a body.
func StructuredTypeRequestBodyRequired(model *edm.Model, st edm.StructuredType, update bool) bool {
	entity, _ := st.(*edm.EntityType)

	for _, prop := range edm.AllProperties(st) {
		if update && entity != nil && entity.IsKeyProperty(prop) {
			continue
		}
		if vocabulary.IsComputed(model, prop) {
			continue
		}
		if _, hasDefault := prop.DefaultValue(); !hasDefault && !prop.Type().Nullable {
			return true
		}
	}

	for _, nav := range edm.AllNavigationProperties(st) {
		if vocabulary.IsComputed(model, nav) {
			continue
		}
		if !nav.Nullable() {
			return true
		}
	}
	return false
}
