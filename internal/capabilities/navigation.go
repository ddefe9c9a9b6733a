package capabilities

import (
	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/vocabulary"
)

// NavigationType is the enum Capabilities.NavigationType
type NavigationType uint8

const (
	NavigationRecursive NavigationType = iota
	NavigationSingle
	NavigationNone
)

var navigationTypeMembers = map[string]NavigationType{
	"Recursive": NavigationRecursive,
	"Single":    NavigationSingle,
	"None":      NavigationNone,
}

// String returns the vocabulary member name
func (n NavigationType) String() string {
	switch n {
	case NavigationSingle:
		return "Single"
	case NavigationNone:
		return "None"
	default:
		return "Recursive"
	}
}

// NavigationPropertyRestriction is one entry of
// NavigationRestrictions.RestrictedProperties
type NavigationPropertyRestriction struct {
	NavigationProperty vocabulary.Optional[string]
	Navigability       vocabulary.Optional[NavigationType]
	FilterRestrictions *FilterRestrictions
	SortRestrictions   *SortRestrictions
	SearchRestrictions *SearchRestrictions
	CountRestrictions  *CountRestrictions
	TopSupported       vocabulary.Optional[bool]
	SkipSupported      vocabulary.Optional[bool]
}

// IsNavigable reports whether the property allows navigation
func (p *NavigationPropertyRestriction) IsNavigable() bool {
	return p.Navigability.Or(NavigationRecursive) != NavigationNone
}

// IsTopSupported reports whether $top is supported. Defaults to true.
func (p *NavigationPropertyRestriction) IsTopSupported() bool { return p.TopSupported.Or(true) }

// IsSkipSupported reports whether $skip is supported. Defaults to true.
func (p *NavigationPropertyRestriction) IsSkipSupported() bool { return p.SkipSupported.Or(true) }

// NavigationRestrictions records Capabilities.NavigationRestrictions
type NavigationRestrictions struct {
	Navigability         vocabulary.Optional[NavigationType]
	RestrictedProperties []NavigationPropertyRestriction
}

// Kind implements Restriction
func (*NavigationRestrictions) Kind() Kind { return KindNavigationRestrictions }

func (r *NavigationRestrictions) decode(expr edm.Expression) bool {
	rec, ok := vocabulary.AsRecord(expr)
	if !ok {
		return false
	}
	r.Navigability = vocabulary.Single(rec, "Navigability", navigationTypeMembers)
	for _, item := range vocabulary.Collection(rec, "RestrictedProperties") {
		propRec, ok := vocabulary.AsRecord(item)
		if !ok {
			continue
		}
		r.RestrictedProperties = append(r.RestrictedProperties, decodeNavigationPropertyRestriction(propRec))
	}
	return true
}

func decodeNavigationPropertyRestriction(rec *edm.Record) NavigationPropertyRestriction {
	p := NavigationPropertyRestriction{
		NavigationProperty: vocabulary.Path(rec, "NavigationProperty"),
		Navigability:       vocabulary.Single(rec, "Navigability", navigationTypeMembers),
		TopSupported:       vocabulary.Bool(rec, "TopSupported"),
		SkipSupported:      vocabulary.Bool(rec, "SkipSupported"),
	}
	if nested := vocabulary.Record(rec, "FilterRestrictions"); nested != nil {
		p.FilterRestrictions = new(FilterRestrictions)
		p.FilterRestrictions.fill(nested)
	}
	if nested := vocabulary.Record(rec, "SortRestrictions"); nested != nil {
		p.SortRestrictions = new(SortRestrictions)
		p.SortRestrictions.fill(nested)
	}
	if nested := vocabulary.Record(rec, "SearchRestrictions"); nested != nil {
		p.SearchRestrictions = new(SearchRestrictions)
		p.SearchRestrictions.fill(nested)
	}
	if nested := vocabulary.Record(rec, "CountRestrictions"); nested != nil {
		p.CountRestrictions = new(CountRestrictions)
		p.CountRestrictions.fill(nested)
	}
	return p
}

// IsNavigable reports whether the container-level navigability allows
// navigation. Defaults to Recursive.
func (r *NavigationRestrictions) IsNavigable() bool {
	return r.Navigability.Or(NavigationRecursive) != NavigationNone
}

// RestrictionFor returns the restricted-property entry for a navigation
// property path such as "friends" or "friends/photos", or nil
func (r *NavigationRestrictions) RestrictionFor(navigationPropertyPath string) *NavigationPropertyRestriction {
	if r == nil {
		return nil
	}
	for i := range r.RestrictedProperties {
		if path, ok := r.RestrictedProperties[i].NavigationProperty.Get(); ok && path == navigationPropertyPath {
			return &r.RestrictedProperties[i]
		}
	}
	return nil
}
