// Package capabilities turns Capabilities vocabulary annotations into typed
// restriction records and resolves them against a model.
//
// Every record stores the raw decoded fields as vocabulary.Optional values.
// The exported accessors (IsFilterable, IsNavigable, ...) apply the term's
// default, so an absent annotation and an annotation that sets nothing
// read the same way.
package capabilities

import "github.com/conduit-lang/edmoas/internal/edm"

// Restriction is a decoded capability record. The set of implementations is
// closed: one record type per supported Kind.
type Restriction interface {
	Kind() Kind

	// decode fills the record from expr and reports whether expr had the
	// expected shape
	decode(expr edm.Expression) bool
}

// factories maps each kind to a constructor for its empty record. A nil
// entry marks a kind this package deliberately does not decode.
var factories = [kindCount]func() Restriction{
	KindAnnotationValuesInQuerySupported: nil,
	KindBatchSupport:                     nil,
	KindBatchSupported:                   func() Restriction { return new(BatchSupported) },
	KindChangeTracking:                   func() Restriction { return new(ChangeTracking) },
	KindComputeSupported:                 func() Restriction { return new(ComputeSupported) },
	KindConformanceLevel:                 nil,
	KindCountRestrictions:                func() Restriction { return new(CountRestrictions) },
	KindCustomHeaders:                    func() Restriction { return new(CustomHeaders) },
	KindCustomQueryOptions:               func() Restriction { return new(CustomQueryOptions) },
	KindDeepInsertSupport:                func() Restriction { return new(DeepInsertSupport) },
	KindDeepUpdateSupport:                func() Restriction { return new(DeepUpdateSupport) },
	KindDeleteRestrictions:               func() Restriction { return new(DeleteRestrictions) },
	KindExpandRestrictions:               func() Restriction { return new(ExpandRestrictions) },
	KindFilterFunctions:                  func() Restriction { return new(FilterFunctions) },
	KindFilterRestrictions:               func() Restriction { return new(FilterRestrictions) },
	KindIndexableByKey:                   func() Restriction { return new(IndexableByKey) },
	KindInsertRestrictions:               func() Restriction { return new(InsertRestrictions) },
	KindKeyAsSegmentSupported:            func() Restriction { return new(KeyAsSegmentSupported) },
	KindNavigationRestrictions:           func() Restriction { return new(NavigationRestrictions) },
	KindReadRestrictions:                 func() Restriction { return new(ReadRestrictions) },
	KindSearchRestrictions:               func() Restriction { return new(SearchRestrictions) },
	KindSelectSupport:                    nil,
	KindSkipSupported:                    func() Restriction { return new(SkipSupported) },
	KindSortRestrictions:                 func() Restriction { return new(SortRestrictions) },
	KindTopSupported:                     func() Restriction { return new(TopSupported) },
	KindUpdateRestrictions:               func() Restriction { return new(UpdateRestrictions) },
}

// New returns an empty record of the given kind. Every accessor of an
// empty record returns the term's default.
func New(kind Kind) (Restriction, error) {
	if !kind.Supported() {
		return nil, &UnsupportedKindError{Kind: kind}
	}
	return factories[kind](), nil
}

// Build decodes expr into a record of the given kind. It returns a nil
// record when expr does not have the shape the term expects; callers then
// behave as if the annotation were absent.
func Build(kind Kind, expr edm.Expression) (Restriction, error) {
	r, err := New(kind)
	if err != nil {
		return nil, err
	}
	if !r.decode(expr) {
		return nil, nil
	}
	return r, nil
}

// Builder builds restriction records from annotation expressions
type Builder interface {
	Build(kind Kind, expr edm.Expression) (Restriction, error)
}

// BuilderFunc adapts a function to the Builder interface
type BuilderFunc func(kind Kind, expr edm.Expression) (Restriction, error)

// Build implements Builder
func (f BuilderFunc) Build(kind Kind, expr edm.Expression) (Restriction, error) {
	return f(kind, expr)
}

// DefaultBuilder decodes records with Build
var DefaultBuilder Builder = BuilderFunc(Build)
