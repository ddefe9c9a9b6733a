package capabilities

import (
	"slices"

	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/vocabulary"
)

// FilterRestrictions records Capabilities.FilterRestrictions
type FilterRestrictions struct {
	Filterable              vocabulary.Optional[bool]
	RequiresFilter          vocabulary.Optional[bool]
	RequiredProperties      []string
	NonFilterableProperties []string
	MaxLevels               vocabulary.Optional[int64]
}

// Kind implements Restriction
func (*FilterRestrictions) Kind() Kind { return KindFilterRestrictions }

func (r *FilterRestrictions) decode(expr edm.Expression) bool {
	rec, ok := vocabulary.AsRecord(expr)
	if !ok {
		return false
	}
	r.fill(rec)
	return true
}

func (r *FilterRestrictions) fill(rec *edm.Record) {
	r.Filterable = vocabulary.Bool(rec, "Filterable")
	r.RequiresFilter = vocabulary.Bool(rec, "RequiresFilter")
	r.RequiredProperties = vocabulary.Paths(rec, "RequiredProperties")
	r.NonFilterableProperties = vocabulary.Paths(rec, "NonFilterableProperties")
	r.MaxLevels = vocabulary.Int(rec, "MaxLevels")
}

// IsFilterable reports whether $filter is supported. Defaults to true.
func (r *FilterRestrictions) IsFilterable() bool { return r.Filterable.Or(true) }

// IsRequiresFilter reports whether $filter is mandatory. Defaults to false.
func (r *FilterRestrictions) IsRequiresFilter() bool { return r.RequiresFilter.Or(false) }

// IsRequiredProperty reports whether the property must appear in $filter
func (r *FilterRestrictions) IsRequiredProperty(path string) bool {
	return slices.Contains(r.RequiredProperties, path)
}

// IsNonFilterableProperty reports whether the property cannot be used in $filter
func (r *FilterRestrictions) IsNonFilterableProperty(path string) bool {
	return slices.Contains(r.NonFilterableProperties, path)
}

// MaxLevelsOrDefault returns the maximum path depth, -1 meaning unlimited
func (r *FilterRestrictions) MaxLevelsOrDefault() int64 { return r.MaxLevels.Or(-1) }

// SortRestrictions records Capabilities.SortRestrictions
type SortRestrictions struct {
	Sortable                 vocabulary.Optional[bool]
	AscendingOnlyProperties  []string
	DescendingOnlyProperties []string
	NonSortableProperties    []string
}

// Kind implements Restriction
func (*SortRestrictions) Kind() Kind { return KindSortRestrictions }

func (r *SortRestrictions) decode(expr edm.Expression) bool {
	rec, ok := vocabulary.AsRecord(expr)
	if !ok {
		return false
	}
	r.fill(rec)
	return true
}

func (r *SortRestrictions) fill(rec *edm.Record) {
	r.Sortable = vocabulary.Bool(rec, "Sortable")
	r.AscendingOnlyProperties = vocabulary.Paths(rec, "AscendingOnlyProperties")
	r.DescendingOnlyProperties = vocabulary.Paths(rec, "DescendingOnlyProperties")
	r.NonSortableProperties = vocabulary.Paths(rec, "NonSortableProperties")
}

// IsSortable reports whether $orderby is supported. Defaults to true.
func (r *SortRestrictions) IsSortable() bool { return r.Sortable.Or(true) }

// IsAscendingOnlyProperty reports whether the property can only be sorted ascending
func (r *SortRestrictions) IsAscendingOnlyProperty(path string) bool {
	return slices.Contains(r.AscendingOnlyProperties, path)
}

// IsDescendingOnlyProperty reports whether the property can only be sorted descending
func (r *SortRestrictions) IsDescendingOnlyProperty(path string) bool {
	return slices.Contains(r.DescendingOnlyProperties, path)
}

// IsNonSortableProperty reports whether the property cannot be used in $orderby
func (r *SortRestrictions) IsNonSortableProperty(path string) bool {
	return slices.Contains(r.NonSortableProperties, path)
}

// SearchExpressions is the flag enum Capabilities.SearchExpressions
type SearchExpressions uint8

const (
	SearchNone   SearchExpressions = 0
	SearchAND    SearchExpressions = 1
	SearchOR     SearchExpressions = 2
	SearchNOT    SearchExpressions = 4
	SearchPhrase SearchExpressions = 8
	SearchGroup  SearchExpressions = 16
)

var searchExpressionMembers = map[string]SearchExpressions{
	"none":   SearchNone,
	"AND":    SearchAND,
	"OR":     SearchOR,
	"NOT":    SearchNOT,
	"phrase": SearchPhrase,
	"group":  SearchGroup,
}

// SearchRestrictions records Capabilities.SearchRestrictions
type SearchRestrictions struct {
	Searchable             vocabulary.Optional[bool]
	UnsupportedExpressions vocabulary.Optional[SearchExpressions]
}

// Kind implements Restriction
func (*SearchRestrictions) Kind() Kind { return KindSearchRestrictions }

func (r *SearchRestrictions) decode(expr edm.Expression) bool {
	rec, ok := vocabulary.AsRecord(expr)
	if !ok {
		return false
	}
	r.fill(rec)
	return true
}

func (r *SearchRestrictions) fill(rec *edm.Record) {
	r.Searchable = vocabulary.Bool(rec, "Searchable")
	r.UnsupportedExpressions = vocabulary.Flags(rec, "UnsupportedExpressions", searchExpressionMembers)
}

// IsSearchable reports whether $search is supported. Defaults to true.
func (r *SearchRestrictions) IsSearchable() bool { return r.Searchable.Or(true) }

// IsUnsupported reports whether every expression in expressions is unsupported
func (r *SearchRestrictions) IsUnsupported(expressions SearchExpressions) bool {
	unsupported := r.UnsupportedExpressions.Or(SearchNone)
	return expressions != SearchNone && unsupported&expressions == expressions
}

// CountRestrictions records Capabilities.CountRestrictions
type CountRestrictions struct {
	Countable                        vocabulary.Optional[bool]
	NonCountableProperties           []string
	NonCountableNavigationProperties []string
}

// Kind implements Restriction
func (*CountRestrictions) Kind() Kind { return KindCountRestrictions }

func (r *CountRestrictions) decode(expr edm.Expression) bool {
	rec, ok := vocabulary.AsRecord(expr)
	if !ok {
		return false
	}
	r.fill(rec)
	return true
}

func (r *CountRestrictions) fill(rec *edm.Record) {
	r.Countable = vocabulary.Bool(rec, "Countable")
	r.NonCountableProperties = vocabulary.Paths(rec, "NonCountableProperties")
	r.NonCountableNavigationProperties = vocabulary.Paths(rec, "NonCountableNavigationProperties")
}

// IsCountable reports whether $count is supported. Defaults to true.
func (r *CountRestrictions) IsCountable() bool { return r.Countable.Or(true) }

// IsNonCountableProperty reports whether /$count is unsupported on the collection property
func (r *CountRestrictions) IsNonCountableProperty(path string) bool {
	return slices.Contains(r.NonCountableProperties, path)
}

// IsNonCountableNavigationProperty reports whether /$count is unsupported on the navigation property
func (r *CountRestrictions) IsNonCountableNavigationProperty(path string) bool {
	return slices.Contains(r.NonCountableNavigationProperties, path)
}

// ExpandRestrictions records Capabilities.ExpandRestrictions
type ExpandRestrictions struct {
	Expandable              vocabulary.Optional[bool]
	NonExpandableProperties []string
	MaxLevels               vocabulary.Optional[int64]
}

// Kind implements Restriction
func (*ExpandRestrictions) Kind() Kind { return KindExpandRestrictions }

func (r *ExpandRestrictions) decode(expr edm.Expression) bool {
	rec, ok := vocabulary.AsRecord(expr)
	if !ok {
		return false
	}
	r.Expandable = vocabulary.Bool(rec, "Expandable")
	r.NonExpandableProperties = vocabulary.Paths(rec, "NonExpandableProperties")
	r.MaxLevels = vocabulary.Int(rec, "MaxLevels")
	return true
}

// IsExpandable reports whether $expand is supported. Defaults to true.
func (r *ExpandRestrictions) IsExpandable() bool { return r.Expandable.Or(true) }

// IsNonExpandableProperty reports whether the navigation property cannot be expanded
func (r *ExpandRestrictions) IsNonExpandableProperty(path string) bool {
	return slices.Contains(r.NonExpandableProperties, path)
}

// MaxLevelsOrDefault returns the maximum expand depth, -1 meaning unlimited
func (r *ExpandRestrictions) MaxLevelsOrDefault() int64 { return r.MaxLevels.Or(-1) }

// FilterFunctions records Capabilities.FilterFunctions, a collection of
// supported function names
type FilterFunctions struct {
	Functions vocabulary.Optional[[]string]
}

// Kind implements Restriction
func (*FilterFunctions) Kind() Kind { return KindFilterFunctions }

func (r *FilterFunctions) decode(expr edm.Expression) bool {
	coll, ok := expr.(edm.Collection)
	if !ok {
		return false
	}
	r.Functions = vocabulary.Some(vocabulary.StringsOf(coll))
	return true
}

// Supports reports whether fn may be used in $filter. Without an
// annotation every function is assumed supported.
func (r *FilterFunctions) Supports(fn string) bool {
	functions, ok := r.Functions.Get()
	if !ok {
		return true
	}
	return slices.Contains(functions, fn)
}
