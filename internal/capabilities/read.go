package capabilities

import (
	"slices"

	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/vocabulary"
)

// ReadByKeyRestrictions is the nested record of ReadRestrictions that applies
// to single-entity reads
type ReadByKeyRestrictions struct {
	describable
	Readable vocabulary.Optional[bool]
}

// IsReadable reports whether entities can be read by key. Defaults to true.
func (r *ReadByKeyRestrictions) IsReadable() bool {
	if r == nil {
		return true
	}
	return r.Readable.Or(true)
}

// ReadRestrictions records Capabilities.ReadRestrictions
type ReadRestrictions struct {
	describable
	Readable              vocabulary.Optional[bool]
	ReadByKeyRestrictions *ReadByKeyRestrictions
}

// Kind implements Restriction
func (*ReadRestrictions) Kind() Kind { return KindReadRestrictions }

func (r *ReadRestrictions) decode(expr edm.Expression) bool {
	rec, ok := vocabulary.AsRecord(expr)
	if !ok {
		return false
	}
	r.fillDescriptions(rec)
	r.Readable = vocabulary.Bool(rec, "Readable")
	if nested := vocabulary.Record(rec, "ReadByKeyRestrictions"); nested != nil {
		byKey := &ReadByKeyRestrictions{Readable: vocabulary.Bool(nested, "Readable")}
		byKey.fillDescriptions(nested)
		r.ReadByKeyRestrictions = byKey
	}
	return true
}

// IsReadable reports whether the collection can be read. Defaults to true.
func (r *ReadRestrictions) IsReadable() bool { return r.Readable.Or(true) }

// IsReadableByKey reports whether single entities can be read. The nested
// ReadByKeyRestrictions wins when present.
func (r *ReadRestrictions) IsReadableByKey() bool {
	if r.ReadByKeyRestrictions != nil {
		return r.ReadByKeyRestrictions.IsReadable()
	}
	return r.IsReadable()
}

// ChangeTracking records Capabilities.ChangeTracking
type ChangeTracking struct {
	Supported            vocabulary.Optional[bool]
	FilterableProperties []string
	ExpandableProperties []string
}

// Kind implements Restriction
func (*ChangeTracking) Kind() Kind { return KindChangeTracking }

func (r *ChangeTracking) decode(expr edm.Expression) bool {
	rec, ok := vocabulary.AsRecord(expr)
	if !ok {
		return false
	}
	r.Supported = vocabulary.Bool(rec, "Supported")
	r.FilterableProperties = vocabulary.Paths(rec, "FilterableProperties")
	r.ExpandableProperties = vocabulary.Paths(rec, "ExpandableProperties")
	return true
}

// IsSupported reports whether change tracking is supported. Defaults to true.
func (r *ChangeTracking) IsSupported() bool { return r.Supported.Or(true) }

// IsFilterableProperty reports whether the property can be filtered when tracking changes
func (r *ChangeTracking) IsFilterableProperty(path string) bool {
	return slices.Contains(r.FilterableProperties, path)
}

// IsExpandableProperty reports whether the navigation property can be expanded when tracking changes
func (r *ChangeTracking) IsExpandableProperty(path string) bool {
	return slices.Contains(r.ExpandableProperties, path)
}
