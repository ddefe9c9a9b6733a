package capabilities

import (
	"slices"

	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/vocabulary"
)

// describable holds the Description/LongDescription fields shared by the
// modification and read restriction records
type describable struct {
	Description     vocabulary.Optional[string]
	LongDescription vocabulary.Optional[string]
}

func (d *describable) fillDescriptions(rec *edm.Record) {
	d.Description = vocabulary.String(rec, "Description")
	d.LongDescription = vocabulary.String(rec, "LongDescription")
}

// DescriptionOrDefault returns the description, or "" when absent
func (d *describable) DescriptionOrDefault() string { return d.Description.Or("") }

// LongDescriptionOrDefault returns the long description, or "" when absent
func (d *describable) LongDescriptionOrDefault() string { return d.LongDescription.Or("") }

// InsertRestrictions records Capabilities.InsertRestrictions
type InsertRestrictions struct {
	describable
	Insertable                        vocabulary.Optional[bool]
	NonInsertableProperties           []string
	NonInsertableNavigationProperties []string
	MaxLevels                         vocabulary.Optional[int64]
}

// Kind implements Restriction
func (*InsertRestrictions) Kind() Kind { return KindInsertRestrictions }

func (r *InsertRestrictions) decode(expr edm.Expression) bool {
	rec, ok := vocabulary.AsRecord(expr)
	if !ok {
		return false
	}
	r.fillDescriptions(rec)
	r.Insertable = vocabulary.Bool(rec, "Insertable")
	r.NonInsertableProperties = vocabulary.Paths(rec, "NonInsertableProperties")
	r.NonInsertableNavigationProperties = vocabulary.Paths(rec, "NonInsertableNavigationProperties")
	r.MaxLevels = vocabulary.Int(rec, "MaxLevels")
	return true
}

// IsInsertable reports whether entities can be created. Defaults to true.
func (r *InsertRestrictions) IsInsertable() bool { return r.Insertable.Or(true) }

// IsNonInsertableProperty reports whether the property cannot be set on insert
func (r *InsertRestrictions) IsNonInsertableProperty(path string) bool {
	return slices.Contains(r.NonInsertableProperties, path)
}

// IsNonInsertableNavigationProperty reports whether entities cannot be inserted through the navigation property
func (r *InsertRestrictions) IsNonInsertableNavigationProperty(path string) bool {
	return slices.Contains(r.NonInsertableNavigationProperties, path)
}

// HTTPMethod is the flag enum Capabilities.HttpMethod used by UpdateRestrictions
type HTTPMethod uint8

const (
	MethodPATCH HTTPMethod = 1 << iota
	MethodPUT
)

var httpMethodMembers = map[string]HTTPMethod{
	"PATCH": MethodPATCH,
	"PUT":   MethodPUT,
}

// UpdateRestrictions records Capabilities.UpdateRestrictions
type UpdateRestrictions struct {
	describable
	Updatable                        vocabulary.Optional[bool]
	Upsertable                       vocabulary.Optional[bool]
	DeltaUpdateSupported             vocabulary.Optional[bool]
	UpdateMethod                     vocabulary.Optional[HTTPMethod]
	NonUpdatableProperties           []string
	NonUpdatableNavigationProperties []string
	MaxLevels                        vocabulary.Optional[int64]
}

// Kind implements Restriction
func (*UpdateRestrictions) Kind() Kind { return KindUpdateRestrictions }

func (r *UpdateRestrictions) decode(expr edm.Expression) bool {
	rec, ok := vocabulary.AsRecord(expr)
	if !ok {
		return false
	}
	r.fillDescriptions(rec)
	r.Updatable = vocabulary.Bool(rec, "Updatable")
	r.Upsertable = vocabulary.Bool(rec, "Upsertable")
	r.DeltaUpdateSupported = vocabulary.Bool(rec, "DeltaUpdateSupported")
	r.UpdateMethod = vocabulary.Flags(rec, "UpdateMethod", httpMethodMembers)
	r.NonUpdatableProperties = vocabulary.Paths(rec, "NonUpdatableProperties")
	r.NonUpdatableNavigationProperties = vocabulary.Paths(rec, "NonUpdatableNavigationProperties")
	r.MaxLevels = vocabulary.Int(rec, "MaxLevels")
	return true
}

// IsUpdatable reports whether entities can be updated. Defaults to true.
func (r *UpdateRestrictions) IsUpdatable() bool { return r.Updatable.Or(true) }

// IsUpsertable reports whether updates may create missing entities. Defaults to false.
func (r *UpdateRestrictions) IsUpsertable() bool { return r.Upsertable.Or(false) }

// IsDeltaUpdateSupported reports whether delta payloads are accepted. Defaults to false.
func (r *UpdateRestrictions) IsDeltaUpdateSupported() bool { return r.DeltaUpdateSupported.Or(false) }

// IsUpdateMethodPut reports whether PUT is the preferred update method.
// PATCH is assumed when the method is not annotated.
func (r *UpdateRestrictions) IsUpdateMethodPut() bool {
	return r.UpdateMethod.Or(MethodPATCH)&MethodPUT != 0
}

// IsNonUpdatableProperty reports whether the property cannot be changed
func (r *UpdateRestrictions) IsNonUpdatableProperty(path string) bool {
	return slices.Contains(r.NonUpdatableProperties, path)
}

// IsNonUpdatableNavigationProperty reports whether the navigation property cannot be changed
func (r *UpdateRestrictions) IsNonUpdatableNavigationProperty(path string) bool {
	return slices.Contains(r.NonUpdatableNavigationProperties, path)
}

// DeleteRestrictions records Capabilities.DeleteRestrictions
type DeleteRestrictions struct {
	describable
	Deletable                        vocabulary.Optional[bool]
	NonDeletableNavigationProperties []string
	MaxLevels                        vocabulary.Optional[int64]
}

// Kind implements Restriction
func (*DeleteRestrictions) Kind() Kind { return KindDeleteRestrictions }

func (r *DeleteRestrictions) decode(expr edm.Expression) bool {
	rec, ok := vocabulary.AsRecord(expr)
	if !ok {
		return false
	}
	r.fillDescriptions(rec)
	r.Deletable = vocabulary.Bool(rec, "Deletable")
	r.NonDeletableNavigationProperties = vocabulary.Paths(rec, "NonDeletableNavigationProperties")
	r.MaxLevels = vocabulary.Int(rec, "MaxLevels")
	return true
}

// IsDeletable reports whether entities can be deleted. Defaults to true.
func (r *DeleteRestrictions) IsDeletable() bool { return r.Deletable.Or(true) }

// IsNonDeletableNavigationProperty reports whether entities cannot be deleted through the navigation property
func (r *DeleteRestrictions) IsNonDeletableNavigationProperty(path string) bool {
	return slices.Contains(r.NonDeletableNavigationProperties, path)
}

// deepModification is the shape shared by DeepInsertSupport and DeepUpdateSupport
type deepModification struct {
	Supported          vocabulary.Optional[bool]
	ContentIDSupported vocabulary.Optional[bool]
}

func (d *deepModification) decode(expr edm.Expression) bool {
	rec, ok := vocabulary.AsRecord(expr)
	if !ok {
		return false
	}
	d.Supported = vocabulary.Bool(rec, "Supported")
	d.ContentIDSupported = vocabulary.Bool(rec, "ContentIDSupported")
	return true
}

// IsSupported reports whether deep modification is supported. Defaults to true.
func (d *deepModification) IsSupported() bool { return d.Supported.Or(true) }

// IsContentIDSupported reports whether Content-ID references are supported. Defaults to true.
func (d *deepModification) IsContentIDSupported() bool { return d.ContentIDSupported.Or(true) }

// DeepInsertSupport records Capabilities.DeepInsertSupport
type DeepInsertSupport struct{ deepModification }

// Kind implements Restriction
func (*DeepInsertSupport) Kind() Kind { return KindDeepInsertSupport }

// DeepUpdateSupport records Capabilities.DeepUpdateSupport
type DeepUpdateSupport struct{ deepModification }

// Kind implements Restriction
func (*DeepUpdateSupport) Kind() Kind { return KindDeepUpdateSupport }
