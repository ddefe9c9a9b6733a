// Package vocabulary decodes vocabulary annotation expressions into typed
// values. A missing or mis-shaped field is never an error: the accessor
// returns an unset Optional (or nil slice) and the caller applies its default.
package vocabulary

import (
	"strings"

	"github.com/conduit-lang/edmoas/internal/edm"
)

// Enum is the underlying shape of enum and flag-enum values
type Enum interface {
	~int | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// AsRecord returns expr as a record expression
func AsRecord(expr edm.Expression) (*edm.Record, bool) {
	rec, ok := expr.(*edm.Record)
	return rec, ok && rec != nil
}

// Bool decodes a boolean constant field
func Bool(rec *edm.Record, field string) Optional[bool] {
	v, ok := rec.Field(field)
	if !ok {
		return None[bool]()
	}
	b, ok := v.(edm.BoolConstant)
	if !ok {
		return None[bool]()
	}
	return Some(bool(b))
}

// String decodes a string constant field
func String(rec *edm.Record, field string) Optional[string] {
	v, ok := rec.Field(field)
	if !ok {
		return None[string]()
	}
	s, ok := v.(edm.StringConstant)
	if !ok {
		return None[string]()
	}
	return Some(string(s))
}

// Int decodes an integer constant field
func Int(rec *edm.Record, field string) Optional[int64] {
	v, ok := rec.Field(field)
	if !ok {
		return None[int64]()
	}
	i, ok := v.(edm.IntConstant)
	if !ok {
		return None[int64]()
	}
	return Some(int64(i))
}

// Path decodes a single path field
func Path(rec *edm.Record, field string) Optional[string] {
	v, ok := rec.Field(field)
	if !ok {
		return None[string]()
	}
	p, ok := v.(*edm.PathExpression)
	if !ok || p == nil {
		return None[string]()
	}
	return Some(p.Value)
}

// Paths decodes a collection of paths. Non-path elements are skipped.
// It returns nil when the field is absent or not a collection.
func Paths(rec *edm.Record, field string) []string {
	coll := Collection(rec, field)
	if coll == nil {
		return nil
	}
	paths := make([]string, 0, len(coll))
	for _, item := range coll {
		if p, ok := item.(*edm.PathExpression); ok && p != nil {
			paths = append(paths, p.Value)
		}
	}
	return paths
}

// Strings decodes a collection of string constants. Other elements are skipped.
func Strings(rec *edm.Record, field string) []string {
	return StringsOf(Collection(rec, field))
}

// StringsOf returns the string constants of coll
func StringsOf(coll edm.Collection) []string {
	if coll == nil {
		return nil
	}
	values := make([]string, 0, len(coll))
	for _, item := range coll {
		if s, ok := item.(edm.StringConstant); ok {
			values = append(values, string(s))
		}
	}
	return values
}

// Record decodes a nested record field
func Record(rec *edm.Record, field string) *edm.Record {
	v, ok := rec.Field(field)
	if !ok {
		return nil
	}
	nested, ok := AsRecord(v)
	if !ok {
		return nil
	}
	return nested
}

// Collection decodes a collection field
func Collection(rec *edm.Record, field string) edm.Collection {
	v, ok := rec.Field(field)
	if !ok {
		return nil
	}
	coll, ok := v.(edm.Collection)
	if !ok {
		return nil
	}
	return coll
}

// Flags decodes an enum-member field into a flag value. Members combine
// with bitwise OR. A member missing from members is dropped so that newer
// vocabularies with additional members still decode; the result is unset
// only when no member is recognized.
func Flags[E Enum](rec *edm.Record, field string, members map[string]E) Optional[E] {
	v, ok := rec.Field(field)
	if !ok {
		return None[E]()
	}
	return FlagsOf(v, members)
}

// FlagsOf decodes an enum-member expression into a flag value
func FlagsOf[E Enum](expr edm.Expression, members map[string]E) Optional[E] {
	refs, ok := expr.(edm.EnumMemberReference)
	if !ok {
		return None[E]()
	}
	var result E
	recognized := false
	for _, ref := range refs {
		for _, name := range strings.Fields(ref) {
			value, known := members[memberName(name)]
			if !known {
				continue
			}
			result |= value
			recognized = true
		}
	}
	if !recognized {
		return None[E]()
	}
	return Some(result)
}

// Single decodes a non-flag enum-member field. The first recognized member wins.
func Single[E Enum](rec *edm.Record, field string, members map[string]E) Optional[E] {
	v, ok := rec.Field(field)
	if !ok {
		return None[E]()
	}
	refs, ok := v.(edm.EnumMemberReference)
	if !ok {
		return None[E]()
	}
	for _, ref := range refs {
		for _, name := range strings.Fields(ref) {
			if value, known := members[memberName(name)]; known {
				return Some(value)
			}
		}
	}
	return None[E]()
}

// memberName strips the "Namespace.EnumType/" qualifier from a member reference
func memberName(ref string) string {
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
