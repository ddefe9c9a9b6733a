package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/edmoas/internal/edm"
)

type testFlags uint8

const (
	flagA testFlags = 1 << iota
	flagB
	flagC
)

var testMembers = map[string]testFlags{"A": flagA, "B": flagB, "C": flagC}

func TestBool(t *testing.T) {
	rec := edm.NewRecord(
		edm.Field("On", edm.BoolConstant(true)),
		edm.Field("Off", edm.BoolConstant(false)),
		edm.Field("Text", edm.StringConstant("true")),
	)

	v, ok := Bool(rec, "On").Get()
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = Bool(rec, "Off").Get()
	assert.True(t, ok)
	assert.False(t, v)

	assert.False(t, Bool(rec, "Missing").IsSet())
	assert.False(t, Bool(rec, "Text").IsSet(), "shape mismatch decodes as absent")
	assert.False(t, Bool(nil, "On").IsSet())
}

func TestStringIntPath(t *testing.T) {
	rec := edm.NewRecord(
		edm.Field("Description", edm.StringConstant("people")),
		edm.Field("MaxLevels", edm.IntConstant(3)),
		edm.Field("NavigationProperty", edm.NavigationPropertyPath("friends")),
	)

	assert.Equal(t, "people", String(rec, "Description").Or(""))
	assert.Equal(t, int64(3), Int(rec, "MaxLevels").Or(-1))
	assert.Equal(t, "friends", Path(rec, "NavigationProperty").Or(""))

	assert.Equal(t, int64(-1), Int(rec, "Description").Or(-1))
	assert.False(t, Path(rec, "Description").IsSet())
}

func TestPathsAndStrings(t *testing.T) {
	rec := edm.NewRecord(
		edm.Field("Props", edm.Collection{
			edm.PropertyPath("Name"),
			edm.StringConstant("skipped"),
			edm.PropertyPath("Address/City"),
		}),
		edm.Field("Names", edm.Collection{edm.StringConstant("a"), edm.StringConstant("b")}),
		edm.Field("NotCollection", edm.BoolConstant(true)),
	)

	assert.Equal(t, []string{"Name", "Address/City"}, Paths(rec, "Props"))
	assert.Equal(t, []string{"a", "b"}, Strings(rec, "Names"))
	assert.Nil(t, Paths(rec, "NotCollection"))
	assert.Nil(t, Paths(rec, "Missing"))
}

func TestRecordField(t *testing.T) {
	inner := edm.NewRecord(edm.Field("Readable", edm.BoolConstant(false)))
	rec := edm.NewRecord(
		edm.Field("ReadByKeyRestrictions", inner),
		edm.Field("Flag", edm.BoolConstant(true)),
	)

	assert.Same(t, inner, Record(rec, "ReadByKeyRestrictions"))
	assert.Nil(t, Record(rec, "Flag"))
	assert.Nil(t, Record(rec, "Missing"))
}

func TestFlags(t *testing.T) {
	tests := []struct {
		name  string
		value edm.Expression
		want  testFlags
		isSet bool
	}{
		{"single member", edm.EnumMembers("NS.Flags/A"), flagA, true},
		{"several members", edm.EnumMembers("NS.Flags/A", "NS.Flags/C"), flagA | flagC, true},
		{"space separated", edm.EnumMembers("NS.Flags/A NS.Flags/B"), flagA | flagB, true},
		{"unqualified", edm.EnumMembers("B"), flagB, true},
		{"unknown dropped", edm.EnumMembers("NS.Flags/A", "NS.Flags/Unknown", "NS.Flags/B"), flagA | flagB, true},
		{"only unknown", edm.EnumMembers("NS.Flags/Unknown"), 0, false},
		{"wrong shape", edm.StringConstant("A"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := edm.NewRecord(edm.Field("F", tt.value))
			got, ok := Flags(rec, "F", testMembers).Get()
			assert.Equal(t, tt.isSet, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSingle(t *testing.T) {
	rec := edm.NewRecord(edm.Field("F", edm.EnumMembers("NS.Flags/Unknown", "NS.Flags/B", "NS.Flags/C")))

	got, ok := Single(rec, "F", testMembers).Get()
	require.True(t, ok)
	assert.Equal(t, flagB, got)
}

func TestOptional(t *testing.T) {
	var unset Optional[int]
	assert.False(t, unset.IsSet())
	assert.Equal(t, 7, unset.Or(7))

	set := Some(0)
	assert.True(t, set.IsSet())
	assert.Equal(t, 0, set.Or(7), "an explicit zero value is not replaced by the fallback")

	v, ok := None[string]().Get()
	assert.False(t, ok)
	assert.Empty(t, v)
}
