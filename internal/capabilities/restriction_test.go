package capabilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/edmoas/internal/edm"
)

func TestSupportedKinds(t *testing.T) {
	kinds := []Kind{
		KindBatchSupported,
		KindTopSupported,
		KindSkipSupported,
		KindKeyAsSegmentSupported,
		KindIndexableByKey,
		KindComputeSupported,
	}

	type supportedRecord interface {
		Restriction
		IsSupported() bool
	}

	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			empty, err := New(kind)
			require.NoError(t, err)
			assert.True(t, empty.(supportedRecord).IsSupported(), "absent annotation defaults to true")

			rec, err := Build(kind, edm.BoolConstant(false))
			require.NoError(t, err)
			require.NotNil(t, rec)
			assert.False(t, rec.(supportedRecord).IsSupported())

			rec, err = Build(kind, edm.BoolConstant(true))
			require.NoError(t, err)
			assert.True(t, rec.(supportedRecord).IsSupported())

			rec, err = Build(kind, nil)
			require.NoError(t, err)
			assert.True(t, rec.(supportedRecord).IsSupported(), "tag without value")

			rec, err = Build(kind, edm.NewRecord(edm.Field("Supported", edm.BoolConstant(false))))
			require.NoError(t, err)
			assert.Nil(t, rec, "record-shaped value is malformed for a boolean term")
		})
	}
}

func TestQueryRestrictionDefaults(t *testing.T) {
	assert.True(t, new(FilterRestrictions).IsFilterable())
	assert.False(t, new(FilterRestrictions).IsRequiresFilter())
	assert.Equal(t, int64(-1), new(FilterRestrictions).MaxLevelsOrDefault())
	assert.True(t, new(SortRestrictions).IsSortable())
	assert.True(t, new(SearchRestrictions).IsSearchable())
	assert.False(t, new(SearchRestrictions).IsUnsupported(SearchAND))
	assert.True(t, new(CountRestrictions).IsCountable())
	assert.True(t, new(ExpandRestrictions).IsExpandable())
	assert.True(t, new(FilterFunctions).Supports("contains"))
}

func TestModificationRestrictionDefaults(t *testing.T) {
	assert.True(t, new(InsertRestrictions).IsInsertable())
	assert.True(t, new(UpdateRestrictions).IsUpdatable())
	assert.False(t, new(UpdateRestrictions).IsUpsertable())
	assert.False(t, new(UpdateRestrictions).IsUpdateMethodPut())
	assert.True(t, new(DeleteRestrictions).IsDeletable())
	assert.True(t, new(ReadRestrictions).IsReadable())
	assert.True(t, new(ReadRestrictions).IsReadableByKey())
	assert.True(t, new(ChangeTracking).IsSupported())
	assert.True(t, new(DeepInsertSupport).IsSupported())
	assert.True(t, new(DeepUpdateSupport).IsContentIDSupported())
	assert.True(t, new(NavigationRestrictions).IsNavigable())
}

func TestFilterRestrictionsRoundTrip(t *testing.T) {
	expr := edm.NewRecord(
		edm.Field("Filterable", edm.BoolConstant(false)),
		edm.Field("RequiresFilter", edm.BoolConstant(true)),
		edm.Field("RequiredProperties", edm.Collection{edm.PropertyPath("Id")}),
		edm.Field("NonFilterableProperties", edm.Collection{edm.PropertyPath("Photo"), edm.PropertyPath("Notes")}),
		edm.Field("MaxLevels", edm.IntConstant(2)),
	)

	rec, err := Build(KindFilterRestrictions, expr)
	require.NoError(t, err)
	filter := rec.(*FilterRestrictions)

	assert.False(t, filter.IsFilterable(), "explicit value wins over the default")
	assert.True(t, filter.IsRequiresFilter())
	assert.True(t, filter.IsRequiredProperty("Id"))
	assert.True(t, filter.IsNonFilterableProperty("Notes"))
	assert.False(t, filter.IsNonFilterableProperty("Name"))
	assert.Equal(t, int64(2), filter.MaxLevelsOrDefault())

	raw, set := filter.Filterable.Get()
	assert.True(t, set, "record keeps the raw value")
	assert.False(t, raw)
}

func TestPartialRecordKeepsDefaults(t *testing.T) {
	rec, err := Build(KindUpdateRestrictions, edm.NewRecord(
		edm.Field("Description", edm.StringConstant("Update a person")),
	))
	require.NoError(t, err)
	update := rec.(*UpdateRestrictions)

	assert.True(t, update.IsUpdatable(), "field absent from present annotation uses the default")
	assert.False(t, update.Updatable.IsSet())
	assert.Equal(t, "Update a person", update.DescriptionOrDefault())
	assert.Empty(t, update.LongDescriptionOrDefault())
}

func TestMalformedShapeIsAbsent(t *testing.T) {
	rec, err := Build(KindSortRestrictions, edm.BoolConstant(false))
	require.NoError(t, err)
	assert.Nil(t, rec)

	rec, err = Build(KindCustomHeaders, edm.NewRecord())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestSearchRestrictionsFlags(t *testing.T) {
	rec, err := Build(KindSearchRestrictions, edm.NewRecord(
		edm.Field("Searchable", edm.BoolConstant(true)),
		edm.Field("UnsupportedExpressions", edm.EnumMembers(
			"Org.OData.Capabilities.V1.SearchExpressions/AND",
			"Org.OData.Capabilities.V1.SearchExpressions/fuzzy",
			"Org.OData.Capabilities.V1.SearchExpressions/phrase",
		)),
	))
	require.NoError(t, err)
	search := rec.(*SearchRestrictions)

	unsupported, ok := search.UnsupportedExpressions.Get()
	require.True(t, ok)
	assert.Equal(t, SearchAND|SearchPhrase, unsupported, "unknown member is dropped, known members are kept")
	assert.True(t, search.IsUnsupported(SearchAND))
	assert.True(t, search.IsUnsupported(SearchAND|SearchPhrase))
	assert.False(t, search.IsUnsupported(SearchOR))
}

func TestUpdateMethod(t *testing.T) {
	rec, err := Build(KindUpdateRestrictions, edm.NewRecord(
		edm.Field("UpdateMethod", edm.EnumMembers("Org.OData.Capabilities.V1.HttpMethod/PUT")),
		edm.Field("NonUpdatableNavigationProperties", edm.Collection{edm.NavigationPropertyPath("photos")}),
	))
	require.NoError(t, err)
	update := rec.(*UpdateRestrictions)

	assert.True(t, update.IsUpdateMethodPut())
	assert.True(t, update.IsNonUpdatableNavigationProperty("photos"))
}

func TestReadRestrictions(t *testing.T) {
	rec, err := Build(KindReadRestrictions, edm.NewRecord(
		edm.Field("Readable", edm.BoolConstant(true)),
		edm.Field("ReadByKeyRestrictions", edm.NewRecord(
			edm.Field("Readable", edm.BoolConstant(false)),
			edm.Field("Description", edm.StringConstant("Get a person")),
		)),
	))
	require.NoError(t, err)
	read := rec.(*ReadRestrictions)

	assert.True(t, read.IsReadable())
	assert.False(t, read.IsReadableByKey())
	assert.Equal(t, "Get a person", read.ReadByKeyRestrictions.DescriptionOrDefault())
}

func TestNavigationRestrictions(t *testing.T) {
	rec, err := Build(KindNavigationRestrictions, edm.NewRecord(
		edm.Field("Navigability", edm.EnumMembers("Org.OData.Capabilities.V1.NavigationType/Single")),
		edm.Field("RestrictedProperties", edm.Collection{
			edm.NewRecord(
				edm.Field("NavigationProperty", edm.NavigationPropertyPath("friends")),
				edm.Field("Navigability", edm.EnumMembers("Org.OData.Capabilities.V1.NavigationType/None")),
				edm.Field("TopSupported", edm.BoolConstant(false)),
				edm.Field("FilterRestrictions", edm.NewRecord(edm.Field("Filterable", edm.BoolConstant(false)))),
			),
			edm.NewRecord(
				edm.Field("NavigationProperty", edm.NavigationPropertyPath("photos")),
			),
			edm.BoolConstant(true),
		}),
	))
	require.NoError(t, err)
	nav := rec.(*NavigationRestrictions)

	assert.True(t, nav.IsNavigable(), "Single still allows navigation")
	require.Len(t, nav.RestrictedProperties, 2)

	friends := nav.RestrictionFor("friends")
	require.NotNil(t, friends)
	assert.False(t, friends.IsNavigable())
	assert.False(t, friends.IsTopSupported())
	assert.True(t, friends.IsSkipSupported())
	require.NotNil(t, friends.FilterRestrictions)
	assert.False(t, friends.FilterRestrictions.IsFilterable())
	assert.Nil(t, friends.SortRestrictions)

	photos := nav.RestrictionFor("photos")
	require.NotNil(t, photos)
	assert.True(t, photos.IsNavigable())
	assert.False(t, photos.Navigability.IsSet())

	assert.Nil(t, nav.RestrictionFor("trips"))
	assert.Nil(t, (*NavigationRestrictions)(nil).RestrictionFor("friends"))
}

func TestCustomHeaders(t *testing.T) {
	rec, err := Build(KindCustomHeaders, edm.Collection{
		edm.NewRecord(
			edm.Field("Name", edm.StringConstant("X-Tenant")),
			edm.Field("Required", edm.BoolConstant(true)),
			edm.Field("ExampleValues", edm.Collection{
				edm.NewRecord(edm.Field("Value", edm.StringConstant("contoso"))),
			}),
		),
		edm.NewRecord(edm.Field("Name", edm.StringConstant("X-Trace"))),
	})
	require.NoError(t, err)
	headers := rec.(*CustomHeaders)

	require.Len(t, headers.Parameters, 2)
	assert.Equal(t, "X-Tenant", headers.Parameters[0].Name.Or(""))
	assert.True(t, headers.Parameters[0].IsRequired())
	require.Len(t, headers.Parameters[0].ExampleValues, 1)
	assert.Equal(t, "contoso", headers.Parameters[0].ExampleValues[0].Value.Or(""))
	assert.False(t, headers.Parameters[1].IsRequired())
}

func TestFilterFunctions(t *testing.T) {
	rec, err := Build(KindFilterFunctions, edm.Collection{edm.StringConstant("contains"), edm.StringConstant("startswith")})
	require.NoError(t, err)
	fns := rec.(*FilterFunctions)

	assert.True(t, fns.Supports("contains"))
	assert.False(t, fns.Supports("endswith"))
}
