package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/edmoas/internal/capabilities"
	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/paths"
	"github.com/conduit-lang/edmoas/internal/vocabulary"
)

const navigationType = "Org.OData.Capabilities.V1.NavigationType/"

func navigationRestrictions(t *testing.T, expr edm.Expression) *capabilities.NavigationRestrictions {
	t.Helper()
	rec, err := capabilities.Build(capabilities.KindNavigationRestrictions, expr)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return rec.(*capabilities.NavigationRestrictions)
}

func TestNavigabilityAllows(t *testing.T) {
	none := navigationRestrictions(t, edm.NewRecord(
		edm.Field("Navigability", edm.EnumMembers(navigationType+"None")),
		edm.Field("RestrictedProperties", edm.Collection{
			edm.NewRecord(
				edm.Field("NavigationProperty", edm.NavigationPropertyPath("friends")),
				edm.Field("Navigability", edm.EnumMembers(navigationType+"Recursive")),
			),
			edm.NewRecord(
				edm.Field("NavigationProperty", edm.NavigationPropertyPath("photos")),
				edm.Field("TopSupported", edm.BoolConstant(false)),
			),
		}),
	))
	recursive := navigationRestrictions(t, edm.NewRecord(
		edm.Field("RestrictedProperties", edm.Collection{
			edm.NewRecord(
				edm.Field("NavigationProperty", edm.NavigationPropertyPath("trips")),
				edm.Field("Navigability", edm.EnumMembers(navigationType+"None")),
			),
		}),
	))

	tests := []struct {
		name      string
		container *capabilities.NavigationRestrictions
		property  string
		want      bool
	}{
		{"no annotation at all", nil, "friends", true},
		{"container None without override", none, "trips", false},
		{"override Recursive beats container None", none, "friends", true},
		{"override without navigability beats container None", none, "photos", true},
		{"override None beats container default", recursive, "trips", false},
		{"container default without override", recursive, "friends", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NavigabilityAllows(tt.container, tt.container.RestrictionFor(tt.property))
			assert.Equal(t, tt.want, got)
		})
	}
}

type fixture struct {
	model    *edm.Model
	schema   *edm.Schema
	person   *edm.EntityType
	employee *edm.EntityType
	people   *edm.EntitySet
}

func newFixture() fixture {
	m := edm.NewModel()
	s := m.AddSchema("Trips", "t")
	person := s.AddEntityType("Person", nil)
	person.AddKeyProperty("UserName", edm.Ref(edm.String))
	person.AddNavigationProperty("friends", person, true, false)
	person.AddNavigationProperty("photos", person, true, false)
	employee := s.AddEntityType("Employee", person)

	c := m.SetContainer("Trips", "Container")
	people := c.AddEntitySet("People", person)
	return fixture{model: m, schema: s, person: person, employee: employee, people: people}
}

func TestIsNavigationPropertyNavigable(t *testing.T) {
	f := newFixture()
	resolver := capabilities.NewResolver()

	ok, err := IsNavigationPropertyNavigable(resolver, f.model, f.people, "friends")
	require.NoError(t, err)
	assert.True(t, ok, "no annotation means navigable")

	// annotation on the entity type applies through the entity set
	f.model.Annotate(f.person, capabilities.KindNavigationRestrictions.Term(), edm.NewRecord(
		edm.Field("RestrictedProperties", edm.Collection{
			edm.NewRecord(
				edm.Field("NavigationProperty", edm.NavigationPropertyPath("photos")),
				edm.Field("Navigability", edm.EnumMembers(navigationType+"None")),
			),
		}),
	))
	resolver = capabilities.NewResolver()

	ok, err = IsNavigationPropertyNavigable(resolver, f.model, f.people, "photos")
	require.NoError(t, err)
	assert.False(t, ok)

	p := paths.MustParse(f.model, "/People/{UserName}/photos")
	ok, err = IsPathNavigable(resolver, f.model, p)
	require.NoError(t, err)
	assert.False(t, ok)

	p = paths.MustParse(f.model, "/People/{UserName}/friends")
	ok, err = IsPathNavigable(resolver, f.model, p)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsPathNavigable(resolver, f.model, paths.MustParse(f.model, "/People"))
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = IsNavigationPropertyNavigable(resolver, nil, f.people, "photos")
	assert.ErrorIs(t, err, edm.ErrNilArgument)
	_, err = IsNavigationPropertyNavigable(resolver, f.model, nil, "photos")
	assert.ErrorIs(t, err, edm.ErrNilArgument)
}

func TestIsPathNavigableChecksEveryHop(t *testing.T) {
	f := newFixture()
	f.model.Annotate(f.people, capabilities.KindNavigationRestrictions.Term(), edm.NewRecord(
		edm.Field("RestrictedProperties", edm.Collection{
			edm.NewRecord(
				edm.Field("NavigationProperty", edm.NavigationPropertyPath("photos")),
				edm.Field("Navigability", edm.EnumMembers(navigationType+"None")),
			),
		}),
	))
	resolver := capabilities.NewResolver()

	tests := []struct {
		path string
		want bool
	}{
		{"/People/{UserName}/photos", false},
		{"/People/{UserName}/photos/{UserName}/friends", false},
		{"/People/{UserName}/photos/{UserName}/friends/{UserName}/friends", false},
		{"/People/{UserName}/friends/{UserName}/photos", true},
		{"/People/{UserName}/friends/{UserName}/friends", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			ok, err := IsPathNavigable(resolver, f.model, paths.MustParse(f.model, tt.path))
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestOperationBindingAllowed(t *testing.T) {
	f := newFixture()

	free := f.schema.AddAction("Promote", true)
	free.AddParameter("person", edm.Ref(f.person))

	explicit := f.schema.AddAction("Fire", true)
	explicit.AddParameter("person", edm.Ref(f.person))
	f.model.Annotate(explicit, vocabulary.CoreRequiresExplicitBinding, nil)

	assert.True(t, OperationBindingAllowed(f.model, free, f.person))
	assert.False(t, OperationBindingAllowed(f.model, explicit, f.person))

	f.model.Annotate(f.employee, vocabulary.CoreExplicitOperationBindings, edm.Collection{
		edm.StringConstant("Trips.Fire"),
	})
	assert.True(t, OperationBindingAllowed(f.model, explicit, f.employee))
	assert.False(t, OperationBindingAllowed(f.model, explicit, f.person))

	f.model.Annotate(f.person, vocabulary.CoreExplicitOperationBindings, edm.Collection{
		edm.StringConstant("t.Fire"),
	})
	assert.True(t, OperationBindingAllowed(f.model, explicit, f.person), "alias-qualified names match")

	f.model.Annotate(explicit, vocabulary.CoreRequiresExplicitBinding, edm.BoolConstant(false))
	assert.True(t, OperationBindingAllowed(f.model, explicit, f.people))
}

func TestActionRequestBodyRequired(t *testing.T) {
	f := newFixture()

	required := f.schema.AddAction("Rate", true)
	required.AddParameter("person", edm.Ref(f.person))
	required.AddParameter("stars", edm.Ref(edm.Int32))
	assert.True(t, ActionRequestBodyRequired(f.model, required))

	nullable := f.schema.AddAction("Comment", true)
	nullable.AddParameter("person", edm.Ref(f.person))
	nullable.AddParameter("text", edm.NullableRef(edm.String))
	assert.False(t, ActionRequestBodyRequired(f.model, nullable))

	declared := f.schema.AddAction("Reset", false)
	declared.AddParameter("hard", edm.Ref(edm.Boolean)).SetOptional(true)
	assert.False(t, ActionRequestBodyRequired(f.model, declared))

	annotated := f.schema.AddAction("Archive", false)
	reason := annotated.AddParameter("reason", edm.Ref(edm.String))
	f.model.Annotate(reason, vocabulary.CoreOptionalParameter, edm.NewRecord(
		edm.Field("DefaultValue", edm.StringConstant("none")),
	))
	assert.False(t, ActionRequestBodyRequired(f.model, annotated))

	mixed := f.schema.AddAction("Move", false)
	mixed.AddParameter("from", edm.NullableRef(edm.String))
	mixed.AddParameter("to", edm.Ref(edm.String))
	assert.True(t, ActionRequestBodyRequired(f.model, mixed), "every parameter must be optional")

	bare := f.schema.AddAction("Ping", true)
	bare.AddParameter("person", edm.Ref(f.person))
	assert.True(t, ActionRequestBodyRequired(f.model, bare), "no parameters besides the binding one")
}

func TestStructuredTypeRequestBodyRequired(t *testing.T) {
	m := edm.NewModel()
	s := m.AddSchema("Shop", "")

	base := s.AddEntityType("Item", nil)
	base.AddKeyProperty("Id", edm.Ref(edm.Int32))
	stamp := base.AddProperty("Stamp", edm.Ref(edm.DateTimeOffset))
	m.Annotate(stamp, vocabulary.CoreComputed, nil)

	product := s.AddEntityType("Product", base)
	product.AddProperty("Name", edm.NullableRef(edm.String))
	product.AddProperty("Price", edm.Ref(edm.Decimal)).SetDefaultValue("0")
	product.AddNavigationProperty("Supplier", base, false, true)

	assert.True(t, StructuredTypeRequestBodyRequired(m, product, false), "the inherited key is required on create")
	assert.False(t, StructuredTypeRequestBodyRequired(m, product, true), "keys are excluded on update")

	product.AddNavigationProperty("Category", base, false, false)
	assert.True(t, StructuredTypeRequestBodyRequired(m, product, true), "non-nullable navigation property")

	empty := s.AddEntityType("Marker", nil)
	empty.AddKeyProperty("Id", edm.Ref(edm.Int32))
	assert.False(t, StructuredTypeRequestBodyRequired(m, empty, true), "nothing left to send")

	address := s.AddComplexType("Address", nil)
	address.AddProperty("Street", edm.NullableRef(edm.String))
	assert.False(t, StructuredTypeRequestBodyRequired(m, address, false))
	address.AddProperty("City", edm.Ref(edm.String))
	assert.True(t, StructuredTypeRequestBodyRequired(m, address, true), "complex types have no key to exclude")
}
