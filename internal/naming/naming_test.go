package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conduit-lang/edmoas/internal/config"
	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/paths"
)

const ns = "Microsoft.OData.SampleService.Models.TripPin"

type testModel struct {
	*edm.Model
	person    *edm.EntityType
	employee  *edm.EntityType
	photo     *edm.EntityType
	shareTrip *edm.Action
	people    *edm.EntitySet
}

func newTestModel(t *testing.T) testModel {
	t.Helper()

	m := edm.NewModel()
	s := m.AddSchema(ns, "trippin")

	location := s.AddComplexType("Location", nil)
	location.AddProperty("Address", edm.Ref(edm.String))
	s.AddComplexType("EventLocation", location)

	photo := s.AddEntityType("Photo", nil)
	photo.AddKeyProperty("Id", edm.Ref(edm.Int64))

	person := s.AddEntityType("Person", nil)
	person.AddKeyProperty("UserName", edm.Ref(edm.String))
	person.AddProperty("HomeAddress", edm.NullableRef(location))
	person.AddProperty("AddressInfo", edm.CollectionRef(location))
	person.AddNavigationProperty("friends", person, true, false)
	person.AddNavigationProperty("bestFriend", person, false, true)
	person.AddNavigationProperty("photos", photo, true, false)
	employee := s.AddEntityType("Employee", person)

	customer := s.AddEntityType("Customer", nil)
	customer.AddKeyProperty("CustomerId", edm.Ref(edm.Int32))
	customer.AddProperty("Id", edm.Ref(edm.String))
	customer.AddProperty("Name", edm.Ref(edm.String))
	s.AddEntityType("VipCustomer", customer)

	shareTrip := s.AddAction("ShareTrip", true)
	shareTrip.AddParameter("person", edm.Ref(person))
	reset := s.AddAction("ResetDataSource", false)
	getNearest := s.AddFunction("GetNearestAirport", false, edm.Ref(edm.String))

	c := m.SetContainer(ns, "DefaultContainer")
	people := c.AddEntitySet("People", person)
	c.AddSingleton("Me", person)
	c.AddEntitySet("Customers", customer)
	c.AddActionImport("ResetDataSource", reset, nil)
	c.AddFunctionImport("GetNearestAirport", getNearest, people)

	return testModel{Model: m, person: person, employee: employee, photo: photo, shareTrip: shareTrip, people: people}
}

func TestNavigationPropertyOperationID(t *testing.T) {
	m := newTestModel(t)
	p := paths.MustNew(
		paths.NewNavigationSourceSegment(m.people),
		paths.NewNavigationPropertySegment(m.person.FindNavigationProperty("friends")),
		paths.NewNavigationPropertySegment(m.person.FindNavigationProperty("photos")),
	)

	assert.Equal(t, "People.friends.ListPhotos", NavigationPropertyOperationID(p, VerbList))
	assert.Equal(t, "People.friends.Photos", NavigationPropertyOperationID(p, ""))

	withKeys := paths.MustParse(m.Model, "/People/{UserName}/friends/{UserName}/photos")
	assert.Equal(t, "People.friends.ListPhotos", NavigationPropertyOperationID(withKeys, VerbList), "keys do not contribute")
}

func TestNavigationPropertyTagName(t *testing.T) {
	m := newTestModel(t)
	p := paths.MustNew(
		paths.NewNavigationSourceSegment(m.people),
		paths.NewNavigationPropertySegment(m.person.FindNavigationProperty("friends")),
		paths.NewNavigationPropertySegment(m.person.FindNavigationProperty("photos")),
	)

	tests := []struct {
		depth int
		want  string
	}{
		{1, "People.Person"},
		{2, "People.Person"},
		{3, "People.friends.Photo"},
		{4, "People.friends.Photo"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NavigationPropertyTagName(p, tt.depth), "depth %d", tt.depth)
	}

	single := paths.MustParse(m.Model, "/Me/bestFriend")
	assert.Equal(t, "Me.Person", NavigationPropertyTagName(single, 4))
}

func TestComplexPropertyNames(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		raw    string
		depth  int
		prefix string
		wantID string
		tag    string
	}{
		{"/People/{UserName}/HomeAddress", 4, VerbGet, "People.GetHomeAddress", "People.Location"},
		{"/People/{UserName}/HomeAddress", 1, VerbGet, "People.GetHomeAddress", "People"},
		{"/People/{UserName}/friends/{UserName}/HomeAddress", 4, VerbGet, "People.friends.GetHomeAddress", "People.Person.Location"},
		{"/People/{UserName}/friends/{UserName}/HomeAddress", 2, "", "People.friends.HomeAddress", "People.Person"},
		{"/Me/bestFriend/trippin.Employee/AddressInfo", 4, VerbList, "Me.bestFriend.ListAddressInfo", "Me.Person.Location"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p := paths.MustParse(m.Model, tt.raw)

			id, err := ComplexPropertyOperationID(p, tt.prefix)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)

			tag, err := ComplexPropertyTagName(p, tt.depth)
			require.NoError(t, err)
			assert.Equal(t, tt.tag, tag)
		})
	}

	_, err := ComplexPropertyOperationID(paths.MustParse(m.Model, "/People"), VerbGet)
	assert.ErrorIs(t, err, ErrNoComplexProperty)
	_, err = ComplexPropertyTagName(paths.MustParse(m.Model, "/People"), 4)
	assert.ErrorIs(t, err, ErrNoComplexProperty)
}

func TestTypeCastOperationIDPrefix(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		raw     string
		include bool
		want    string
	}{
		{"/People/trippin.Employee", true, "People.Person.ListPerson"},
		{"/People/trippin.Employee", false, "People.Person.Person"},
		{"/Me/trippin.Employee", true, "Me.Person.GetPerson"},
		{"/People/{UserName}/trippin.Employee", true, "People.Person.GetPerson"},
		{"/Customers/{alt:Id,Name}/trippin.VipCustomer", true, "Customers.Customer.GetCustomerByIdName"},
		{"/Customers/{alt:Id,Name}/trippin.VipCustomer", false, "Customers.Customer.CustomerByIdName"},
		{"/People/{UserName}/friends/trippin.Employee", true, "People.ListFriends"},
		{"/People/{UserName}/friends/trippin.Employee", false, "People.Friends"},
		{"/People/{UserName}/friends/{UserName}/trippin.Employee", true, "People.GetFriends"},
		{"/People/{UserName}/bestFriend/trippin.Employee", true, "People.GetBestFriend"},
		{"/People/{UserName}/AddressInfo/trippin.EventLocation", true, "People.ListAddressInfo"},
		{"/People/{UserName}/HomeAddress/trippin.EventLocation", true, "People.GetHomeAddress"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := TypeCastOperationIDPrefix(paths.MustParse(m.Model, tt.raw), tt.include)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := TypeCastOperationIDPrefix(paths.MustParse(m.Model, "/People/{UserName}"), true)
	assert.ErrorIs(t, err, ErrNoTypeCast)

	_, err = TypeCastOperationIDPrefix(paths.MustParse(m.Model, "/People/trippin.Employee/trippin.Employee"), true)
	assert.ErrorIs(t, err, ErrNoTypeCast, "a cast directly after a cast has no prefix")
}

func TestAlternateKeySuffix(t *testing.T) {
	m := newTestModel(t)
	customers := m.Container().FindEntitySet("Customers")
	vip, err := m.FindStructuredType("trippin.VipCustomer")
	require.NoError(t, err)

	p := paths.MustNew(
		paths.NewNavigationSourceSegment(customers),
		paths.NewAlternateKeySegment(customers.EntityType(), "Id", "Name"),
		paths.NewTypeCastSegment(vip),
	)
	got, err := TypeCastOperationIDPrefix(p, true)
	require.NoError(t, err)
	assert.Equal(t, "Customers.Customer.GetCustomerByIdName", got)
}

func TestStripOrAliasNamespacePrefix(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		name     string
		element  edm.SchemaElement
		settings config.Settings
		want     string
	}{
		{"defaults keep the namespace", m.shareTrip, config.Settings{}, ns + ".ShareTrip"},
		{"type cast alias on a type", m.employee, config.Settings{EnableAliasForTypeCastSegments: true}, "trippin.Employee"},
		{"type cast alias on an operation", m.shareTrip, config.Settings{EnableAliasForTypeCastSegments: true}, "trippin.ShareTrip"},
		{"operation alias on a type", m.employee, config.Settings{EnableAliasForOperationSegments: true}, ns + ".Employee"},
		{"operation alias on an operation", m.shareTrip, config.Settings{EnableAliasForOperationSegments: true}, "trippin.ShareTrip"},
		{"strip ignores case", m.shareTrip, config.Settings{NamespacePrefixToStripForInMethodPaths: "microsoft.odata.sampleservice.models.trippin"}, "ShareTrip"},
		{"strip wins over alias", m.shareTrip, config.Settings{
			EnableAliasForOperationSegments:        true,
			NamespacePrefixToStripForInMethodPaths: ns,
		}, "ShareTrip"},
		{"strip ignores types", m.employee, config.Settings{NamespacePrefixToStripForInMethodPaths: ns}, ns + ".Employee"},
		{"strip needs an exact namespace", m.shareTrip, config.Settings{NamespacePrefixToStripForInMethodPaths: "Microsoft.OData"}, ns + ".ShareTrip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := tt.settings
			assert.Equal(t, tt.want, StripOrAliasNamespacePrefix(m.Model, tt.element, &settings))
		})
	}

	assert.Equal(t, ns+".Employee", StripOrAliasNamespacePrefix(m.Model, m.employee, nil))

	noAlias := edm.NewModel()
	plain := noAlias.AddSchema("Plain", "").AddEntityType("Thing", nil)
	assert.Equal(t, "Plain.Thing", StripOrAliasNamespacePrefix(noAlias, plain, &config.Settings{EnableAliasForTypeCastSegments: true}))
}

func TestDerivedTypesReferenceSchema(t *testing.T) {
	m := newTestModel(t)

	schema := DerivedTypesReferenceSchema(m.Model, m.person)
	require.NotNil(t, schema)
	require.Len(t, schema.OneOf, 2)
	assert.Equal(t, "#/components/schemas/"+ns+".Person", schema.OneOf[0].Ref)
	assert.Equal(t, "#/components/schemas/"+ns+".Employee", schema.OneOf[1].Ref)
	assert.Empty(t, schema.Ref)

	assert.Nil(t, DerivedTypesReferenceSchema(m.Model, m.photo))
}

func TestSourceAndOperationNames(t *testing.T) {
	m := newTestModel(t)
	c := m.Container()

	assert.Equal(t, "People.Person.ListPerson", EntitySetOperationID(m.people, VerbList))
	assert.Equal(t, "People.Person.CreatePerson", EntitySetOperationID(m.people, VerbCreate))
	assert.Equal(t, "Me.Person.UpdatePerson", SingletonOperationID(c.FindSingleton("Me"), VerbUpdate))
	assert.Equal(t, "People.Person", EntityTypeTagName(m.people))

	reset := c.FindOperationImport("ResetDataSource")
	nearest := c.FindOperationImport("GetNearestAirport")
	assert.Equal(t, "ActionImport.ResetDataSource", OperationImportOperationID(reset))
	assert.Equal(t, "FunctionImport.GetNearestAirport", OperationImportOperationID(nearest))
	assert.Equal(t, "ResetDataSource", OperationImportTagName(reset))
	assert.Equal(t, "People", OperationImportTagName(nearest))

	p := paths.MustParse(m.Model, "/People/{UserName}/friends/{UserName}/trippin.Employee/trippin.ShareTrip")
	assert.Equal(t, "People.friends.Employee.ShareTrip", OperationOperationID(p))
	assert.Equal(t, "People.Actions", OperationTagName(p, m.shareTrip))
}
