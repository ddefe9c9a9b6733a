package naming

import "github.com/conduit-lang/edmoas/internal/edm"

// SchemaRefPrefix is the JSON pointer prefix of component schemas
const SchemaRefPrefix = "#/components/schemas/"

// ReferenceSchema is a schema made only of references
type ReferenceSchema struct {
	Ref   string             `json:"$ref,omitempty"`
	OneOf []*ReferenceSchema `json:"oneOf,omitempty"`
}

// SchemaRef returns a reference to the component schema of a type
func SchemaRef(fullName string) *ReferenceSchema {
	return &ReferenceSchema{Ref: SchemaRefPrefix + fullName}
}

// DerivedTypesReferenceSchema returns a oneOf over st and every type derived
// from it, base first. It returns nil when nothing derives from st.
func DerivedTypesReferenceSchema(model *edm.Model, st edm.StructuredType) *ReferenceSchema {
	derived := model.DerivedTypes(st)
	if len(derived) == 0 {
		return nil
	}
	schema := &ReferenceSchema{OneOf: []*ReferenceSchema{SchemaRef(st.FullName())}}
	for _, d := range derived {
		schema.OneOf = append(schema.OneOf, SchemaRef(d.FullName()))
	}
	return schema
}
