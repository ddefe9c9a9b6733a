package capabilities

import (
	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/vocabulary"
)

// Example is one example value of a custom parameter
type Example struct {
	Value       vocabulary.Optional[string]
	Description vocabulary.Optional[string]
}

// CustomParameter is one entry of CustomHeaders or CustomQueryOptions
type CustomParameter struct {
	Name             vocabulary.Optional[string]
	Description      vocabulary.Optional[string]
	DocumentationURL vocabulary.Optional[string]
	Required         vocabulary.Optional[bool]
	ExampleValues    []Example
}

// IsRequired reports whether the parameter is mandatory. Defaults to false.
func (p CustomParameter) IsRequired() bool { return p.Required.Or(false) }

func decodeCustomParameters(expr edm.Expression) ([]CustomParameter, bool) {
	coll, ok := expr.(edm.Collection)
	if !ok {
		return nil, false
	}
	params := make([]CustomParameter, 0, len(coll))
	for _, item := range coll {
		rec, ok := vocabulary.AsRecord(item)
		if !ok {
			continue
		}
		p := CustomParameter{
			Name:             vocabulary.String(rec, "Name"),
			Description:      vocabulary.String(rec, "Description"),
			DocumentationURL: vocabulary.String(rec, "DocumentationURL"),
			Required:         vocabulary.Bool(rec, "Required"),
		}
		for _, ex := range vocabulary.Collection(rec, "ExampleValues") {
			exRec, ok := vocabulary.AsRecord(ex)
			if !ok {
				continue
			}
			p.ExampleValues = append(p.ExampleValues, Example{
				Value:       vocabulary.String(exRec, "Value"),
				Description: vocabulary.String(exRec, "Description"),
			})
		}
		params = append(params, p)
	}
	return params, true
}

// CustomHeaders records Capabilities.CustomHeaders
type CustomHeaders struct {
	Parameters []CustomParameter
}

// Kind implements Restriction
func (*CustomHeaders) Kind() Kind { return KindCustomHeaders }

func (r *CustomHeaders) decode(expr edm.Expression) bool {
	params, ok := decodeCustomParameters(expr)
	r.Parameters = params
	return ok
}

// CustomQueryOptions records Capabilities.CustomQueryOptions
type CustomQueryOptions struct {
	Parameters []CustomParameter
}

// Kind implements Restriction
func (*CustomQueryOptions) Kind() Kind { return KindCustomQueryOptions }

func (r *CustomQueryOptions) decode(expr edm.Expression) bool {
	params, ok := decodeCustomParameters(expr)
	r.Parameters = params
	return ok
}
