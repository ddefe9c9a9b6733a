package convert

import (
	"github.com/conduit-lang/edmoas/internal/capabilities"
	"github.com/conduit-lang/edmoas/internal/docs"
	"github.com/conduit-lang/edmoas/internal/edm"
)

func queryOption(name, typ, description string) *docs.ParameterDoc {
	return &docs.ParameterDoc{Name: name, In: docs.InQuery, Type: typ, Description: description}
}

// queryParameters lists the system query options a read of target accepts.
// Paging, filtering, sorting, searching and counting only apply to
// collections; entries of override, when set, win over the records
// annotated on target.
func (d *describer) queryParameters(target edm.Annotatable, override *capabilities.NavigationPropertyRestriction, collection bool) ([]*docs.ParameterDoc, error) {
	var params []*docs.ParameterDoc

	if collection {
		top, err := capabilities.Of[capabilities.TopSupported](d.resolver, d.model, target)
		if err != nil {
			return nil, err
		}
		topSupported := top.IsSupported()
		if override != nil && override.TopSupported.IsSet() {
			topSupported = override.IsTopSupported()
		}
		if topSupported {
			params = append(params, queryOption("$top", "Edm.Int32", "Show only the first n items"))
		}

		skip, err := capabilities.Of[capabilities.SkipSupported](d.resolver, d.model, target)
		if err != nil {
			return nil, err
		}
		skipSupported := skip.IsSupported()
		if override != nil && override.SkipSupported.IsSet() {
			skipSupported = override.IsSkipSupported()
		}
		if skipSupported {
			params = append(params, queryOption("$skip", "Edm.Int32", "Skip the first n items"))
		}

		search, err := capabilities.Of[capabilities.SearchRestrictions](d.resolver, d.model, target)
		if err != nil {
			return nil, err
		}
		if override != nil && override.SearchRestrictions != nil {
			search = override.SearchRestrictions
		}
		if search.IsSearchable() {
			params = append(params, queryOption("$search", "Edm.String", "Search items by search phrases"))
		}

		filter, err := capabilities.Of[capabilities.FilterRestrictions](d.resolver, d.model, target)
		if err != nil {
			return nil, err
		}
		if override != nil && override.FilterRestrictions != nil {
			filter = override.FilterRestrictions
		}
		if filter.IsFilterable() {
			p := queryOption("$filter", "Edm.String", "Filter items by property values")
			p.Required = filter.IsRequiresFilter()
			params = append(params, p)
		}

		count, err := capabilities.Of[capabilities.CountRestrictions](d.resolver, d.model, target)
		if err != nil {
			return nil, err
		}
		if override != nil && override.CountRestrictions != nil {
			count = override.CountRestrictions
		}
		if count.IsCountable() {
			params = append(params, queryOption("$count", "Edm.Boolean", "Include count of items"))
		}

		sort, err := capabilities.Of[capabilities.SortRestrictions](d.resolver, d.model, target)
		if err != nil {
			return nil, err
		}
		if override != nil && override.SortRestrictions != nil {
			sort = override.SortRestrictions
		}
		if sort.IsSortable() {
			params = append(params, queryOption("$orderby", "Edm.String", "Order items by property values"))
		}
	}

	params = append(params, queryOption("$select", "Edm.String", "Select properties to be returned"))

	expand, err := capabilities.Of[capabilities.ExpandRestrictions](d.resolver, d.model, target)
	if err != nil {
		return nil, err
	}
	if expand.IsExpandable() {
		params = append(params, queryOption("$expand", "Edm.String", "Expand related entities"))
	}

	custom, err := d.customParameters(target)
	if err != nil {
		return nil, err
	}
	return append(params, custom...), nil
}

// customParameters lists the CustomQueryOptions and CustomHeaders declared
// on target. Entries without a name are skipped.
func (d *describer) customParameters(target edm.Annotatable) ([]*docs.ParameterDoc, error) {
	var params []*docs.ParameterDoc

	options, err := capabilities.Of[capabilities.CustomQueryOptions](d.resolver, d.model, target)
	if err != nil {
		return nil, err
	}
	params = appendCustom(params, options.Parameters, docs.InQuery)

	headers, err := capabilities.Of[capabilities.CustomHeaders](d.resolver, d.model, target)
	if err != nil {
		return nil, err
	}
	return appendCustom(params, headers.Parameters, docs.InHeader), nil
}

func appendCustom(params []*docs.ParameterDoc, custom []capabilities.CustomParameter, in string) []*docs.ParameterDoc {
	for _, c := range custom {
		name, ok := c.Name.Get()
		if !ok || name == "" {
			continue
		}
		p := &docs.ParameterDoc{
			Name:        name,
			In:          in,
			Description: c.Description.Or(""),
			Type:        "Edm.String",
			Required:    c.IsRequired(),
		}
		if len(c.ExampleValues) > 0 {
			if v, ok := c.ExampleValues[0].Value.Get(); ok {
				p.Example = v
			}
		}
		params = append(params, p)
	}
	return params
}
