package convert

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/conduit-lang/edmoas/internal/capabilities"
	"github.com/conduit-lang/edmoas/internal/docs"
	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/naming"
	"github.com/conduit-lang/edmoas/internal/paths"
	"github.com/conduit-lang/edmoas/internal/vocabulary"
)

// Describe takes every decision for p: its URL template, kind, tag,
// navigability and the operations it exposes with their ids, parameters and
// request bodies
func (c *Context) Describe(p *paths.Path) (*docs.PathDoc, error) {
	if p == nil {
		return nil, edm.NilArgument("path")
	}
	kind, err := p.Classify()
	if err != nil {
		return nil, err
	}

	name, params, err := c.renderPath(p)
	if err != nil {
		return nil, err
	}
	navigable, err := c.Navigable(p)
	if err != nil {
		return nil, err
	}
	tag, err := c.TagName(p)
	if err != nil {
		return nil, err
	}

	d := &describer{Context: c, path: p, tag: tag}
	switch kind {
	case paths.KindEntitySet:
		err = d.entitySet()
	case paths.KindSingleton, paths.KindEntity:
		err = d.entity()
	case paths.KindNavigationProperty:
		err = d.navigation()
	case paths.KindOperation:
		err = d.operation(lastOperation(p))
	case paths.KindOperationImport:
		err = d.operationImport()
	}
	if err != nil {
		return nil, fmt.Errorf("describe %s: %w", p, err)
	}

	c.logger.Debug("path described",
		zap.String("path", name),
		zap.Stringer("kind", kind),
		zap.String("tag", tag),
		zap.Bool("navigable", navigable),
		zap.Int("operations", len(d.operations)),
	)

	return &docs.PathDoc{
		Path:       name,
		Kind:       kind.String(),
		Navigable:  navigable,
		Tag:        tag,
		Parameters: params,
		Operations: d.operations,
	}, nil
}

// Document describes every path and wraps the result for rendering
func (c *Context) Document(info docs.Info, ps []*paths.Path) (*docs.Documentation, error) {
	doc := &docs.Documentation{Info: info}
	for _, p := range ps {
		pd, err := c.Describe(p)
		if err != nil {
			return nil, err
		}
		doc.Paths = append(doc.Paths, pd)
	}
	return doc, nil
}

type describer struct {
	*Context
	path       *paths.Path
	tag        string
	operations []*docs.OperationDoc
}

func (d *describer) add(method, verb, summary string, target edm.Annotatable) (*docs.OperationDoc, error) {
	id, err := d.operationID(d.path, verb)
	if err != nil {
		return nil, err
	}
	op := &docs.OperationDoc{
		Method:      method,
		OperationID: id,
		Summary:     summary,
		Tags:        []string{d.tag},
	}
	if target != nil {
		op.Description = vocabulary.Description(d.model, target).Or("")
	}
	d.operations = append(d.operations, op)
	return op, nil
}

func (d *describer) entitySet() error {
	source, err := rootSource(d.path)
	if err != nil {
		return err
	}
	entityType := source.EntityType()

	read, err := capabilities.Of[capabilities.ReadRestrictions](d.resolver, d.model, source)
	if err != nil {
		return err
	}
	if read.IsReadable() {
		op, err := d.add(http.MethodGet, naming.VerbList, "Get entities from "+source.Name(), source)
		if err != nil {
			return err
		}
		if op.Parameters, err = d.queryParameters(source, nil, true); err != nil {
			return err
		}
		op.Responses = []*docs.ResponseDoc{
			{Status: http.StatusOK, Description: "Retrieved entities", Schema: naming.SchemaRef(entityType.FullName()), Collection: true},
		}
	}

	insert, err := capabilities.Of[capabilities.InsertRestrictions](d.resolver, d.model, source)
	if err != nil {
		return err
	}
	if insert.IsInsertable() {
		op, err := d.add(http.MethodPost, naming.VerbCreate, "Add new entity to "+source.Name(), nil)
		if err != nil {
			return err
		}
		op.Description = insert.DescriptionOrDefault()
		if op.Parameters, err = d.customParameters(source); err != nil {
			return err
		}
		op.RequestBody = &docs.RequestBodyDoc{
			Description: "New entity",
			Required:    d.RequestBodyRequired(entityType, false),
			Schema:      d.BodySchema(entityType),
		}
		op.Responses = []*docs.ResponseDoc{
			{Status: http.StatusCreated, Description: "Created entity", Schema: naming.SchemaRef(entityType.FullName())},
		}
	}
	return nil
}

// entity covers singletons and entities addressed by key
func (d *describer) entity() error {
	source, err := rootSource(d.path)
	if err != nil {
		return err
	}
	entityType := source.EntityType()
	byKey := d.path.Len() > 1

	read, err := capabilities.Of[capabilities.ReadRestrictions](d.resolver, d.model, source)
	if err != nil {
		return err
	}
	readable := read.IsReadable()
	if byKey {
		readable = read.IsReadableByKey()
	}
	if readable {
		op, err := d.add(http.MethodGet, naming.VerbGet, "Get entity from "+source.Name(), source)
		if err != nil {
			return err
		}
		if op.Parameters, err = d.queryParameters(source, nil, false); err != nil {
			return err
		}
		op.Responses = []*docs.ResponseDoc{
			{Status: http.StatusOK, Description: "Retrieved entity", Schema: naming.SchemaRef(entityType.FullName())},
		}
	}

	if err := d.update(source, entityType, "Update entity in "+source.Name()); err != nil {
		return err
	}

	if !byKey {
		return nil
	}
	del, err := capabilities.Of[capabilities.DeleteRestrictions](d.resolver, d.model, source)
	if err != nil {
		return err
	}
	if del.IsDeletable() {
		op, err := d.add(http.MethodDelete, naming.VerbDelete, "Delete entity from "+source.Name(), nil)
		if err != nil {
			return err
		}
		op.Description = del.DescriptionOrDefault()
		op.Responses = []*docs.ResponseDoc{{Status: http.StatusNoContent, Description: "Success"}}
	}
	return nil
}

// update adds PATCH, or PUT when the update method says so, unless target
// is not updatable
func (d *describer) update(target edm.Annotatable, st edm.StructuredType, summary string) error {
	upd, err := capabilities.Of[capabilities.UpdateRestrictions](d.resolver, d.model, target)
	if err != nil {
		return err
	}
	if !upd.IsUpdatable() {
		return nil
	}
	method := http.MethodPatch
	if upd.IsUpdateMethodPut() {
		method = http.MethodPut
	}
	op, err := d.add(method, naming.VerbUpdate, summary, nil)
	if err != nil {
		return err
	}
	op.Description = upd.DescriptionOrDefault()
	if op.Parameters, err = d.customParameters(target); err != nil {
		return err
	}
	op.RequestBody = &docs.RequestBodyDoc{
		Description: "New property values",
		Required:    d.RequestBodyRequired(st, true),
		Schema:      d.BodySchema(st),
	}
	op.Responses = []*docs.ResponseDoc{{Status: http.StatusNoContent, Description: "Success"}}
	return nil
}

func (d *describer) navigation() error {
	switch last := d.path.Last().(type) {
	case *paths.OperationSegment:
		return d.operation(last)
	case *paths.ComplexPropertySegment:
		return d.complexProperty(last)
	}

	nav := d.path.LastNavigationProperty()
	property := nav.NavigationProperty()
	target := nav.Target()
	if cast, ok := d.path.Last().(*paths.TypeCastSegment); ok {
		if et, ok := cast.StructuredType().(*edm.EntityType); ok {
			target = et
		}
	}

	collection := nav.IsCollection() && !indexedAfter(d.path, nav)

	override, err := d.navigationOverride()
	if err != nil {
		return err
	}

	verb := naming.VerbGet
	if collection {
		verb = naming.VerbList
	}
	op, err := d.add(http.MethodGet, verb, "Get "+property.Name()+" from "+rootName(d.path), property)
	if err != nil {
		return err
	}
	if op.Parameters, err = d.queryParameters(property, override, collection); err != nil {
		return err
	}
	op.Responses = []*docs.ResponseDoc{
		{Status: http.StatusOK, Description: "Retrieved navigation property", Schema: naming.SchemaRef(target.FullName()), Collection: collection},
	}

	if _, cast := d.path.Last().(*paths.TypeCastSegment); cast || !property.ContainsTarget() {
		return nil
	}

	if collection {
		insert, err := capabilities.Of[capabilities.InsertRestrictions](d.resolver, d.model, property)
		if err != nil {
			return err
		}
		if insert.IsInsertable() {
			op, err := d.add(http.MethodPost, naming.VerbCreate, "Create new navigation property to "+property.Name(), nil)
			if err != nil {
				return err
			}
			op.RequestBody = &docs.RequestBodyDoc{
				Description: "New navigation property",
				Required:    d.RequestBodyRequired(target, false),
				Schema:      d.BodySchema(target),
			}
			op.Responses = []*docs.ResponseDoc{
				{Status: http.StatusCreated, Description: "Created navigation property", Schema: naming.SchemaRef(target.FullName())},
			}
		}
		return nil
	}

	if err := d.update(property, target, "Update the navigation property "+property.Name()); err != nil {
		return err
	}
	del, err := capabilities.Of[capabilities.DeleteRestrictions](d.resolver, d.model, property)
	if err != nil {
		return err
	}
	if del.IsDeletable() {
		op, err := d.add(http.MethodDelete, naming.VerbDelete, "Delete navigation property "+property.Name(), nil)
		if err != nil {
			return err
		}
		op.Responses = []*docs.ResponseDoc{{Status: http.StatusNoContent, Description: "Success"}}
	}
	return nil
}

// navigationOverride returns the restricted-property entry of the root's
// NavigationRestrictions for the navigation path, or nil
func (d *describer) navigationOverride() (*capabilities.NavigationPropertyRestriction, error) {
	root := d.path.NavigationSource()
	if root == nil {
		return nil, nil
	}
	rec, err := d.Restriction(root.NavigationSource(), capabilities.KindNavigationRestrictions)
	if err != nil {
		return nil, err
	}
	restrictions, _ := rec.(*capabilities.NavigationRestrictions)
	return restrictions.RestrictionFor(d.path.NavigationPropertyPath()), nil
}

func (d *describer) complexProperty(last *paths.ComplexPropertySegment) error {
	property := last.Property()
	verb := naming.VerbGet
	if last.IsCollection() {
		verb = naming.VerbList
	}
	op, err := d.add(http.MethodGet, verb, "Get "+property.Name()+" property value", property)
	if err != nil {
		return err
	}
	ct := last.ComplexType()
	if ct == nil {
		return fmt.Errorf("property %s is not complex", property.Name())
	}
	op.Responses = []*docs.ResponseDoc{
		{Status: http.StatusOK, Description: "Retrieved property value", Schema: naming.SchemaRef(ct.FullName()), Collection: last.IsCollection()},
	}

	if vocabulary.IsComputed(d.model, property) || vocabulary.IsImmutable(d.model, property) {
		return nil
	}
	return d.update(property, ct, "Update property "+property.Name())
}

// bindingTargets returns the elements on which Core.ExplicitOperationBindings
// may list the operation at index i: the type it is bound to, and the
// navigation source when it follows one directly
func bindingTargets(p *paths.Path, i int) []edm.Annotatable {
	if i < 1 {
		return nil
	}
	switch seg := p.At(i - 1).(type) {
	case *paths.NavigationSourceSegment:
		return []edm.Annotatable{seg.NavigationSource(), seg.EntityType()}
	case *paths.KeySegment:
		return []edm.Annotatable{seg.EntityType()}
	case *paths.NavigationPropertySegment:
		return []edm.Annotatable{seg.Target()}
	case *paths.TypeCastSegment:
		return []edm.Annotatable{seg.StructuredType()}
	case *paths.ComplexPropertySegment:
		if ct := seg.ComplexType(); ct != nil {
			return []edm.Annotatable{ct}
		}
	}
	return nil
}

func (d *describer) operation(seg *paths.OperationSegment) error {
	if seg == nil {
		return fmt.Errorf("no operation segment")
	}
	op := seg.Operation()

	at := -1
	for i := d.path.Len() - 1; i >= 0; i-- {
		if d.path.At(i) == paths.Segment(seg) {
			at = i
			break
		}
	}
	allowed := false
	for _, target := range bindingTargets(d.path, at) {
		if d.OperationBindingAllowed(op, target) {
			allowed = true
			break
		}
	}
	if !allowed {
		d.logger.Debug("operation binding not allowed", zap.String("operation", op.FullName()))
		return nil
	}

	return d.invoke(op)
}

func (d *describer) operationImport() error {
	imp := operationImport(d.path)
	if imp == nil {
		return fmt.Errorf("no operation import segment")
	}
	return d.invoke(imp.OperationImport().Operation())
}

// invoke adds the POST of an action or the GET of a function
func (d *describer) invoke(op edm.Operation) error {
	if op.IsAction() {
		doc, err := d.add(http.MethodPost, "", "Invoke action "+op.Name(), op)
		if err != nil {
			return err
		}
		if len(edm.NonBindingParameters(op)) > 0 {
			doc.RequestBody = &docs.RequestBodyDoc{
				Description: "Action parameters",
				Required:    d.ActionRequestBodyRequired(op),
			}
		}
		doc.Responses = []*docs.ResponseDoc{{Status: http.StatusNoContent, Description: "Success"}}
		return nil
	}

	doc, err := d.add(http.MethodGet, "", "Invoke function "+op.Name(), op)
	if err != nil {
		return err
	}
	response := &docs.ResponseDoc{Status: http.StatusOK, Description: "Success"}
	if fn, ok := op.(*edm.Function); ok {
		ret := fn.ReturnType()
		if ret.Type != nil {
			response.Schema = naming.SchemaRef(ret.Type.FullName())
			response.Collection = ret.Collection
		}
	}
	doc.Responses = []*docs.ResponseDoc{response}
	return nil
}

// indexedAfter reports whether a key segment follows nav in p
func indexedAfter(p *paths.Path, nav *paths.NavigationPropertySegment) bool {
	seen := false
	for _, s := range p.Segments() {
		switch seg := s.(type) {
		case *paths.NavigationPropertySegment:
			seen = seg == nav
		case *paths.KeySegment:
			if seen {
				return true
			}
		}
	}
	return false
}

func rootName(p *paths.Path) string {
	if root := p.NavigationSource(); root != nil {
		return root.NavigationSource().Name()
	}
	return p.First().Identifier()
}
