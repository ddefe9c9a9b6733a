package convert

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/edmoas/internal/capabilities"
	"github.com/conduit-lang/edmoas/internal/docs"
	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/naming"
	"github.com/conduit-lang/edmoas/internal/paths"
	utilstrings "github.com/conduit-lang/edmoas/internal/util/strings"
)

func rootSource(p *paths.Path) (edm.NavigationSource, error) {
	root := p.NavigationSource()
	if root == nil {
		return nil, naming.ErrNoNavigationSource
	}
	return root.NavigationSource(), nil
}

func lastOperation(p *paths.Path) *paths.OperationSegment {
	for i := p.Len() - 1; i >= 0; i-- {
		if op, ok := p.At(i).(*paths.OperationSegment); ok {
			return op
		}
	}
	return nil
}

func operationImport(p *paths.Path) *paths.OperationImportSegment {
	imp, _ := p.First().(*paths.OperationImportSegment)
	return imp
}

// TagName returns the tag shared by the operations of p
func (c *Context) TagName(p *paths.Path) (string, error) {
	kind, err := p.Classify()
	if err != nil {
		return "", err
	}

	switch kind {
	case paths.KindEntitySet, paths.KindSingleton, paths.KindEntity:
		source, err := rootSource(p)
		if err != nil {
			return "", err
		}
		return naming.EntityTypeTagName(source), nil

	case paths.KindNavigationProperty:
		switch last := p.Last().(type) {
		case *paths.ComplexPropertySegment:
			return naming.ComplexPropertyTagName(p, c.settings.TagDepth)
		case *paths.OperationSegment:
			return naming.OperationTagName(p, last.Operation()), nil
		}
		return naming.NavigationPropertyTagName(p, c.settings.TagDepth), nil

	case paths.KindOperation:
		return naming.OperationTagName(p, lastOperation(p).Operation()), nil

	case paths.KindOperationImport:
		if imp := operationImport(p); imp != nil {
			return naming.OperationImportTagName(imp.OperationImport()), nil
		}
	}
	return "", fmt.Errorf("no tag for %s path %s", kind, p)
}

// OperationID returns the id of the read operation of p, or of the
// invocation when p ends in an operation. It is empty when operation ids
// are disabled.
func (c *Context) OperationID(p *paths.Path) (string, error) {
	return c.operationID(p, readVerb(p))
}

func readVerb(p *paths.Path) string {
	switch last := p.Last().(type) {
	case *paths.NavigationSourceSegment:
		if !last.IsSingleton() {
			return naming.VerbList
		}
	case *paths.NavigationPropertySegment:
		if last.IsCollection() {
			return naming.VerbList
		}
	case *paths.ComplexPropertySegment:
		if last.IsCollection() {
			return naming.VerbList
		}
	}
	return naming.VerbGet
}

func (c *Context) operationID(p *paths.Path, verb string) (string, error) {
	if !c.settings.EnableOperationID {
		return "", nil
	}
	kind, err := p.Classify()
	if err != nil {
		return "", err
	}

	switch kind {
	case paths.KindEntitySet, paths.KindSingleton, paths.KindEntity:
		source, err := rootSource(p)
		if err != nil {
			return "", err
		}
		return naming.NavigationSourceOperationID(source, verb), nil

	case paths.KindNavigationProperty:
		switch last := p.Last().(type) {
		case *paths.ComplexPropertySegment:
			return naming.ComplexPropertyOperationID(p, verb)
		case *paths.TypeCastSegment:
			prefix, err := naming.TypeCastOperationIDPrefix(p, true)
			if err != nil {
				return "", err
			}
			return prefix + ".As" + utilstrings.UpperFirst(last.StructuredType().QName().Name), nil
		case *paths.OperationSegment:
			return naming.OperationOperationID(p), nil
		}
		return naming.NavigationPropertyOperationID(p, verb), nil

	case paths.KindOperation:
		return naming.OperationOperationID(p), nil

	case paths.KindOperationImport:
		if imp := operationImport(p); imp != nil {
			return naming.OperationImportOperationID(imp.OperationImport()), nil
		}
	}
	return "", fmt.Errorf("no operation id for %s path %s", kind, p)
}

// PathName renders p as a URL template, e.g. /People({UserName})/Friends.
// Keys use the key-as-segment form when the entity container supports it.
func (c *Context) PathName(p *paths.Path) (string, error) {
	name, _, err := c.renderPath(p)
	return name, err
}

// PathParameters returns the path parameters of the URL template of p, in
// order of appearance
func (c *Context) PathParameters(p *paths.Path) ([]*docs.ParameterDoc, error) {
	_, params, err := c.renderPath(p)
	return params, err
}

func (c *Context) keyAsSegment() (bool, error) {
	container := c.model.Container()
	if container == nil {
		return false, nil
	}
	rec, err := c.Restriction(container, capabilities.KindKeyAsSegmentSupported)
	if err != nil || rec == nil {
		return false, err
	}
	return rec.(*capabilities.KeyAsSegmentSupported).IsSupported(), nil
}

type pathRenderer struct {
	b            strings.Builder
	params       []*docs.ParameterDoc
	used         map[string]int
	keyAsSegment bool
}

// param registers a path parameter and returns its unique name. Repeated
// names get a numeric suffix: UserName, UserName-1, ...
func (r *pathRenderer) param(name string, typ edm.TypeRef, description string) string {
	unique := name
	if n := r.used[name]; n > 0 {
		unique = fmt.Sprintf("%s-%d", name, n)
	}
	r.used[name]++

	typeName := ""
	if typ.Type != nil {
		typeName = typ.Type.FullName()
	}
	r.params = append(r.params, &docs.ParameterDoc{
		Name:        unique,
		In:          docs.InPath,
		Description: description,
		Type:        typeName,
		Required:    true,
		Example:     docs.ExampleForType(typeName),
	})
	return unique
}

func (r *pathRenderer) key(seg *paths.KeySegment) {
	names := seg.KeyNames()
	params := make([]string, len(names))
	for i, name := range names {
		var typ edm.TypeRef
		if prop := seg.EntityType().FindProperty(name); prop != nil {
			typ = prop.Type()
		}
		params[i] = r.param(name, typ, "Key: "+name)
	}

	if len(names) == 1 && !seg.IsAlternate() {
		if r.keyAsSegment {
			r.b.WriteString("/{" + params[0] + "}")
		} else {
			r.b.WriteString("({" + params[0] + "})")
		}
		return
	}

	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + "={" + params[i] + "}"
	}
	r.b.WriteString("(" + strings.Join(pairs, ",") + ")")
}

func (r *pathRenderer) call(op edm.Operation) {
	if op.IsAction() {
		return
	}
	params := edm.NonBindingParameters(op)
	pairs := make([]string, len(params))
	for i, p := range params {
		pairs[i] = p.Name() + "={" + r.param(p.Name(), p.Type(), "Parameter: "+p.Name()) + "}"
	}
	r.b.WriteString("(" + strings.Join(pairs, ",") + ")")
}

func (c *Context) renderPath(p *paths.Path) (string, []*docs.ParameterDoc, error) {
	if p == nil {
		return "", nil, edm.NilArgument("path")
	}
	keyAsSegment, err := c.keyAsSegment()
	if err != nil {
		return "", nil, err
	}

	r := &pathRenderer{used: make(map[string]int), keyAsSegment: keyAsSegment}
	for _, s := range p.Segments() {
		switch seg := s.(type) {
		case *paths.KeySegment:
			r.key(seg)
		case *paths.TypeCastSegment:
			r.b.WriteString("/" + c.SegmentName(seg.StructuredType()))
		case *paths.OperationSegment:
			r.b.WriteString("/" + c.SegmentName(seg.Operation()))
			r.call(seg.Operation())
		case *paths.OperationImportSegment:
			r.b.WriteString("/" + seg.Identifier())
			r.call(seg.OperationImport().Operation())
		default:
			r.b.WriteString("/" + seg.Identifier())
		}
	}
	return r.b.String(), r.params, nil
}
