// Package convert is the public entry point of the conversion engine. A
// Context binds one model to a set of settings, a logger and a restriction
// cache, and answers every naming and decision question asked while
// describing the paths of that model.
package convert

import (
	"go.uber.org/zap"

	"github.com/conduit-lang/edmoas/internal/capabilities"
	"github.com/conduit-lang/edmoas/internal/config"
	"github.com/conduit-lang/edmoas/internal/edm"
	"github.com/conduit-lang/edmoas/internal/naming"
	"github.com/conduit-lang/edmoas/internal/paths"
	"github.com/conduit-lang/edmoas/internal/rules"
)

// Context is a conversion session over one model. It is safe for concurrent
// use once constructed.
type Context struct {
	model    *edm.Model
	settings *config.Settings
	logger   *zap.Logger
	resolver *capabilities.Resolver
}

// Option configures a Context
type Option func(*Context)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithResolver shares a restriction resolver between contexts. Entries are
// keyed by model identity, so one resolver may serve several models.
func WithResolver(r *capabilities.Resolver) Option {
	return func(c *Context) {
		c.resolver = r
	}
}

// NewContext creates a conversion session. A nil settings uses
// config.Default.
func NewContext(model *edm.Model, settings *config.Settings, opts ...Option) (*Context, error) {
	if model == nil {
		return nil, edm.NilArgument("model")
	}
	if settings == nil {
		settings = config.Default()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	c := &Context{
		model:    model,
		settings: settings,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.resolver == nil {
		c.resolver = capabilities.NewResolver(capabilities.WithLogger(c.logger))
	}
	return c, nil
}

// Model returns the model being converted
func (c *Context) Model() *edm.Model { return c.model }

// Settings returns the conversion settings
func (c *Context) Settings() *config.Settings { return c.settings }

// Logger returns the session logger
func (c *Context) Logger() *zap.Logger { return c.logger }

// Resolver returns the restriction resolver
func (c *Context) Resolver() *capabilities.Resolver { return c.resolver }

// Restriction resolves the record of kind annotated on target. A nil record
// with a nil error means no usable annotation applies.
func (c *Context) Restriction(target edm.Annotatable, kind capabilities.Kind) (capabilities.Restriction, error) {
	return c.resolver.Resolve(c.model, target, kind)
}

// Navigable reports whether navigation restrictions allow p
func (c *Context) Navigable(p *paths.Path) (bool, error) {
	return rules.IsPathNavigable(c.resolver, c.model, p)
}

// OperationBindingAllowed reports whether op may be exposed on target
func (c *Context) OperationBindingAllowed(op edm.Operation, target edm.Annotatable) bool {
	return rules.OperationBindingAllowed(c.model, op, target)
}

// ActionRequestBodyRequired reports whether invoking action needs a body
func (c *Context) ActionRequestBodyRequired(action edm.Operation) bool {
	return rules.ActionRequestBodyRequired(c.model, action)
}

// RequestBodyRequired reports whether creating or updating st needs a body
func (c *Context) RequestBodyRequired(st edm.StructuredType, update bool) bool {
	return rules.StructuredTypeRequestBodyRequired(c.model, st, update)
}

// SegmentName renders a type or operation as it appears in a path, applying
// the alias and namespace-strip settings
func (c *Context) SegmentName(element edm.SchemaElement) string {
	return naming.StripOrAliasNamespacePrefix(c.model, element, c.settings)
}

// BodySchema returns the request body schema of st: a oneOf over st and its
// derived types when enabled and any exist, otherwise a plain reference
func (c *Context) BodySchema(st edm.StructuredType) *naming.ReferenceSchema {
	if c.settings.EnableDerivedTypesReferencesForRequestBody {
		if schema := naming.DerivedTypesReferenceSchema(c.model, st); schema != nil {
			return schema
		}
	}
	return naming.SchemaRef(st.FullName())
}
