package capabilities

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/conduit-lang/edmoas/internal/edm"
)

type cacheKey struct {
	model  uuid.UUID
	target edm.Annotatable
	kind   Kind
}

// Resolver finds capability annotations and memoizes the decoded records.
//
// Entries are keyed by model identity, target and kind, so a resolver can be
// shared by conversions of different models without ever invalidating.
// Absent annotations are cached as nil records.
type Resolver struct {
	builder Builder
	logger  *zap.Logger

	mu      sync.Mutex
	entries map[cacheKey]Restriction
}

// Option configures a Resolver
type Option func(*Resolver)

// WithBuilder replaces the record builder
func WithBuilder(b Builder) Option {
	return func(r *Resolver) {
		if b != nil {
			r.builder = b
		}
	}
}

// WithLogger sets the logger used for cache diagnostics
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a resolver with an empty cache
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		builder: DefaultBuilder,
		logger:  zap.NewNop(),
		entries: make(map[cacheKey]Restriction),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the record of the given kind annotated on target.
//
// When target carries no annotation and is an entity set or singleton, the
// annotation of its entity type is used instead. A nil record with a nil
// error means no usable annotation was found.
func (r *Resolver) Resolve(model *edm.Model, target edm.Annotatable, kind Kind) (Restriction, error) {
	if model == nil {
		return nil, edm.NilArgument("model")
	}
	if target == nil {
		return nil, edm.NilArgument("target")
	}
	if !kind.Supported() {
		r.logger.Warn("restriction kind not supported", zap.Stringer("kind", kind))
		return nil, &UnsupportedKindError{Kind: kind}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := cacheKey{model: model.ID(), target: target, kind: kind}
	if rec, ok := r.entries[key]; ok {
		return rec, nil
	}

	expr, found := findAnnotation(model, target, kind.Term())
	var rec Restriction
	if found {
		built, err := r.builder.Build(kind, expr)
		if err != nil {
			return nil, err
		}
		rec = built
	}
	r.entries[key] = rec

	r.logger.Debug("restriction resolved",
		zap.Stringer("kind", kind),
		zap.String("target", target.TargetName()),
		zap.Bool("annotated", found),
		zap.Bool("decoded", rec != nil),
	)
	return rec, nil
}

func findAnnotation(model *edm.Model, target edm.Annotatable, term string) (edm.Expression, bool) {
	if expr, ok := model.FindAnnotation(target, term); ok {
		return expr, true
	}
	if source, ok := target.(edm.NavigationSource); ok {
		if et := source.EntityType(); et != nil {
			return model.FindAnnotation(et, term)
		}
	}
	return nil, false
}

// Len returns the number of cached entries, absent annotations included
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Forget drops every entry cached for model
func (r *Resolver) Forget(model *edm.Model) {
	if model == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := model.ID()
	for key := range r.entries {
		if key.model == id {
			delete(r.entries, key)
		}
	}
}

// Of resolves the record whose type is T. The result is never nil: when no
// annotation applies an empty record is returned so its accessors yield the
// term defaults.
//
//	filter, err := capabilities.Of[capabilities.FilterRestrictions](resolver, model, people)
func Of[T any, P interface {
	*T
	Restriction
}](r *Resolver, model *edm.Model, target edm.Annotatable) (P, error) {
	empty := P(new(T))
	rec, err := r.Resolve(model, target, empty.Kind())
	if err != nil {
		return nil, err
	}
	if typed, ok := rec.(P); ok && typed != nil {
		return typed, nil
	}
	return empty, nil
}
