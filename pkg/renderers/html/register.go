package html

import (
	"github.com/goliatone/go-invitekit/pkg/catalog"
	"github.com/goliatone/go-invitekit/pkg/render"
)

// FallbackName is the generic renderer production resolvers degrade to.
const FallbackName = "fallback"

// RegisterBuiltin wires a factory for every built-in catalog template into
// the resolver, sharing one template engine across them, and registers the
// generic fallback. Factories stay lazy; nothing parses until first
// resolution.
func RegisterBuiltin(resolver *render.Resolver, reg *catalog.Registry, options ...Option) error {
	engine, err := NewEngine(WithTemplatesFS(TemplatesFS()))
	if err != nil {
		return err
	}
	shared := append([]Option{WithEngine(engine)}, options...)

	for _, slug := range reg.Slugs() {
		def, err := reg.LookupBySlug(slug)
		if err != nil {
			return err
		}
		name := slug
		if err := resolver.Register(def.Category, def.Slug, func() (render.Renderer, error) {
			return New(name, shared...)
		}); err != nil {
			return err
		}
	}
	return nil
}

// FallbackFactory returns the factory for the generic "unknown template"
// page, suitable for render.WithFallback.
func FallbackFactory(options ...Option) render.Factory {
	return func() (render.Renderer, error) {
		return New(FallbackName, options...)
	}
}
