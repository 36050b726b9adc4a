// Package invitekit turns event templates into published invitations. The
// root package re-exports the pieces most hosts need and offers convenience
// constructors; the pkg tree holds the full surface.
package invitekit

import (
	"fmt"

	"github.com/goliatone/go-invitekit/pkg/catalog"
	"github.com/goliatone/go-invitekit/pkg/draft"
	"github.com/goliatone/go-invitekit/pkg/render"
	"github.com/goliatone/go-invitekit/pkg/renderers/html"
	"github.com/goliatone/go-invitekit/pkg/session"
)

// TemplateDefinition is the immutable template schema hosts author against.
type TemplateDefinition = catalog.TemplateDefinition

// FieldDefinition describes one editable invitation property.
type FieldDefinition = catalog.FieldDefinition

// InviteDraft is one host's invitation instance.
type InviteDraft = draft.InviteDraft

// Session drives the authoring flow for a single draft.
type Session = session.Session

// SessionOption configures a Session.
type SessionOption = session.Option

// BuiltinCatalog returns the registry of templates shipped with the module.
func BuiltinCatalog() *catalog.Registry {
	return catalog.Builtin()
}

// NewResolver builds a renderer resolver with the bundled HTML renderers
// registered for every template in the registry, plus the shared fallback.
func NewResolver(reg *catalog.Registry, mode render.Mode, options ...html.Option) (*render.Resolver, error) {
	resolver := render.NewResolver(
		render.WithMode(mode),
		render.WithFallback(html.FallbackFactory(options...)),
	)
	if err := html.RegisterBuiltin(resolver, reg, options...); err != nil {
		return nil, fmt.Errorf("invitekit: register renderers: %w", err)
	}
	return resolver, nil
}

// NewSession starts an authoring session for a template slug out of the
// registry. It is the simplest entry point for hosts creating an invitation.
func NewSession(reg *catalog.Registry, slug string, options ...SessionOption) (*Session, error) {
	def, err := reg.LookupBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("invitekit: %w", err)
	}
	return session.New(def, options...)
}
