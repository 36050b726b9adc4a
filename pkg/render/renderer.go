package render

import (
	"context"

	"github.com/goliatone/go-invitekit/pkg/catalog"
)

// Context carries everything a per-template renderer receives. Renderers must
// tolerate a partially filled Data bag (missing optional fields render
// nothing for that sub-section) and an empty InviteID (preview-only mode, no
// RSVP submission capability).
type Context struct {
	Config    catalog.TemplateDefinition
	Data      map[string]any
	IsPreview bool
	InviteID  string
}

// Renderer turns (config, data) into the guest-facing page bytes. Concrete
// implementations are opaque to the authoring pipeline.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, rctx Context) ([]byte, error)
}

// Factory constructs a renderer on first resolution. Factories may do real
// loading work (template parsing, asset setup); the resolver guarantees each
// runs at most once per key.
type Factory func() (Renderer, error)
