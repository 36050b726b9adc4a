package html

import (
	"context"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-invitekit/pkg/catalog"
	"github.com/goliatone/go-invitekit/pkg/field"
	"github.com/goliatone/go-invitekit/pkg/render"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templateFS  fs.FS
	engine      *Engine
	themeConfig *theme.RendererConfig
}

// WithTemplates overrides the embedded template bundle.
func WithTemplates(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithEngine injects a pre-built template engine, typically shared across the
// renderers of one resolver.
func WithEngine(engine *Engine) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// WithTheme supplies a resolved go-theme renderer config whose tokens become
// CSS custom properties on the page.
func WithTheme(themeConfig *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.themeConfig = themeConfig
	}
}

// Renderer renders one template's invite page from an embedded pongo2
// template. The template file is named after the registration key
// (templates/<name>.tmpl).
type Renderer struct {
	name     string
	template string
	engine   *Engine
	theme    pageTheme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a renderer for the named template.
func New(name string, options ...Option) (*Renderer, error) {
	if name == "" {
		return nil, fmt.Errorf("html: renderer name is required")
	}

	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	engine := cfg.engine
	if engine == nil {
		built, err := NewEngine(WithTemplatesFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("html: configure engine: %w", err)
		}
		engine = built
	}

	return &Renderer{
		name:     name,
		template: "templates/" + name,
		engine:   engine,
		theme:    buildThemeContext(cfg.themeConfig),
	}, nil
}

func (r *Renderer) Name() string {
	return r.name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render builds the page view model and executes the template. Missing
// optional fields simply produce empty values; templates guard their own
// sub-sections.
func (r *Renderer) Render(ctx context.Context, rctx render.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := viewData(rctx.Config, rctx.Data)
	result, err := r.engine.RenderTemplate(r.template, map[string]any{
		"config":    rctx.Config,
		"data":      data,
		"entries":   viewEntries(rctx.Config, data),
		"isPreview": rctx.IsPreview,
		"inviteId":  rctx.InviteID,
		"canRSVP":   !rctx.IsPreview && rctx.InviteID != "",
		"theme":     r.theme,
	})
	if err != nil {
		return nil, fmt.Errorf("html: render %q: %w", r.name, err)
	}
	return []byte(result), nil
}

// viewEntry is one labelled value row the generic fallback page iterates.
type viewEntry struct {
	Label string
	Value any
}

// viewEntries lists non-empty fields in definition order for templates that
// have no bespoke layout.
func viewEntries(def catalog.TemplateDefinition, data map[string]any) []viewEntry {
	var out []viewEntry
	for _, fieldDef := range def.Fields {
		value, ok := data[fieldDef.Key]
		if !ok {
			continue
		}
		if s, isString := value.(string); isString && s == "" {
			continue
		}
		out = append(out, viewEntry{Label: fieldDef.Label, Value: value})
	}
	return out
}

// viewData normalizes the raw bag into template-friendly values keyed by
// field key. Unknown field types are skipped, matching the field engine's
// permissiveness.
func viewData(def catalog.TemplateDefinition, data map[string]any) map[string]any {
	out := make(map[string]any, len(def.Fields))
	for _, fieldDef := range def.Fields {
		frag, ok := field.Build(fieldDef, data)
		if !ok {
			continue
		}
		switch frag.Control {
		case field.ControlToggle:
			out[fieldDef.Key] = frag.Bool
		case field.ControlNumber:
			if frag.HasNumber {
				out[fieldDef.Key] = frag.Number
			}
		case field.ControlImageSet:
			out[fieldDef.Key] = frag.Images
		case field.ControlSchedule:
			out[fieldDef.Key] = frag.Schedule
		default:
			out[fieldDef.Key] = frag.Text
		}
	}
	return out
}
