package catalog

import (
	"fmt"
	"sort"
	"sync"
)

// NotFoundError reports a slug the registry does not know about.
type NotFoundError struct {
	Slug string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("catalog: template %q not found", e.Slug)
}

// Registry stores template definitions by slug. Lookups are synchronous and
// side-effect free so the wizard can resolve its schema before first render.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]TemplateDefinition
	order     []string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]TemplateDefinition),
	}
}

// Register adds a template after validating catalog invariants: non-empty
// unique slug, a category, and field keys unique within the template.
func (r *Registry) Register(def TemplateDefinition) error {
	if def.Slug == "" {
		return fmt.Errorf("catalog: template slug is required")
	}
	if def.Category == "" {
		return fmt.Errorf("catalog: template %q: category is required", def.Slug)
	}
	seen := make(map[string]struct{}, len(def.Fields))
	for _, field := range def.Fields {
		if field.Key == "" {
			return fmt.Errorf("catalog: template %q: field key is required", def.Slug)
		}
		if _, dup := seen[field.Key]; dup {
			return fmt.Errorf("catalog: template %q: duplicate field key %q", def.Slug, field.Key)
		}
		seen[field.Key] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[def.Slug]; exists {
		return fmt.Errorf("catalog: template %q already registered", def.Slug)
	}

	r.templates[def.Slug] = def
	r.order = append(r.order, def.Slug)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time catalogs.
func (r *Registry) MustRegister(def TemplateDefinition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// LookupBySlug returns the definition registered under slug.
func (r *Registry) LookupBySlug(slug string) (TemplateDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.templates[slug]
	if !ok {
		return TemplateDefinition{}, NotFoundError{Slug: slug}
	}
	return def, nil
}

// LookupByCategory returns every template in the category, in registration
// order.
func (r *Registry) LookupByCategory(category Category) []TemplateDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []TemplateDefinition
	for _, slug := range r.order {
		def := r.templates[slug]
		if def.Category == category {
			out = append(out, def)
		}
	}
	return out
}

// Slugs returns a sorted list of registered template slugs.
func (r *Registry) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	slugs := make([]string, 0, len(r.templates))
	for slug := range r.templates {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Has reports whether a template is registered under slug.
func (r *Registry) Has(slug string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.templates[slug]
	return ok
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}
