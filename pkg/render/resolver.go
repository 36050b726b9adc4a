package render

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-invitekit/pkg/catalog"
)

// Mode controls how the resolver treats an unresolvable key. A catalog entry
// without a renderer is a configuration bug, not user input: development
// fails loudly while production degrades to the fallback when one is
// registered.
type Mode int

const (
	ModeDevelopment Mode = iota
	ModeProduction
)

// Key identifies a renderer registration.
type Key struct {
	Category catalog.Category
	Slug     string
}

func (k Key) String() string {
	return string(k.Category) + "/" + k.Slug
}

// UnresolvedError reports a (category, slug) pair with no registered factory.
type UnresolvedError struct {
	Key Key
}

func (e UnresolvedError) Error() string {
	return fmt.Sprintf("render: no renderer registered for %s", e.Key)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMode sets the resolver mode. The default is development.
func WithMode(mode Mode) Option {
	return func(r *Resolver) {
		r.mode = mode
	}
}

// WithFallback registers the generic renderer production mode degrades to for
// unknown keys.
func WithFallback(factory Factory) Option {
	return func(r *Resolver) {
		r.fallback = factory
	}
}

type entry struct {
	factory  Factory
	once     sync.Once
	renderer Renderer
	err      error
}

// Resolver maps (category, slug) pairs onto lazily constructed renderers.
// Each factory runs at most once; repeated resolution of the same key reuses
// the loaded renderer.
type Resolver struct {
	mu       sync.RWMutex
	entries  map[Key]*entry
	fallback Factory
	fbEntry  *entry
	mode     Mode
}

// NewResolver constructs a resolver applying any provided options.
func NewResolver(options ...Option) *Resolver {
	r := &Resolver{
		entries: make(map[Key]*entry),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.fallback != nil {
		r.fbEntry = &entry{factory: r.fallback}
	}
	return r
}

// Register binds a factory to (category, slug). Duplicate registrations are
// an error so a catalog/renderer mismatch surfaces at wiring time.
func (r *Resolver) Register(category catalog.Category, slug string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("render: factory is required")
	}
	if category == "" || slug == "" {
		return fmt.Errorf("render: category and slug are required")
	}
	key := Key{Category: category, Slug: slug}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("render: renderer for %s already registered", key)
	}
	r.entries[key] = &entry{factory: factory}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Resolver) MustRegister(category catalog.Category, slug string, factory Factory) {
	if err := r.Register(category, slug, factory); err != nil {
		panic(err)
	}
}

// Has reports whether a factory is registered for the key.
func (r *Resolver) Has(category catalog.Category, slug string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[Key{Category: category, Slug: slug}]
	return ok
}

// Resolve returns the renderer for (category, slug), constructing it on first
// use. Unknown keys error in development mode; production mode degrades to
// the fallback renderer when one is registered and errors otherwise.
func (r *Resolver) Resolve(category catalog.Category, slug string) (Renderer, error) {
	key := Key{Category: category, Slug: slug}

	r.mu.RLock()
	e, ok := r.entries[key]
	fb := r.fbEntry
	mode := r.mode
	r.mu.RUnlock()

	if !ok {
		if mode == ModeProduction && fb != nil {
			return load(fb)
		}
		return nil, UnresolvedError{Key: key}
	}
	return load(e)
}

// Fallback resolves the registered fallback renderer directly.
func (r *Resolver) Fallback() (Renderer, error) {
	r.mu.RLock()
	fb := r.fbEntry
	r.mu.RUnlock()

	if fb == nil {
		return nil, fmt.Errorf("render: no fallback renderer registered")
	}
	return load(fb)
}

func load(e *entry) (Renderer, error) {
	e.once.Do(func() {
		e.renderer, e.err = e.factory()
		if e.err == nil && e.renderer == nil {
			e.err = fmt.Errorf("render: factory returned nil renderer")
		}
	})
	return e.renderer, e.err
}
