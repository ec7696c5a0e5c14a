package container

import (
	"fmt"
	"sync"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the registrations of one subsystem.
//
// Boot is called after every eager provider has been registered, so it may
// resolve bindings from other providers.
//
//	type CacheProvider struct{ container.BaseProvider }
//
//	func (p *CacheProvider) Register(app *container.Container) {
//	    app.Singleton("cache", func(c *container.Container) (any, error) { ... })
//	}
type ServiceProvider interface {
	// Register binds services into the container. It must not resolve
	// anything; factories do that lazily.
	Register(app *Container)

	// Boot runs once all eager providers are registered.
	Boot(app *Container)

	// Provides lists the abstracts a deferred provider registers.
	Provides() []string

	// IsDeferred reports whether Register should wait until one of
	// Provides() is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable no-op implementation of everything but
// Register.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots ServiceProviders, loading deferred
// providers on first use.
type ProviderRegistry struct {
	app *Container

	mu         sync.Mutex
	eager      []ServiceProvider
	registered map[ServiceProvider]bool
	loaded     map[ServiceProvider]bool // deferred providers already registered
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
		loaded:     make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Eager providers are registered immediately (and
// booted too if the registry already booted); deferred ones get placeholder
// bindings for each abstract they provide. Registering twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		r.mu.Unlock()
		for _, abstract := range provider.Provides() {
			r.app.bindDeferred(abstract, r.placeholder(provider, abstract))
		}
		return
	}

	r.eager = append(r.eager, provider)
	booted := r.booted
	r.mu.Unlock()

	provider.Register(r.app)
	if booted {
		provider.Boot(r.app)
	}
}

// placeholder loads the deferred provider, then resolves the real binding
// it installed.
func (r *ProviderRegistry) placeholder(provider ServiceProvider, abstract string) Factory {
	return func(c *Container) (any, error) {
		r.load(provider)
		if c.isDeferred(abstract) {
			return nil, fmt.Errorf("%w: deferred provider %T does not register [%s]", ErrNotBound, provider, abstract)
		}
		return c.Get(abstract)
	}
}

func (r *ProviderRegistry) load(provider ServiceProvider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded[provider] {
		return
	}
	r.loaded[provider] = true
	provider.Register(r.app)
	if r.booted {
		provider.Boot(r.app)
	}
}

// Boot calls Boot on every eager provider. Only the first call has effect.
func (r *ProviderRegistry) Boot() {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return
	}
	r.booted = true
	eager := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns the registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}
