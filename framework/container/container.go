package container

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNotBound is returned when nothing is registered under an abstract.
	ErrNotBound = errors.New("container: no binding registered")
	// ErrType is returned by TryResolve when the resolved value has the wrong type.
	ErrType = errors.New("container: unexpected type")
)

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory builds a concrete value from the container. Returning an error
// fails the resolution; singletons remember the error.
type Factory func(c *Container) (any, error)

type binding struct {
	factory   Factory
	singleton bool
	deferred  bool // placeholder installed by a deferred provider

	once     sync.Once
	instance any
	err      error
}

func (b *binding) resolve(c *Container) (any, error) {
	if !b.singleton {
		return b.factory(c)
	}
	b.once.Do(func() { b.instance, b.err = b.factory(c) })
	return b.instance, b.err
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is a small IoC container keyed by string abstracts.
//
// Singleton factories run at most once, even under concurrent Make calls.
type Container struct {
	mu       sync.RWMutex
	bindings map[string]*binding
	aliases  map[string]string // alias → abstract
}

// New creates a container with itself bound as "container".
func New() *Container {
	c := &Container{
		bindings: make(map[string]*binding),
		aliases:  make(map[string]string),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory: every Make calls it again.
//
//	c.Bind("request.id", func(c *container.Container) (any, error) {
//	    return uuid.NewString(), nil
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.set(abstract, &binding{factory: factory})
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	c.Singleton("validator", func(c *container.Container) (any, error) {
//	    return validation.New(), nil
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.set(abstract, &binding{factory: factory, singleton: true})
}

// Instance registers a pre-built value.
func (c *Container) Instance(abstract string, instance any) {
	b := &binding{singleton: true, instance: instance}
	b.once.Do(func() {})
	c.set(abstract, b)
}

func (c *Container) bindDeferred(abstract string, factory Factory) {
	c.set(abstract, &binding{factory: factory, deferred: true})
}

// set replaces any previous binding, dropping its cached instance.
func (c *Container) set(abstract string, b *binding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings[c.canonical(abstract)] = b
}

// Alias registers an alternative name for an abstract.
//
//	c.Alias("config", "configuration")
func (c *Container) Alias(abstract, alias string) {
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = c.canonical(abstract)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves an abstract, returning ErrNotBound or the factory's error.
func (c *Container) Get(abstract string) (any, error) {
	c.mu.RLock()
	key := c.canonical(abstract)
	b, ok := c.bindings[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: [%s]", ErrNotBound, abstract)
	}
	// Factories run unlocked so they can resolve their own dependencies.
	instance, err := b.resolve(c)
	if err != nil {
		return nil, fmt.Errorf("container: resolve [%s]: %w", key, err)
	}
	return instance, nil
}

// Make resolves an abstract and panics when it cannot. Use it during
// bootstrap, where a missing service is a programming error.
func (c *Container) Make(abstract string) any {
	instance, err := c.Get(abstract)
	if err != nil {
		panic(err)
	}
	return instance
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if an abstract has been registered.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.bindings[c.canonical(abstract)]
	return ok
}

// Forget removes the registration for an abstract.
func (c *Container) Forget(abstract string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bindings, c.canonical(abstract))
}

func (c *Container) isDeferred(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.bindings[c.canonical(abstract)]
	return ok && b.deferred
}

// canonical resolves an alias to its abstract. Callers hold mu.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result, panicking on mismatch.
//
//	v := container.Resolve[*validation.Validator](c, "validator")
func Resolve[T any](c *Container, abstract string) T {
	typed, err := TryResolve[T](c, abstract)
	if err != nil {
		panic(err)
	}
	return typed
}

// TryResolve is like Resolve but returns errors instead of panicking.
func TryResolve[T any](c *Container, abstract string) (T, error) {
	var zero T
	instance, err := c.Get(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: [%s] resolved to %T, want %T", ErrType, abstract, instance, zero)
	}
	return typed, nil
}
