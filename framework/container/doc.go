// Package container provides a small IoC container and a service provider
// registry used to bootstrap the application.
//
// # Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&MyProvider{})
//  3. Boot: registry.Boot()
//  4. Serve requests
//
// # Bindings
//
//	// Transient: the factory runs on every Make
//	c.Bind("clock", func(c *container.Container) (any, error) { return time.Now, nil })
//
//	// Singleton: created once, reused
//	c.Singleton("validator", func(c *container.Container) (any, error) {
//	    logger := container.Resolve[*slog.Logger](c, "logger")
//	    return validation.New(validation.WithLogger(logger)), nil
//	})
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
//	// Alternative name
//	c.Alias("config", "configuration")
//
// # Resolution
//
// Make and Resolve panic when a binding is missing or its factory fails;
// Get and TryResolve return the error instead:
//
//	v := container.Resolve[*validation.Validator](c, "validator")
//
//	sets, err := container.TryResolve[validation.RuleSets](c, "rulesets")
//	if err != nil { ... }
//
// # Deferred providers
//
// A provider whose IsDeferred returns true is not registered until one of
// the abstracts listed by Provides is first resolved.
package container
