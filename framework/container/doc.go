// Package container provides a name-keyed dependency resolution and
// lifecycle engine.
//
// # Overview
//
// Services are registered by name under one of three lifetimes. A prepared
// Host resolves each name on demand, restricts which lifetimes may see which
// others, detects circular construction and tears instances down in a fixed
// order.
//
//   - Singleton: one instance per Host, shared with every Scope
//   - Scoped: one instance per Scope, invisible from the Host
//   - Transient: a fresh instance on every access, never stored
//
// # Container Lifecycle
//
//  1. Register: c, err := container.New().Singleton(...)
//  2. Prepare:  host, err := c.Prepare(ctx)
//  3. Scope:    scope, err := host.CreateScope(ctx)   // one per request or job
//  4. Dispose:  scope.Dispose(ctx); host.Dispose(ctx)
//
// A Container is an immutable value: Register returns a new Container and the
// old one keeps its registrations.
//
// # Factories
//
// The way a value is produced is tagged explicitly at registration:
//
//	container.Bind("config", container.Value(cfg))
//	container.Bind("db", container.Class(NewDB))             // func(View) (*DB, error)
//	container.Bind("clock", container.Func(newClock))        // func(View) (any, error)
//	container.Bind("cache", container.Async(dialCache))      // func(ctx, View) (any, error)
//
// A factory receives a View: a restricted Resolver that hides the service
// being built, has no CreateScope or Dispose, and, for singleton and transient
// factories, hides every scoped name.
//
// # Resolving
//
//	raw, err := host.Get("db")
//	db, err := container.Resolve[*DB](host, "db")
//	db := container.MustResolve[*DB](host, "db")
//
// In lenient mode (default) a name the caller cannot see resolves to nil. With
// WithStrict(true) the same access fails with UnregisteredServiceError or
// ScopedAccessViolationError.
//
// # Circular Dependencies
//
// Reading a sibling while your own factory runs, when that sibling reads you
// back during its own construction, fails with CircularDependencyError. Hold a
// Ref instead and dereference it after construction:
//
//	container.Bind("a", container.Class(func(v container.View) (*A, error) {
//	    return &A{b: container.Lazy[*B](v, "b")}, nil
//	}))
//
// # Disposal
//
// A resolved instance may implement io.Closer, Shutdowner, or both. Dispose
// runs Close first, then Shutdown; Shutdown hooks of one provider run
// concurrently and Dispose waits for all of them. Host.Dispose also disposes
// every live Scope, in creation order. Both are idempotent.
//
// Transients are never tracked. Use hands a fresh transient to a callback and
// tears it down as soon as the callback returns:
//
//	err := host.Use(ctx, "conn", func(v any) error { ... })
//
// # Service Providers
//
//	type CacheProvider struct{ container.BaseProvider }
//
//	func (p *CacheProvider) Register(c container.Container) (container.Container, error) {
//	    return c.Singleton(container.Bind("cache", container.Async(dialCache)))
//	}
//
//	registry := container.NewProviderRegistry()
//	registry.Register(&CacheProvider{})
//	c, err := registry.Build(container.New())
package container
