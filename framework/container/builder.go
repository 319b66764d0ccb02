package container

// Builder is a fluent front end for Container.Register. The first error is
// kept and every later call becomes a no-op; Build returns it.
//
//	c, err := container.NewBuilder().
//	    Singleton(container.Bind("config", container.Value(cfg))).
//	    Scoped(container.Bind("request", container.Func(newRequest))).
//	    Transient(container.Bind("token", container.Func(newToken))).
//	    Build()
type Builder struct {
	c   Container
	err error
}

// NewBuilder starts a Builder from an empty Container.
func NewBuilder() *Builder {
	return &Builder{}
}

// From starts a Builder on top of an existing Container.
func From(c Container) *Builder {
	return &Builder{c: c}
}

// Register adds bindings with the given lifetime.
func (b *Builder) Register(lifetime Lifetime, bindings ...Binding) *Builder {
	if b.err != nil {
		return b
	}
	b.c, b.err = b.c.Register(lifetime, bindings...)
	return b
}

// Singleton adds bindings with the Singleton lifetime.
func (b *Builder) Singleton(bindings ...Binding) *Builder {
	return b.Register(Singleton, bindings...)
}

// Scoped adds bindings with the Scoped lifetime.
func (b *Builder) Scoped(bindings ...Binding) *Builder {
	return b.Register(Scoped, bindings...)
}

// Transient adds bindings with the Transient lifetime.
func (b *Builder) Transient(bindings ...Binding) *Builder {
	return b.Register(Transient, bindings...)
}

// Build returns the accumulated Container or the first registration error.
func (b *Builder) Build() (Container, error) {
	return b.c, b.err
}
