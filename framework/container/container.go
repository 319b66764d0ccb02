package container

import "context"

// ── Registrations ─────────────────────────────────────────────────────────────

// Binding pairs a name with its factory. Build one with Bind.
type Binding struct {
	Name    string
	Factory Factory
}

// Bind pairs name with factory for Register.
//
//	c, err := c.Register(container.Singleton,
//	    container.Bind("config", container.Value(cfg)),
//	    container.Bind("db", container.Class(NewDB)),
//	)
func Bind(name string, factory Factory) Binding {
	return Binding{Name: name, Factory: factory}
}

// Registration is an immutable store entry.
type Registration struct {
	Name     string
	Lifetime Lifetime
	Factory  Factory
}

// reservedNames can never be registered: a View must not be able to reach
// provider-management members through a name lookup.
var reservedNames = map[string]bool{
	"createScope": true,
	"dispose":     true,
}

// store is an ordered name → registration mapping. A store is never mutated
// after construction; merge returns a copy.
type store struct {
	regs  []Registration
	index map[string]int
}

func (s *store) lookup(name string) (Registration, bool) {
	if s == nil {
		return Registration{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Registration{}, false
	}
	return s.regs[i], true
}

func (s *store) len() int {
	if s == nil {
		return 0
	}
	return len(s.regs)
}

// merge copies s and applies regs on top of it. An overriding entry keeps the
// position of the entry it replaces.
func (s *store) merge(regs []Registration) *store {
	out := &store{
		regs:  make([]Registration, 0, s.len()+len(regs)),
		index: make(map[string]int, s.len()+len(regs)),
	}
	if s != nil {
		out.regs = append(out.regs, s.regs...)
		for name, i := range s.index {
			out.index[name] = i
		}
	}
	for _, r := range regs {
		if i, ok := out.index[r.Name]; ok {
			out.regs[i] = r
			continue
		}
		out.index[r.Name] = len(out.regs)
		out.regs = append(out.regs, r)
	}
	return out
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is an immutable set of registrations. Every Register call returns
// a new Container and leaves the receiver untouched, so a Container can be
// shared, extended in different directions and prepared more than once.
//
// The zero value is an empty Container ready for registration.
type Container struct {
	store *store
}

// New returns an empty Container.
func New() Container {
	return Container{}
}

// Register returns a new Container holding the receiver's registrations plus
// bindings, all tagged with lifetime. Later registrations of an existing name
// override it. On error the receiver is returned unchanged.
func (c Container) Register(lifetime Lifetime, bindings ...Binding) (Container, error) {
	if !lifetime.Valid() {
		return c, &RegistrationError{Reason: "unknown lifetime " + lifetime.String()}
	}

	seen := make(map[string]bool, len(bindings))
	regs := make([]Registration, 0, len(bindings))
	for _, b := range bindings {
		switch {
		case b.Name == "":
			return c, &RegistrationError{Reason: "name cannot be empty"}
		case reservedNames[b.Name]:
			return c, &RegistrationError{Name: b.Name, Reason: "name is reserved"}
		case seen[b.Name]:
			return c, &RegistrationError{Name: b.Name, Reason: "registered twice in one call"}
		case !b.Factory.valid():
			return c, &RegistrationError{Name: b.Name, Reason: "factory cannot be nil"}
		}
		seen[b.Name] = true
		regs = append(regs, Registration{Name: b.Name, Lifetime: lifetime, Factory: b.Factory})
	}

	return Container{store: c.store.merge(regs)}, nil
}

// MustRegister is like Register but panics on error.
func (c Container) MustRegister(lifetime Lifetime, bindings ...Binding) Container {
	out, err := c.Register(lifetime, bindings...)
	if err != nil {
		panic(err)
	}
	return out
}

// Singleton registers bindings with the Singleton lifetime.
func (c Container) Singleton(bindings ...Binding) (Container, error) {
	return c.Register(Singleton, bindings...)
}

// Scoped registers bindings with the Scoped lifetime.
func (c Container) Scoped(bindings ...Binding) (Container, error) {
	return c.Register(Scoped, bindings...)
}

// Transient registers bindings with the Transient lifetime.
func (c Container) Transient(bindings ...Binding) (Container, error) {
	return c.Register(Transient, bindings...)
}

// Lookup returns the registration for name.
func (c Container) Lookup(name string) (Registration, bool) {
	return c.store.lookup(name)
}

// Names returns every registered name in registration order.
func (c Container) Names() []string {
	out := make([]string, 0, c.store.len())
	if c.store != nil {
		for _, r := range c.store.regs {
			out = append(out, r.Name)
		}
	}
	return out
}

// Registrations returns a copy of the store in registration order.
func (c Container) Registrations() []Registration {
	if c.store == nil {
		return nil
	}
	return append([]Registration(nil), c.store.regs...)
}

// Len returns the number of registered names.
func (c Container) Len() int { return c.store.len() }

// ── Prepare ───────────────────────────────────────────────────────────────────

// Prepare snapshots the registrations and returns a Host bound to them.
//
// Synchronous singletons are resolved lazily on first access. Async
// singletons are resolved here, one at a time in registration order, and
// Prepare returns once all of them have settled. If one fails, the partial
// host is disposed and the factory error is returned.
func (c Container) Prepare(ctx context.Context, opts ...Option) (*Host, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	snapshot := c.store
	if snapshot == nil {
		snapshot = &store{index: map[string]int{}}
	}

	h := newHost(snapshot, o)
	if err := h.settleAsync(ctx); err != nil {
		if derr := h.Dispose(ctx); derr != nil {
			h.log.Error("disposing partially prepared host", "error", derr)
		}
		return nil, err
	}

	h.log.Debug("host prepared", "registrations", snapshot.len(), "strict", o.strict)
	return h, nil
}
