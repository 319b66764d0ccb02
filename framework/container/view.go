package container

// View is the restricted provider a factory receives. It is built fresh for
// every factory invocation and resolves names live, not from a snapshot.
//
// A View never exposes the service being built, and it has no CreateScope or
// Dispose. Views handed to singleton and transient factories do not see
// scoped names at all.
type View interface {
	Resolver

	// Service returns the name being built.
	Service() string

	// Strict reports whether the owning host runs in strict mode.
	Strict() bool
}

type view struct {
	host  *Host
	scope *Scope // nil for singleton and transient factories
	self  string
	frame *frame
}

var _ View = (*view)(nil)

func (v *view) Service() string { return v.self }

func (v *view) Strict() bool { return v.host.strict }

func (v *view) Get(name string) (any, error) {
	if name == v.self {
		if v.host.strict {
			return nil, v.frame.circular(name, v.frame.before(name))
		}
		v.host.log.Warn("factory read its own name", "name", name)
		return nil, nil
	}
	if v.scope != nil {
		return v.scope.get(name, v.frame)
	}
	return v.host.get(name, v.frame)
}

func (v *view) Has(name string) bool {
	if name == v.self {
		return false
	}
	reg, ok := v.host.store.lookup(name)
	return ok && v.visible(reg)
}

func (v *view) Names() []string {
	out := make([]string, 0, len(v.host.store.regs))
	for _, r := range v.host.store.regs {
		if r.Name != v.self && v.visible(r) {
			out = append(out, r.Name)
		}
	}
	return out
}

func (v *view) visible(reg Registration) bool {
	return reg.Lifetime != Scoped || v.scope != nil
}
