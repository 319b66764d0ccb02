package container

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// Host is the root provider returned by Container.Prepare. It resolves
// singleton and transient names, creates Scopes, and tears everything down on
// Dispose.
//
//	host, err := c.Prepare(ctx, container.WithStrict(true))
//	defer host.Dispose(ctx)
//
//	counter := container.MustResolve[*Counter](host, "counter")
type Host struct {
	store  *store
	strict bool
	log    *log.Logger

	singletons *cellTable

	scopeMu   sync.Mutex
	scopes    []*Scope
	nextScope uint64
}

var _ Provider = (*Host)(nil)

func newHost(s *store, o options) *Host {
	return &Host{
		store:      s,
		strict:     o.strict,
		log:        o.logger,
		singletons: newCellTable("host", o.logger),
	}
}

// settleAsync resolves every async singleton in registration order.
func (h *Host) settleAsync(ctx context.Context) error {
	root := rootFrame(ctx)
	for _, r := range h.store.regs {
		if r.Lifetime != Singleton || !r.Factory.IsAsync() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := h.resolveSingleton(r, root); err != nil {
			return err
		}
	}
	return nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves name.
//
// Singletons are built on first access and shared with every Scope. Transients
// are built on every call; an async transient yields a *Deferred. Scoped and
// unregistered names yield nil in lenient mode and an error in strict mode.
func (h *Host) Get(name string) (any, error) {
	return h.get(name, nil)
}

func (h *Host) get(name string, fr *frame) (any, error) {
	if h.singletons.isDisposed() {
		return nil, h.singletons.disposedError(name)
	}

	reg, ok := h.store.lookup(name)
	if !ok {
		return h.unregistered(name)
	}

	switch reg.Lifetime {
	case Singleton:
		return h.resolveSingleton(reg, fr)
	case Transient:
		return h.resolveTransient(reg, fr)
	default:
		return h.scopedViolation(name)
	}
}

func (h *Host) resolveSingleton(reg Registration, fr *frame) (any, error) {
	return h.singletons.resolve(reg, fr, func(child *frame) View {
		return &view{host: h, self: reg.Name, frame: child}
	})
}

// resolveTransient builds a fresh value. The View never sees scoped names,
// whichever provider the access came through.
func (h *Host) resolveTransient(reg Registration, fr *frame) (any, error) {
	if fr.contains(reg.Name) {
		return nil, fr.circular(reg.Name, fr.before(reg.Name))
	}

	ctx := fr.context()
	h.log.Debug("building transient", "name", reg.Name, "kind", reg.Factory.Kind())

	// The async goroutine keeps the caller's chain as its parent, so reading
	// a name the caller is still building is reported as a cycle.
	child := fr.push(ctx, reg.Name)

	if reg.Factory.IsAsync() {
		d := newDeferred()
		go func() {
			v, err := reg.Factory.call(ctx, &view{host: h, self: reg.Name, frame: child})
			child.close()
			if err != nil {
				err = errors.Wrapf(err, "resolving %q", reg.Name)
			}
			d.settle(v, err)
		}()
		return d, nil
	}

	v, err := reg.Factory.call(ctx, &view{host: h, self: reg.Name, frame: child})
	child.close()
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %q", reg.Name)
	}
	return v, nil
}

func (h *Host) unregistered(name string) (any, error) {
	if h.strict {
		return nil, &UnregisteredServiceError{Name: name}
	}
	h.log.Warn("unregistered service", "name", name)
	return nil, nil
}

func (h *Host) scopedViolation(name string) (any, error) {
	if h.strict {
		return nil, &ScopedAccessViolationError{Name: name}
	}
	h.log.Warn("scoped service read outside a scope", "name", name)
	return nil, nil
}

// ── Edits & introspection ─────────────────────────────────────────────────────

// Set overwrites the value of a singleton name. Sets on any other name are
// ignored. Strict mode forbids every edit.
func (h *Host) Set(name string, value any) error {
	if h.singletons.isDisposed() {
		return h.singletons.disposedError(name)
	}
	if h.strict {
		return &StrictModeViolationError{Name: name, Op: "set"}
	}
	reg, ok := h.store.lookup(name)
	if !ok || reg.Lifetime != Singleton {
		h.log.Debug("ignoring set", "name", name)
		return nil
	}
	return h.singletons.set(name, value)
}

// Has reports whether name can be resolved from the host.
func (h *Host) Has(name string) bool {
	reg, ok := h.store.lookup(name)
	return ok && reg.Lifetime != Scoped
}

// Names returns the singleton and transient names in registration order.
func (h *Host) Names() []string {
	out := make([]string, 0, len(h.store.regs))
	for _, r := range h.store.regs {
		if r.Lifetime != Scoped {
			out = append(out, r.Name)
		}
	}
	return out
}

// Resolved reports whether the singleton name has been built.
func (h *Host) Resolved(name string) bool {
	return h.singletons.resolved(name)
}

// Strict reports whether the host runs in strict mode.
func (h *Host) Strict() bool { return h.strict }

// Use hands a value for name to fn. For transient names the value is fresh
// and its teardown hooks run as soon as fn returns; the host keeps no
// reference to it. An async transient is awaited before fn runs.
func (h *Host) Use(ctx context.Context, name string, fn func(any) error) error {
	if h.singletons.isDisposed() {
		return h.singletons.disposedError(name)
	}
	v, err := h.get(name, rootFrame(ctx))
	if err != nil {
		return err
	}
	return use(ctx, h.store, name, v, fn, h.log)
}

// ── Scopes ────────────────────────────────────────────────────────────────────

// CreateScope returns a new Scope sharing this host's singletons. Async scoped
// names are resolved before it returns, in registration order.
func (h *Host) CreateScope(ctx context.Context) (*Scope, error) {
	h.scopeMu.Lock()
	if h.singletons.isDisposed() {
		h.scopeMu.Unlock()
		return nil, h.singletons.disposedError("")
	}
	h.nextScope++
	s := newScope(h, h.nextScope)
	h.scopes = append(h.scopes, s)
	h.scopeMu.Unlock()

	if err := s.settleAsync(ctx); err != nil {
		if derr := s.Dispose(ctx); derr != nil {
			h.log.Error("disposing partially created scope", "scope", s.id, "error", derr)
		}
		return nil, err
	}

	h.log.Debug("scope created", "scope", s.id)
	return s, nil
}

// Scopes returns the number of live scopes.
func (h *Host) Scopes() int {
	h.scopeMu.Lock()
	defer h.scopeMu.Unlock()
	return len(h.scopes)
}

func (h *Host) removeScope(s *Scope) {
	h.scopeMu.Lock()
	defer h.scopeMu.Unlock()
	for i, live := range h.scopes {
		if live == s {
			h.scopes = append(h.scopes[:i], h.scopes[i+1:]...)
			return
		}
	}
}

// ── Disposal ──────────────────────────────────────────────────────────────────

// Dispose tears down every resolved singleton in registration order (Close,
// then Shutdown), then disposes every live scope in creation order. Shutdown
// hooks run concurrently and Dispose returns once all of them finished.
//
// Dispose is idempotent: later calls return nil and run no hooks. Every other
// method fails with a DisposedProviderAccessError once Dispose has started.
func (h *Host) Dispose(ctx context.Context) error {
	insts, first := h.singletons.drain(h.store.regs, Singleton)
	if !first {
		return nil
	}

	h.scopeMu.Lock()
	scopes := h.scopes
	h.scopes = nil
	h.scopeMu.Unlock()

	h.log.Debug("disposing host", "singletons", len(insts), "scopes", len(scopes))

	var errs []error
	if err := disposeInstances(ctx, insts, h.log); err != nil {
		errs = append(errs, err)
	}
	for _, s := range scopes {
		if err := s.Dispose(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}
