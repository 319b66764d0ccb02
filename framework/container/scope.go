package container

import (
	"context"
	"strconv"
)

// Scope is a child provider created by Host.CreateScope. It resolves scoped
// names into its own store and reads singletons from the host's store, so a
// singleton is shared by the host and every scope while scoped instances are
// never shared between scopes.
type Scope struct {
	id   uint64
	host *Host

	scoped *cellTable
}

var _ Provider = (*Scope)(nil)

func newScope(h *Host, id uint64) *Scope {
	return &Scope{
		id:     id,
		host:   h,
		scoped: newCellTable("scope "+strconv.FormatUint(id, 10), h.log),
	}
}

// ID returns the scope's sequence number within its host, starting at 1.
func (s *Scope) ID() uint64 { return s.id }

// Host returns the host that created the scope.
func (s *Scope) Host() *Host { return s.host }

func (s *Scope) settleAsync(ctx context.Context) error {
	root := rootFrame(ctx)
	for _, r := range s.host.store.regs {
		if r.Lifetime != Scoped || !r.Factory.IsAsync() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.resolveScoped(r, root); err != nil {
			return err
		}
	}
	return nil
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves name. Scoped names are built once per scope, singletons come
// from the host, transients are built on every call.
func (s *Scope) Get(name string) (any, error) {
	return s.get(name, nil)
}

func (s *Scope) get(name string, fr *frame) (any, error) {
	if s.scoped.isDisposed() {
		return nil, s.scoped.disposedError(name)
	}

	reg, ok := s.host.store.lookup(name)
	if !ok {
		return s.host.unregistered(name)
	}

	switch reg.Lifetime {
	case Scoped:
		return s.resolveScoped(reg, fr)
	case Singleton:
		return s.host.resolveSingleton(reg, fr)
	default:
		return s.host.resolveTransient(reg, fr)
	}
}

func (s *Scope) resolveScoped(reg Registration, fr *frame) (any, error) {
	return s.scoped.resolve(reg, fr, func(child *frame) View {
		return &view{host: s.host, scope: s, self: reg.Name, frame: child}
	})
}

// ── Edits & introspection ─────────────────────────────────────────────────────

// Set overwrites a scoped name in this scope, or a singleton name in the
// shared host store. Sets on any other name are ignored. Strict mode forbids
// every edit.
func (s *Scope) Set(name string, value any) error {
	if s.scoped.isDisposed() {
		return s.scoped.disposedError(name)
	}
	if s.host.strict {
		return &StrictModeViolationError{Name: name, Op: "set"}
	}
	reg, ok := s.host.store.lookup(name)
	if !ok {
		return nil
	}
	switch reg.Lifetime {
	case Scoped:
		return s.scoped.set(name, value)
	case Singleton:
		return s.host.singletons.set(name, value)
	}
	return nil
}

// Has reports whether name is registered.
func (s *Scope) Has(name string) bool {
	_, ok := s.host.store.lookup(name)
	return ok
}

// Names returns every registered name in registration order.
func (s *Scope) Names() []string {
	out := make([]string, 0, len(s.host.store.regs))
	for _, r := range s.host.store.regs {
		out = append(out, r.Name)
	}
	return out
}

// Resolved reports whether the scoped name has been built in this scope.
func (s *Scope) Resolved(name string) bool {
	return s.scoped.resolved(name)
}

// Strict reports whether the owning host runs in strict mode.
func (s *Scope) Strict() bool { return s.host.strict }

// Use is Host.Use for this scope.
func (s *Scope) Use(ctx context.Context, name string, fn func(any) error) error {
	if s.scoped.isDisposed() {
		return s.scoped.disposedError(name)
	}
	v, err := s.get(name, rootFrame(ctx))
	if err != nil {
		return err
	}
	return use(ctx, s.host.store, name, v, fn, s.host.log)
}

// ── Disposal ──────────────────────────────────────────────────────────────────

// Dispose tears down the scoped instances of this scope in registration order
// and detaches the scope from its host. Singletons are left alone. Dispose is
// idempotent.
func (s *Scope) Dispose(ctx context.Context) error {
	insts, first := s.scoped.drain(s.host.store.regs, Scoped)
	if !first {
		return nil
	}
	s.host.removeScope(s)
	s.host.log.Debug("disposing scope", "scope", s.id, "instances", len(insts))
	return disposeInstances(ctx, insts, s.host.log)
}
