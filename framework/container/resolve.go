package container

import (
	"context"
	"reflect"

	"github.com/pkg/errors"
)

// ── Interfaces ────────────────────────────────────────────────────────────────

// Resolver looks services up by name. Host, Scope and View implement it.
type Resolver interface {
	// Get resolves name. In lenient mode names the caller cannot see yield
	// nil and no error.
	Get(name string) (any, error)

	// Has reports whether name is visible to the caller.
	Has(name string) bool

	// Names returns the visible names in registration order.
	Names() []string
}

// Provider is a Resolver that owns instances: Host and Scope.
type Provider interface {
	Resolver
	Set(name string, value any) error
	Use(ctx context.Context, name string, fn func(any) error) error
	Dispose(ctx context.Context) error
	Strict() bool
}

// ── Generic helpers ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Get and type-asserts the result.
// A nil result (lenient miss) returns the zero T and no error.
//
//	db, err := container.Resolve[*DB](host, "db")
func Resolve[T any](r Resolver, name string) (T, error) {
	var zero T
	v, err := r.Get(name)
	if err != nil || v == nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, errors.Errorf("container: Resolve[%s]: %q resolved to %T", typeName[T](), name, v)
	}
	return out, nil
}

// MustResolve is like Resolve but panics on error. Inside a factory the panic
// is turned back into the factory's error when it comes from the engine.
//
//	container.Bind("repo", container.Class(func(v container.View) (*Repo, error) {
//	    return &Repo{DB: container.MustResolve[*DB](v, "db")}, nil
//	}))
func MustResolve[T any](r Resolver, name string) T {
	out, err := Resolve[T](r, name)
	if err != nil {
		panic(err)
	}
	return out
}

// UseAs is Provider.Use with a typed callback.
func UseAs[T any](ctx context.Context, p Provider, name string, fn func(T) error) error {
	return p.Use(ctx, name, func(v any) error {
		out, ok := v.(T)
		if !ok && v != nil {
			return errors.Errorf("container: UseAs[%s]: %q resolved to %T", typeName[T](), name, v)
		}
		return fn(out)
	})
}

// ── Refs ──────────────────────────────────────────────────────────────────────

// Ref is a live handle on a name. Nothing is resolved until Get is called,
// so a factory may hold a Ref to a sibling that depends on it and dereference
// it after both are built.
//
//	container.Bind("a", container.Class(func(v container.View) (*A, error) {
//	    return &A{b: container.Lazy[*B](v, "b")}, nil
//	}))
type Ref[T any] struct {
	r    Resolver
	name string
}

// Lazy returns a Ref on name, resolved through r.
func Lazy[T any](r Resolver, name string) Ref[T] {
	return Ref[T]{r: r, name: name}
}

// Name returns the referenced name.
func (ref Ref[T]) Name() string { return ref.name }

// Get resolves the referenced name now. Transient names are rebuilt on every
// call.
func (ref Ref[T]) Get() (T, error) {
	return Resolve[T](ref.r, ref.name)
}

// MustGet is like Get but panics on error.
func (ref Ref[T]) MustGet() T {
	return MustResolve[T](ref.r, ref.name)
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
