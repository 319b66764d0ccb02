package container

import "context"

// Kind tags how a Factory produces its value. It is fixed by the constructor
// used at registration and never inferred from the callable's shape.
type Kind int

const (
	// KindClass marks a typed constructor registered with Class.
	KindClass Kind = iota
	// KindFunc marks an untyped function registered with Func.
	KindFunc
	// KindValue marks a ready-made value registered with Value.
	KindValue
	// KindAsync marks a context-aware function registered with Async.
	KindAsync
)

// String returns the lowercase tag name, or "unknown".
func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindFunc:
		return "func"
	case KindValue:
		return "value"
	case KindAsync:
		return "async"
	default:
		return "unknown"
	}
}

// Factory builds the value registered under a name. Use Class, Func, Value or
// Async to create one.
type Factory struct {
	kind  Kind
	build func(ctx context.Context, v View) (any, error)
}

// Class registers a typed constructor.
//
//	container.Bind("db", container.Class(func(v container.View) (*DB, error) {
//	    cfg := container.MustResolve[*Config](v, "config")
//	    return OpenDB(cfg.DSN)
//	}))
func Class[T any](ctor func(v View) (T, error)) Factory {
	f := Factory{kind: KindClass}
	if ctor != nil {
		f.build = func(_ context.Context, v View) (any, error) { return ctor(v) }
	}
	return f
}

// Func registers a plain factory function.
//
//	container.Bind("counter", container.Func(func(container.View) (any, error) {
//	    return &Counter{}, nil
//	}))
func Func(fn func(v View) (any, error)) Factory {
	f := Factory{kind: KindFunc}
	if fn != nil {
		f.build = func(_ context.Context, v View) (any, error) { return fn(v) }
	}
	return f
}

// Value registers a constant. Every resolution returns value as-is.
func Value(value any) Factory {
	return Factory{
		kind:  KindValue,
		build: func(context.Context, View) (any, error) { return value, nil },
	}
}

// Async registers a factory that may block on I/O. Async singletons are
// settled by Prepare and async scoped names by CreateScope; async transients
// resolve to a *Deferred the caller awaits.
func Async(fn func(ctx context.Context, v View) (any, error)) Factory {
	f := Factory{kind: KindAsync}
	if fn != nil {
		f.build = fn
	}
	return f
}

// Kind returns the registration tag.
func (f Factory) Kind() Kind { return f.kind }

// IsAsync reports whether the factory was registered with Async.
func (f Factory) IsAsync() bool { return f.kind == KindAsync }

func (f Factory) valid() bool { return f.build != nil }

// call runs the factory. A panic carrying one of this package's errors (from
// MustResolve inside the factory, typically) is returned as an error.
func (f Factory) call(ctx context.Context, v View) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && isEngineError(e) {
				value, err = nil, e
				return
			}
			panic(r)
		}
	}()
	return f.build(ctx, v)
}
