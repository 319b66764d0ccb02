package container

import (
	"context"

	"github.com/pkg/errors"
)

// Deferred is the pending result of an async transient. The provider never
// awaits it; the caller does.
//
//	raw, _ := host.Get("report")
//	report, err := container.AwaitAs[*Report](ctx, raw.(*container.Deferred))
type Deferred struct {
	done  chan struct{}
	value any
	err   error
}

func newDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

func (d *Deferred) settle(value any, err error) {
	d.value, d.err = value, err
	close(d.done)
}

// Done is closed once the result is available.
func (d *Deferred) Done() <-chan struct{} { return d.done }

// Await blocks until the result is available or ctx ends.
func (d *Deferred) Await(ctx context.Context) (any, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// AwaitAs awaits d and asserts the result to T.
func AwaitAs[T any](ctx context.Context, d *Deferred) (T, error) {
	var zero T
	v, err := d.Await(ctx)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	out, ok := v.(T)
	if !ok {
		return zero, errors.Errorf("container: deferred value is %T, not %s", v, typeName[T]())
	}
	return out, nil
}
