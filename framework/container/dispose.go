package container

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

// Shutdowner is the asynchronous teardown hook. A resolved instance may
// implement io.Closer, Shutdowner, or both; Close always runs first.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// instance is a resolved value handed over for teardown.
type instance struct {
	name  string
	value any
}

// disposeInstances tears insts down in order. Close hooks run inline; Shutdown
// hooks are started in the same order, run concurrently and are joined before
// returning. Every hook error is kept.
func disposeInstances(ctx context.Context, insts []instance, logger *log.Logger) error {
	var errs []error
	p := pool.New().WithErrors()

	for _, in := range insts {
		logger.Debug("disposing", "name", in.name)

		if c, ok := in.value.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Error("close failed", "name", in.name, "error", err)
				errs = append(errs, errors.Wrapf(err, "closing %q", in.name))
			}
		}

		if s, ok := in.value.(Shutdowner); ok {
			name := in.name
			p.Go(func() error {
				if err := s.Shutdown(ctx); err != nil {
					logger.Error("shutdown failed", "name", name, "error", err)
					return errors.Wrapf(err, "shutting down %q", name)
				}
				return nil
			})
		}
	}

	if err := p.Wait(); err != nil {
		errs = append(errs, err)
	}
	return stderrors.Join(errs...)
}

// hasHooks reports whether v carries a teardown hook.
func hasHooks(v any) bool {
	switch v.(type) {
	case io.Closer, Shutdowner:
		return true
	}
	return false
}

// use runs fn on v and, for transient names, tears v down right after. The
// teardown is the only one a transient ever gets; providers keep no reference.
func use(ctx context.Context, s *store, name string, v any, fn func(any) error, logger *log.Logger) error {
	reg, _ := s.lookup(name)
	transient := reg.Lifetime == Transient

	if d, ok := v.(*Deferred); ok && transient && reg.Factory.IsAsync() {
		var err error
		if v, err = d.Await(ctx); err != nil {
			return err
		}
	}

	err := fn(v)
	if transient && hasHooks(v) {
		if derr := disposeInstances(ctx, []instance{{name: name, value: v}}, logger); derr != nil {
			err = stderrors.Join(err, derr)
		}
	}
	return err
}
