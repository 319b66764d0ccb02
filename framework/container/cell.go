package container

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

type cellState int

const (
	cellNotStarted cellState = iota
	cellInProgress
	cellDone
	cellDisposed
)

// cell is the lazy resolution unit of one singleton or scoped name.
type cell struct {
	state cellState
	value any

	// wait is closed when the current InProgress run ends.
	wait chan struct{}

	// stack is the chain that was resolving when this run started.
	stack []string
}

// cellTable owns the cells of one provider. Singleton cells live in the
// host's table, scoped cells in each scope's table.
type cellTable struct {
	owner string
	log   *log.Logger

	mu       sync.Mutex
	entries  map[string]*cell
	disposed bool
}

func newCellTable(owner string, logger *log.Logger) *cellTable {
	return &cellTable{
		owner:   owner,
		log:     logger,
		entries: make(map[string]*cell),
	}
}

func (t *cellTable) isDisposed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.disposed
}

func (t *cellTable) disposedError(name string) error {
	return &DisposedProviderAccessError{Name: name, Provider: t.owner}
}

// resolve returns the value of reg's cell, running its factory on first
// access. mkView builds the View handed to the factory for the new frame.
func (t *cellTable) resolve(reg Registration, fr *frame, mkView func(*frame) View) (any, error) {
	for {
		t.mu.Lock()
		if t.disposed {
			t.mu.Unlock()
			return nil, t.disposedError(reg.Name)
		}

		c := t.entries[reg.Name]
		if c == nil {
			c = &cell{}
			t.entries[reg.Name] = c
		}

		switch c.state {
		case cellDone:
			v := c.value
			t.mu.Unlock()
			return v, nil

		case cellInProgress:
			if fr.contains(reg.Name) {
				stack := c.stack
				t.mu.Unlock()
				return nil, fr.circular(reg.Name, stack)
			}
			// Another goroutine is building it.
			wait := c.wait
			t.mu.Unlock()
			ctx := fr.context()
			select {
			case <-wait:
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}

		default:
			return t.run(c, reg, fr, mkView)
		}
	}
}

// run is entered with t.mu held and c NotStarted.
func (t *cellTable) run(c *cell, reg Registration, fr *frame, mkView func(*frame) View) (any, error) {
	ctx := fr.context()
	child := fr.push(ctx, reg.Name)

	c.state = cellInProgress
	c.wait = make(chan struct{})
	c.stack = fr.chain()
	wait := c.wait
	t.mu.Unlock()

	finished := false
	defer func() {
		if finished {
			return
		}
		// The factory panicked: release waiters and allow a retry.
		child.close()
		t.mu.Lock()
		if c.state == cellInProgress {
			c.state = cellNotStarted
		}
		close(wait)
		t.mu.Unlock()
	}()

	t.log.Debug("resolving", "owner", t.owner, "name", reg.Name, "lifetime", reg.Lifetime, "kind", reg.Factory.Kind())
	v, err := reg.Factory.call(ctx, mkView(child))
	finished = true
	child.close()

	t.mu.Lock()
	disposed := t.disposed
	if c.state == cellInProgress {
		if err != nil {
			c.state = cellNotStarted
		} else {
			c.state = cellDone
			c.value = v
		}
	} else if err == nil {
		// Set won the race; the freshly built value is discarded.
		v = c.value
	}
	close(wait)
	t.mu.Unlock()

	if err != nil {
		return nil, errors.Wrapf(err, "resolving %q", reg.Name)
	}

	if disposed {
		// The provider went away while the factory ran; nothing owns v now.
		if derr := disposeInstances(ctx, []instance{{name: reg.Name, value: v}}, t.log); derr != nil {
			t.log.Error("disposing orphaned instance", "name", reg.Name, "error", derr)
		}
		return nil, t.disposedError(reg.Name)
	}
	return v, nil
}

// set stores value as the resolved value of name.
func (t *cellTable) set(name string, value any) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return t.disposedError(name)
	}
	c := t.entries[name]
	if c == nil {
		c = &cell{}
		t.entries[name] = c
	}
	c.state = cellDone
	c.value = value
	return nil
}

func (t *cellTable) resolved(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	c := t.entries[name]
	return c != nil && c.state == cellDone
}

// drain marks the table disposed and returns the resolved instances in
// registration order. The table is emptied before any hook can run. The
// second result is false when the table was already disposed.
func (t *cellTable) drain(regs []Registration, lifetime Lifetime) ([]instance, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.disposed {
		return nil, false
	}
	t.disposed = true

	var out []instance
	for _, r := range regs {
		if r.Lifetime != lifetime {
			continue
		}
		c := t.entries[r.Name]
		if c == nil || c.state != cellDone {
			continue
		}
		out = append(out, instance{name: r.Name, value: c.value})
		c.state = cellDisposed
		c.value = nil
	}
	t.entries = make(map[string]*cell)
	return out, true
}
