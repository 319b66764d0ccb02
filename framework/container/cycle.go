package container

import (
	"context"
	"sync/atomic"
)

// frame is one factory invocation on a resolution path. Frames link to the
// invocation that triggered them, so walking parents yields the chain of
// names currently in progress on that path.
//
// A frame is closed when its factory returns. Lookups made later through the
// factory's View skip closed frames, so dereferencing a sibling after
// construction never looks like re-entry.
type frame struct {
	parent *frame
	name   string
	ctx    context.Context
	closed atomic.Bool

	// root frames only carry a context; they are never part of a chain.
	root bool
}

func rootFrame(ctx context.Context) *frame {
	return &frame{ctx: ctx, root: true}
}

// live returns the nearest open frame, or nil.
func (f *frame) live() *frame {
	for f != nil && f.closed.Load() {
		f = f.parent
	}
	return f
}

func (f *frame) push(ctx context.Context, name string) *frame {
	return &frame{parent: f.live(), name: name, ctx: ctx}
}

func (f *frame) close() {
	if f != nil {
		f.closed.Store(true)
	}
}

// context returns the context of the innermost open frame, falling back to
// context.Background for top-level lookups.
func (f *frame) context() context.Context {
	if l := f.live(); l != nil && l.ctx != nil {
		return l.ctx
	}
	return context.Background()
}

// chain returns the in-progress names from outermost to innermost.
func (f *frame) chain() []string {
	var out []string
	for l := f.live(); l != nil; l = l.parent.live() {
		if !l.root {
			out = append(out, l.name)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func (f *frame) contains(name string) bool {
	for l := f.live(); l != nil; l = l.parent.live() {
		if !l.root && l.name == name {
			return true
		}
	}
	return false
}

// circular builds the error for re-entering name on the path ending at f.
// stack is the snapshot recorded when name started resolving.
func (f *frame) circular(name string, stack []string) error {
	return &CircularDependencyError{Name: name, Stack: stack, Path: f.chain()}
}

// before returns the names that were resolving when name started on this path.
func (f *frame) before(name string) []string {
	chain := f.chain()
	for i, n := range chain {
		if n == name {
			return chain[:i]
		}
	}
	return chain
}
