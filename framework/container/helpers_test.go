package container_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-lifetime/framework/container"
)

// quiet keeps lenient-mode warnings out of test output.
var quiet = container.WithLogger(log.NewWithOptions(io.Discard, log.Options{}))

func mustPrepare(t *testing.T, c container.Container, opts ...container.Option) *container.Host {
	t.Helper()
	host, err := c.Prepare(context.Background(), append([]container.Option{quiet}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = host.Dispose(context.Background()) })
	return host
}

func mustScope(t *testing.T, host *container.Host) *container.Scope {
	t.Helper()
	s, err := host.CreateScope(context.Background())
	require.NoError(t, err)
	return s
}

func mustGet(t *testing.T, r container.Resolver, name string) any {
	t.Helper()
	v, err := r.Get(name)
	require.NoError(t, err)
	return v
}

// journal records teardown hooks in the order they ran.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(s string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, s)
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

// closer implements io.Closer.
type closer struct {
	name string
	j    *journal
	err  error
}

func (c *closer) Close() error {
	c.j.add("close:" + c.name)
	return c.err
}

// shutdowner implements container.Shutdowner.
type shutdowner struct {
	name string
	j    *journal
	err  error
}

func (s *shutdowner) Shutdown(context.Context) error {
	s.j.add("shutdown:" + s.name)
	return s.err
}

// both implements io.Closer and container.Shutdowner.
type both struct {
	name string
	j    *journal
}

func (b *both) Close() error {
	b.j.add("close:" + b.name)
	return nil
}

func (b *both) Shutdown(context.Context) error {
	b.j.add("shutdown:" + b.name)
	return nil
}

// counter counts constructor calls.
type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) inc() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return c.n
}

func (c *counter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

// box is a distinguishable pointer value.
type box struct{ id int }

func boxFactory(c *counter) container.Factory {
	return container.Func(func(container.View) (any, error) {
		return &box{id: c.inc()}, nil
	})
}
