package container_test

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/km-arc/go-lifetime/framework/container"
)

func Test_DisposeFollowsRegistrationOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// Whatever subset of singletons was resolved, and in whatever order,
	// teardown visits them in registration order.
	properties.Property("Close hooks run in registration order", prop.ForAll(
		func(mask []bool) bool {
			j := &journal{}
			c := container.New()
			for i := range mask {
				name := fmt.Sprintf("s%d", i)
				c = c.MustRegister(container.Singleton, container.Bind(name, container.Func(func(container.View) (any, error) {
					return &closer{name: name, j: j}, nil
				})))
			}

			host, err := c.Prepare(context.Background(), quiet)
			if err != nil {
				return false
			}

			var want []string
			for i := len(mask) - 1; i >= 0; i-- {
				if mask[i] {
					if _, err := host.Get(fmt.Sprintf("s%d", i)); err != nil {
						return false
					}
				}
			}
			for i, resolved := range mask {
				if resolved {
					want = append(want, fmt.Sprintf("close:s%d", i))
				}
			}

			if err := host.Dispose(context.Background()); err != nil {
				return false
			}
			return reflect.DeepEqual(want, j.list())
		},
		gen.SliceOfN(8, gen.Bool()),
	))

	properties.TestingRun(t)
}

func Test_LifetimeIdentity(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("Singletons are shared, scoped are per scope, transients are fresh", prop.ForAll(
		func(scopes, reads int) bool {
			n := &counter{}
			c := container.New().
				MustRegister(container.Singleton, container.Bind("single", boxFactory(n))).
				MustRegister(container.Scoped, container.Bind("scoped", boxFactory(n))).
				MustRegister(container.Transient, container.Bind("trans", boxFactory(n)))

			host, err := c.Prepare(context.Background(), quiet)
			if err != nil {
				return false
			}
			defer host.Dispose(context.Background())

			singles := map[any]bool{}
			scopeds := map[any]bool{}
			transients := 0
			for range scopes {
				s, err := host.CreateScope(context.Background())
				if err != nil {
					return false
				}
				perScope := map[any]bool{}
				for range reads {
					single, _ := s.Get("single")
					scoped, _ := s.Get("scoped")
					if _, err := s.Get("trans"); err != nil {
						return false
					}
					singles[single] = true
					perScope[scoped] = true
					scopeds[scoped] = true
					transients++
				}
				if len(perScope) != 1 {
					return false
				}
			}

			return len(singles) == 1 &&
				len(scopeds) == scopes &&
				n.count() == 1+scopes+transients
		},
		gen.IntRange(1, 5),
		gen.IntRange(1, 5),
	))

	properties.TestingRun(t)
}

func Test_OverrideKeepsFirstPosition(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("Re-registering a name keeps one entry at its first position", prop.ForAll(
		func(others, overrides int) bool {
			c := container.New().MustRegister(container.Singleton, container.Bind("target", container.Value(0)))
			for i := range others {
				c = c.MustRegister(container.Transient, container.Bind(fmt.Sprintf("other%d", i), container.Value(i)))
			}
			for i := 1; i <= overrides; i++ {
				c = c.MustRegister(container.Scoped, container.Bind("target", container.Value(i)))
			}

			names := c.Names()
			reg, ok := c.Lookup("target")
			return ok &&
				len(names) == others+1 &&
				names[0] == "target" &&
				reg.Lifetime == container.Scoped
		},
		gen.IntRange(0, 6),
		gen.IntRange(1, 4),
	))

	properties.TestingRun(t)
}
