package container

import (
	"context"

	"github.com/pkg/errors"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider bundles the registrations of one feature.
//
// Register adds bindings to a Container and returns the extended one; it must
// not resolve anything. Boot runs once the Host is prepared and may resolve
// any singleton or transient name.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(c container.Container) (container.Container, error) {
//	    return c.Singleton(container.Bind("mailer", container.Class(NewMailer)))
//	}
//
//	func (p *AppServiceProvider) Boot(ctx context.Context, host *container.Host) error {
//	    _, err := host.Get("mailer")
//	    return err
//	}
type ServiceProvider interface {
	Register(c Container) (Container, error)

	// Boot is called after the Host is prepared.
	Boot(ctx context.Context, host *Host) error

	// Provides lists the names Register promises to bind. Build fails if
	// one of them is missing. Return nil to skip the check.
	Provides() []string
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with no-op Boot and Provides.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(c container.Container) (container.Container, error) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(context.Context, *Host) error { return nil }
func (p *BaseProvider) Provides() []string                { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry collects ServiceProviders, folds their registrations into a
// Container and boots them against the prepared Host.
type ProviderRegistry struct {
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates an empty registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider. Registering the same provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	r.registered[provider] = true
	r.providers = append(r.providers, provider)
}

// Build applies every provider's Register to base, in registration order.
func (r *ProviderRegistry) Build(base Container) (Container, error) {
	c := base
	for _, p := range r.providers {
		next, err := p.Register(c)
		if err != nil {
			return base, errors.Wrapf(err, "registering %T", p)
		}
		for _, name := range p.Provides() {
			if _, ok := next.Lookup(name); !ok {
				return base, &RegistrationError{Name: name, Reason: "promised by provider but not registered"}
			}
		}
		c = next
	}
	return c, nil
}

// Boot calls Boot on every provider, once. The first error stops the loop.
func (r *ProviderRegistry) Boot(ctx context.Context, host *Host) error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, p := range r.providers {
		if err := p.Boot(ctx, host); err != nil {
			return errors.Wrapf(err, "booting %T", p)
		}
	}
	return nil
}

// Booted returns true if Boot has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns the registered providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
