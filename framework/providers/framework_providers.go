package providers

import (
	"github.com/charmbracelet/log"

	"github.com/km-arc/go-lifetime/framework/config"
	"github.com/km-arc/go-lifetime/framework/container"
	"github.com/km-arc/go-lifetime/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded configuration.
//
// Bound names:
//   - "config"  → *config.Config (singleton)
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(c container.Container) (container.Container, error) {
	return c.Singleton(container.Bind("config", container.Value(p.Config)))
}

func (p *ConfigServiceProvider) Provides() []string { return []string{"config"} }

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound names:
//   - "logger"  → *log.Logger (singleton)
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *log.Logger
}

func (p *LoggingServiceProvider) Register(c container.Container) (container.Container, error) {
	return c.Singleton(container.Bind("logger", container.Value(p.Logger)))
}

func (p *LoggingServiceProvider) Provides() []string { return []string{"logger"} }

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router. The router logs requests
// through "logger" when it is bound.
//
// Bound names:
//   - "router"  → *routing.Router (singleton)
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(c container.Container) (container.Container, error) {
	return c.Singleton(container.Bind("router", container.Class(func(v container.View) (*routing.Router, error) {
		logger, err := container.Resolve[*log.Logger](v, "logger")
		if err != nil {
			return nil, err
		}
		return routing.New(logger), nil
	})))
}

func (p *RoutingServiceProvider) Provides() []string { return []string{"router"} }
