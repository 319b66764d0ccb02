package providers_test

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-lifetime/framework/config"
	"github.com/km-arc/go-lifetime/framework/container"
	"github.com/km-arc/go-lifetime/framework/providers"
	"github.com/km-arc/go-lifetime/framework/routing"
)

func TestFrameworkProviders(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Name: "Test"}}
	logger := log.NewWithOptions(io.Discard, log.Options{})

	reg := container.NewProviderRegistry()
	reg.Register(&providers.ConfigServiceProvider{Config: cfg})
	reg.Register(&providers.LoggingServiceProvider{Logger: logger})
	reg.Register(&providers.RoutingServiceProvider{})

	c, err := reg.Build(container.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"config", "logger", "router"}, c.Names())

	host, err := c.Prepare(context.Background(), container.WithStrict(true), container.WithLogger(logger))
	require.NoError(t, err)
	defer host.Dispose(context.Background())

	assert.Same(t, cfg, container.MustResolve[*config.Config](host, "config"))
	assert.Same(t, logger, container.MustResolve[*log.Logger](host, "logger"))

	router := container.MustResolve[*routing.Router](host, "router")
	assert.Same(t, router, container.MustResolve[*routing.Router](host, "router"))
}

func TestRoutingServiceProvider_WithoutLogger(t *testing.T) {
	reg := container.NewProviderRegistry()
	reg.Register(&providers.RoutingServiceProvider{})

	c, err := reg.Build(container.New())
	require.NoError(t, err)

	host, err := c.Prepare(context.Background(), container.WithLogger(log.NewWithOptions(io.Discard, log.Options{})))
	require.NoError(t, err)

	router, err := container.Resolve[*routing.Router](host, "router")
	require.NoError(t, err)
	assert.NotNil(t, router)
}
