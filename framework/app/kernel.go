package app

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/km-arc/go-lifetime/framework/config"
	"github.com/km-arc/go-lifetime/framework/container"
	gohttp "github.com/km-arc/go-lifetime/framework/http"
	"github.com/km-arc/go-lifetime/framework/logging"
	"github.com/km-arc/go-lifetime/framework/providers"
	"github.com/km-arc/go-lifetime/framework/routing"
)

// Application ties configuration, service providers, the prepared Host and
// the HTTP router together.
//
//	application := app.New(cfg, logger)
//	application.Register(&AppServiceProvider{})
//	if err := application.Run(ctx); err != nil { ... }
type Application struct {
	cfg       *config.Config
	log       *log.Logger
	providers *container.ProviderRegistry

	host    *container.Host
	router  *routing.Router
	server  *http.Server
	bootErr error
}

// New creates the application and registers the framework providers
// (config, logger, router). A nil logger discards everything.
func New(cfg *config.Config, logger *log.Logger) *Application {
	if logger == nil {
		logger = logging.Discard()
	}
	registry := container.NewProviderRegistry()
	registry.Register(&providers.ConfigServiceProvider{Config: cfg})
	registry.Register(&providers.LoggingServiceProvider{Logger: logger})
	registry.Register(&providers.RoutingServiceProvider{})

	return &Application{
		cfg:       cfg,
		log:       logger,
		providers: registry,
	}
}

// Register adds a ServiceProvider. Providers registered after Boot are ignored.
func (a *Application) Register(provider container.ServiceProvider) {
	a.providers.Register(provider)
}

// Container folds every provider's registrations into a new Container.
func (a *Application) Container() (container.Container, error) {
	return a.providers.Build(container.New())
}

// Boot prepares the Host, installs the request-scope middleware on the router
// and runs every provider's Boot. Calling Boot twice is a no-op. If a
// provider's Boot fails the Host is disposed and every later Boot returns
// the same error.
func (a *Application) Boot(ctx context.Context) error {
	if a.host != nil {
		return nil
	}
	if a.bootErr != nil {
		return a.bootErr
	}

	c, err := a.Container()
	if err != nil {
		return err
	}

	host, err := c.Prepare(ctx, a.cfg.ContainerOptions(a.log)...)
	if err != nil {
		return errors.Wrap(err, "preparing container")
	}

	router, err := container.Resolve[*routing.Router](host, "router")
	if err != nil {
		return stderrors.Join(err, host.Dispose(ctx))
	}
	router.Middleware(gohttp.ScopeMiddleware(host, a.log))

	if err := a.providers.Boot(ctx, host); err != nil {
		a.bootErr = stderrors.Join(err, host.Dispose(ctx))
		return a.bootErr
	}
	a.host, a.router = host, router

	a.log.Debug("application booted", "services", len(c.Names()), "strict", host.Strict())
	return nil
}

// Host returns the prepared Host, or nil before Boot.
func (a *Application) Host() *container.Host { return a.host }

// Router returns the HTTP router, or nil before Boot.
func (a *Application) Router() *routing.Router { return a.router }

// Config returns the application configuration.
func (a *Application) Config() *config.Config { return a.cfg }

// Run boots the application (if needed) and serves HTTP on APP_PORT until ctx
// is cancelled, then shuts the server down and disposes the Host.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+a.cfg.App.Port)
	if err != nil {
		return errors.Wrapf(err, "listening on port %s", a.cfg.App.Port)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	if err := a.Boot(ctx); err != nil {
		_ = ln.Close()
		return err
	}

	a.server = &http.Server{
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.log.Info("listening", "app", a.cfg.App.Name, "addr", ln.Addr().String(), "env", a.cfg.App.Env)
		errc <- a.server.Serve(ln)
	}()

	select {
	case err := <-errc:
		return stderrors.Join(errors.Wrap(err, "serving http"), a.host.Dispose(context.WithoutCancel(ctx)))
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	return a.Shutdown(shutdownCtx)
}

// Shutdown stops the HTTP server (if running) and disposes the Host.
func (a *Application) Shutdown(ctx context.Context) error {
	var errs []error
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			errs = append(errs, errors.Wrap(err, "shutting down http server"))
		}
	}
	if a.host != nil {
		if err := a.host.Dispose(ctx); err != nil {
			errs = append(errs, errors.Wrap(err, "disposing container"))
		}
	}
	a.log.Info("stopped")
	return stderrors.Join(errs...)
}
