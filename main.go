package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/km-arc/go-lifetime/framework/app"
	"github.com/km-arc/go-lifetime/framework/config"
	"github.com/km-arc/go-lifetime/framework/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// flags shared by every subcommand.
type rootFlags struct {
	envFile string
	strict  bool
	port    string
}

func newRootCommand() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:   "lifetime",
		Short: "Demo application for the go-lifetime container",
		Long: `Demo application for the go-lifetime container.

Services:
  counter  singleton  shared by every request
  request  scoped     one per HTTP request, carries a uuid
  token    transient  fresh on every resolution`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&f.envFile, "env-file", ".env", "dotenv file to load")
	root.PersistentFlags().BoolVar(&f.strict, "strict", false, "run the container in strict mode (overrides CONTAINER_STRICT)")
	root.PersistentFlags().StringVar(&f.port, "port", "", "HTTP port (overrides APP_PORT)")

	root.AddCommand(newServeCommand(f), newDescribeCommand(f))
	return root
}

func newServeCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo HTTP application",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := f.load(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return newApplication(cfg, logger).Run(ctx)
		},
	}
}

func newDescribeCommand(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print the registered services in registration order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := f.load(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return describe(cmd.OutOrStdout(), newApplication(cfg, logger))
		},
	}
}

// load reads configuration and applies the command-line overrides.
func (f *rootFlags) load(cmd *cobra.Command, logOut io.Writer) (*config.Config, *log.Logger, error) {
	cfg := config.Load(f.envFile)
	if cmd.Flags().Changed("strict") {
		cfg.Container.Strict = f.strict
	}
	if f.port != "" {
		cfg.App.Port = f.port
	}

	logger, err := logging.New(logOut, cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func newApplication(cfg *config.Config, logger *log.Logger) *app.Application {
	application := app.New(cfg, logger)
	application.Register(&AppServiceProvider{})
	return application
}

func describe(w io.Writer, application *app.Application) error {
	c, err := application.Container()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLIFETIME\tKIND")
	for _, r := range c.Registrations() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.Lifetime, r.Factory.Kind())
	}
	return tw.Flush()
}
