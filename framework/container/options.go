package container

import (
	"os"

	"github.com/charmbracelet/log"
)

// options holds the settings a Host is prepared with.
type options struct {
	strict bool
	logger *log.Logger
}

// Option configures Prepare.
type Option func(*options)

// WithStrict turns policy violations into errors. In lenient mode (the
// default) reading an unregistered or out-of-reach name yields nil and edits
// to non-singleton names are ignored; in strict mode both fail.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithLogger sets the logger used for resolution and disposal events.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func defaultOptions() options {
	return options{
		logger: log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "container",
			Level:  log.WarnLevel,
		}),
	}
}
