// Package logging builds the application logger.
//
//	logger, err := logging.New(os.Stderr, cfg.Log.Level)
//	logger.Info("listening", "addr", addr)
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// New returns a timestamped logger writing to w at the given level
// (debug, info, warn, error, fatal).
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing log level %q", level)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "app",
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
