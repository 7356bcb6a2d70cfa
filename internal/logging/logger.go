// Package logging configures the process-wide charm logger.
//
// The TUI owns the terminal, so everything goes to a log file. Packages log
// through the package-level functions of github.com/charmbracelet/log, which
// route to the logger installed here.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"lookout/internal/config"
)

// Init opens the configured log file and installs a logger writing to it.
// The returned function flushes and closes the file.
func Init(cfg config.LogSettings, verbose bool) (func() error, error) {
	if cfg.File == "" {
		log.SetDefault(New(io.Discard, cfg.Level, verbose))
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.SetDefault(New(f, cfg.Level, verbose))
	log.Info("lookout started", "pid", os.Getpid())

	return func() error {
		log.Info("lookout shutting down")
		return f.Close()
	}, nil
}

// New builds a logger for w. verbose forces debug level and caller reporting.
func New(w io.Writer, level string, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    verbose,
		TimeFormat:      time.RFC3339,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	logger.SetLevel(lvl)

	return logger
}
