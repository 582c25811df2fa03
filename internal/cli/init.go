// Package cli provides the bootstrap steps of the bankreport command:
// environment loading, logger setup, configuration and signal handling.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"bankreport/internal/config"
	"bankreport/internal/core"
	applog "bankreport/internal/log"
)

// Exit codes of the bankreport command.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ErrUsage marks argument and configuration problems.
var ErrUsage = errors.New("usage error")

// Usage is printed on argument errors.
const Usage = "usage: bankreport [master] [basePath]"

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger initializes structured logging to w at the given level and
// sets it as the default logger. Unknown levels fall back to info.
func SetupLogger(w io.Writer, level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	if lvl, err := applog.ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	if w != nil {
		cfg.Output = w
	}
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from the environment, overlays the
// positional arguments and validates the result.
func LoadConfig(args []string) (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.ApplyArgs(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return cfg, nil
}

// ExitCode maps a run error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// ErrorType classifies a run error for logging.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, ErrUsage):
		return applog.ErrorTypeConfiguration
	case errors.Is(err, core.ErrInputNotFound):
		return applog.ErrorTypeNotFound
	case errors.Is(err, core.ErrParse):
		return applog.ErrorTypeParse
	default:
		return applog.ErrorTypeInternal
	}
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
