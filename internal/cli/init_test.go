package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"bankreport/internal/core"
	applog "bankreport/internal/log"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"usage", fmt.Errorf("%w: too many arguments", ErrUsage), ExitUsage},
		{"missing input", fmt.Errorf("load: %w", &core.InputNotFoundError{Table: core.Deposits, Path: "x"}), ExitFailure},
		{"parse", &core.ParseError{Source: "w.csv", Line: 2}, ExitFailure},
		{"other", errors.New("boom"), ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorType(t *testing.T) {
	if got := ErrorType(&core.ParseError{}); got != applog.ErrorTypeParse {
		t.Errorf("ErrorType(parse) = %s", got)
	}
	if got := ErrorType(&core.InputNotFoundError{}); got != applog.ErrorTypeNotFound {
		t.Errorf("ErrorType(not found) = %s", got)
	}
	if got := ErrorType(fmt.Errorf("%w: x", ErrUsage)); got != applog.ErrorTypeConfiguration {
		t.Errorf("ErrorType(usage) = %s", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SOURCE", "")
	t.Setenv("ENGINE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("AMQP_URL", "")

	cfg, err := LoadConfig([]string{"local[2]", "/srv/bank"})
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Workers != 2 || cfg.BasePath != "/srv/bank" {
		t.Errorf("unexpected config: %+v", cfg)
	}

	if _, err := LoadConfig([]string{"a", "b", "c"}); !errors.Is(err, ErrUsage) {
		t.Errorf("expected ErrUsage for too many args, got %v", err)
	}

	t.Setenv("ENGINE", "spark")
	if _, err := LoadConfig(nil); !errors.Is(err, ErrUsage) {
		t.Errorf("expected ErrUsage for invalid engine, got %v", err)
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&buf, "debug")
	logger.Debug("hello")
	if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "component=app") {
		t.Fatalf("unexpected log output: %q", buf.String())
	}
}

func TestSetupLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(&buf, "verbose")
	logger.Debug("hidden")
	logger.Info("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected log output: %q", buf.String())
	}
}
