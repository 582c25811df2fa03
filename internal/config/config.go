package config

import (
	"fmt"
	"net/url"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	applog "bankreport/internal/log"
)

const (
	DefaultMaster   = "local[4]"
	DefaultBasePath = "./"
	DefaultWorkers  = 4
)

type Config struct {
	// Input location and execution hint
	BasePath string
	Master   string
	Workers  int

	// Backend selection
	Source string
	Engine string

	LogLevel string

	// AMQP (optional report publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets source
	GoogleSpreadsheetID      string
	GoogleDepositsSheet      string
	GoogleWithdrawalsSheet   string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
	SheetsCacheTTL           time.Duration
}

func Load() *Config {
	cfg := &Config{
		BasePath: getEnv("BANK_BASE_PATH", DefaultBasePath),
		Master:   getEnv("BANK_MASTER", DefaultMaster),

		Source: getEnv("SOURCE", "csv"),
		Engine: getEnv("ENGINE", "memory"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "bank"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "bank_reports"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleDepositsSheet:      getEnv("GOOGLE_DEPOSITS_SHEET", "Deposits"),
		GoogleWithdrawalsSheet:   getEnv("GOOGLE_WITHDRAWALS_SHEET", "Withdrawals"),
		GoogleServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
		SheetsCacheTTL:           getEnvDuration("SHEETS_CACHE_TTL", 5*time.Minute),
	}
	cfg.Workers = ParseMaster(cfg.Master)

	return cfg
}

// ApplyArgs overlays the positional arguments [master] [basePath].
func (c *Config) ApplyArgs(args []string) error {
	if len(args) > 2 {
		return fmt.Errorf("too many arguments: got %d, want at most 2 ([master] [basePath])", len(args))
	}
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		c.Master = strings.TrimSpace(args[0])
	}
	if len(args) > 1 && strings.TrimSpace(args[1]) != "" {
		c.BasePath = args[1]
	}
	c.Workers = ParseMaster(c.Master)
	return nil
}

// ParseMaster turns a master descriptor into a worker count:
// "local" is 1, "local[N]" is N, "local[*]" is the number of CPUs.
// Anything else falls back to DefaultWorkers.
func ParseMaster(master string) int {
	m := strings.TrimSpace(master)
	if m == "local" {
		return 1
	}
	if !strings.HasPrefix(m, "local[") || !strings.HasSuffix(m, "]") {
		return DefaultWorkers
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(m, "local["), "]")
	if inner == "*" {
		return runtime.NumCPU()
	}
	n, err := strconv.Atoi(inner)
	if err != nil || n < 1 {
		return DefaultWorkers
	}
	return n
}

// IsKnownMaster reports whether ParseMaster understood the descriptor.
func IsKnownMaster(master string) bool {
	m := strings.TrimSpace(master)
	if m == "local" || m == "local[*]" {
		return true
	}
	if !strings.HasPrefix(m, "local[") || !strings.HasSuffix(m, "]") {
		return false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(m, "local["), "]"))
	return err == nil && n >= 1
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.BasePath) == "" {
		errors = append(errors, "base path cannot be empty")
	}

	if c.Workers < 1 {
		errors = append(errors, fmt.Sprintf("invalid worker count %d: must be at least 1", c.Workers))
	} else if c.Workers > 1024 {
		errors = append(errors, fmt.Sprintf("invalid worker count %d: must be at most 1024", c.Workers))
	}

	validSources := []string{"csv", "sheets"}
	if !oneOf(c.Source, validSources) {
		errors = append(errors, fmt.Sprintf("invalid source '%s': must be one of %v", c.Source, validSources))
	}

	validEngines := []string{"memory", "sqlite"}
	if !oneOf(c.Engine, validEngines) {
		errors = append(errors, fmt.Sprintf("invalid engine '%s': must be one of %v", c.Engine, validEngines))
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate Google Sheets configuration if source is sheets
	if c.Source == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
		}
		if c.GoogleDepositsSheet == "" || c.GoogleWithdrawalsSheet == "" {
			errors = append(errors, "deposits and withdrawals sheet names are required when using sheets source")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
		if c.SheetsCacheTTL < 0 {
			errors = append(errors, fmt.Sprintf("invalid sheets cache TTL %v: must not be negative", c.SheetsCacheTTL))
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func oneOf(v string, valid []string) bool {
	for _, s := range valid {
		if v == s {
			return true
		}
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
