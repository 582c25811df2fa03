package backend

import (
	"fmt"
	"time"

	"bankreport/internal/config"
)

// Config holds configuration for backend creation
type Config struct {
	Source SourceType
	Engine EngineType

	// CSV source
	BasePath string

	// AMQP publisher (optional)
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

// SourceType represents where the transaction tables are read from
type SourceType string

// EngineType represents how the report queries are executed
type EngineType string

const (
	CSVSource    SourceType = "csv"
	SheetsSource SourceType = "sheets"

	MemoryEngine EngineType = "memory"
	SQLiteEngine EngineType = "sqlite"
)

// String implements fmt.Stringer
func (st SourceType) String() string {
	return string(st)
}

// IsValid returns true if the source type is valid
func (st SourceType) IsValid() bool {
	switch st {
	case CSVSource, SheetsSource:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer
func (et EngineType) String() string {
	return string(et)
}

// IsValid returns true if the engine type is valid
func (et EngineType) IsValid() bool {
	switch et {
	case MemoryEngine, SQLiteEngine:
		return true
	default:
		return false
	}
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	cfg := Config{
		Source:   SourceType(appConfig.Source),
		Engine:   EngineType(appConfig.Engine),
		BasePath: appConfig.BasePath,

		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,

		GoogleSpreadsheetID:      appConfig.GoogleSpreadsheetID,
		GoogleDepositsSheet:      appConfig.GoogleDepositsSheet,
		GoogleWithdrawalsSheet:   appConfig.GoogleWithdrawalsSheet,
		GoogleServiceAccountJSON: appConfig.GoogleServiceAccountJSON,
		GoogleServiceAccountFile: appConfig.GoogleServiceAccountFile,
		SheetsCacheTTL:           appConfig.SheetsCacheTTL,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Source.IsValid() {
		return fmt.Errorf("invalid source type: %s", c.Source)
	}
	if !c.Engine.IsValid() {
		return fmt.Errorf("invalid engine type: %s", c.Engine)
	}

	switch c.Source {
	case CSVSource:
		if c.BasePath == "" {
			return fmt.Errorf("base path is required for csv source")
		}
	case SheetsSource:
		if c.GoogleSpreadsheetID == "" {
			return fmt.Errorf("Google Spreadsheet ID is required for sheets source")
		}
	}

	return nil
}
