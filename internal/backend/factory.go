package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bankreport/internal/amqp"
	"bankreport/internal/engine"
	"bankreport/internal/sources"
	"bankreport/internal/sources/csvfile"
	gsheet "bankreport/internal/sources/google"
	"bankreport/internal/sqlengine"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var closers []func() error
	cleanup := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	reader, err := f.createSource(ctx, config)
	if err != nil {
		return nil, err
	}

	eng, closeEngine, err := f.createEngine(ctx, config)
	if err != nil {
		return nil, err
	}
	if closeEngine != nil {
		closers = append(closers, closeEngine)
	}

	result := &BackendResult{
		Reader:  reader,
		Engine:  eng,
		Cleanup: cleanup,
	}

	// AMQP is optional; a broker outage must not block the report
	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without publishing", "error", err)
		} else {
			closers = append(closers, client.Close)
			result.Publisher = client
			f.logger.Info("AMQP client initialized", "exchange", config.AMQPExchange, "queue", config.AMQPQueue)
		}
	}

	return result, nil
}

func (f *DefaultFactory) createSource(ctx context.Context, config Config) (sources.TransactionReader, error) {
	switch config.Source {
	case CSVSource:
		store := csvfile.New(config.BasePath)
		f.logger.Info("Initialized CSV source", "source", config.Source, "base_path", config.BasePath)
		return store, nil
	case SheetsSource:
		client, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:      config.GoogleSpreadsheetID,
			DepositsSheet:      config.GoogleDepositsSheet,
			WithdrawalsSheet:   config.GoogleWithdrawalsSheet,
			ServiceAccountJSON: config.GoogleServiceAccountJSON,
			ServiceAccountFile: config.GoogleServiceAccountFile,
			CacheTTL:           config.SheetsCacheTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		f.logger.Info("Initialized Google Sheets source", "source", config.Source)
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", config.Source)
	}
}

func (f *DefaultFactory) createEngine(ctx context.Context, config Config) (engine.Engine, func() error, error) {
	switch config.Engine {
	case MemoryEngine:
		f.logger.Info("Initialized memory engine", "engine", config.Engine)
		return engine.NewMemory(), nil, nil
	case SQLiteEngine:
		e, err := sqlengine.New(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize SQLite engine: %w", err)
		}
		f.logger.Info("Initialized SQLite engine", "engine", config.Engine)
		return e, e.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported engine type: %s", config.Engine)
	}
}
