package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"bankreport/internal/core"
	"bankreport/internal/engine"
	applog "bankreport/internal/log"
	"bankreport/internal/sources"
)

// Publisher receives finished reports.
type Publisher interface {
	PublishReport(ctx context.Context, report core.Report) error
}

// ReportService loads both transaction tables and runs the two report queries
type ReportService struct {
	reader    sources.TransactionReader
	engine    engine.Engine
	publisher Publisher
	workers   int
	logger    *applog.Logger
	now       func() time.Time
}

// NewReportService wires a reader and an engine. publisher may be nil.
// workers bounds the concurrent loads and queries; values below 1 mean 1.
func NewReportService(reader sources.TransactionReader, eng engine.Engine, publisher Publisher, workers int) *ReportService {
	if workers < 1 {
		workers = 1
	}
	return &ReportService{
		reader:    reader,
		engine:    eng,
		publisher: publisher,
		workers:   workers,
		logger: applog.New(applog.Config{
			Handler:   slog.Default().Handler(),
			Component: applog.ComponentReport,
		}),
		now: time.Now,
	}
}

// WithLogger replaces the service logger
func (s *ReportService) WithLogger(logger *applog.Logger) *ReportService {
	if logger != nil {
		s.logger = logger.WithComponent(applog.ComponentReport)
	}
	return s
}

// Generate runs the whole batch: load, query, publish.
// Any load or query failure aborts the run; a publish failure does not.
func (s *ReportService) Generate(ctx context.Context) (core.Report, error) {
	start := s.now()

	deposits, withdrawals, err := s.load(ctx)
	if err != nil {
		return core.Report{}, err
	}

	report := core.Report{
		DepositRows:    len(deposits),
		WithdrawalRows: len(withdrawals),
	}

	// Both queries only read the loaded slices.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	g.Go(func() error {
		queryStart := s.now()
		top, err := s.engine.TopWithdrawers(gctx, withdrawals)
		if err != nil {
			return fmt.Errorf("top withdrawers: %w", err)
		}
		report.TopWithdrawers = top
		s.logQuery(gctx, "top_withdrawers", len(top), queryStart)
		return nil
	})
	g.Go(func() error {
		queryStart := s.now()
		neg, err := s.engine.NegativeBalanceAccounts(gctx, deposits, withdrawals)
		if err != nil {
			return fmt.Errorf("negative balance accounts: %w", err)
		}
		report.NegativeAccounts = neg
		s.logQuery(gctx, "negative_balance_accounts", len(neg), queryStart)
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.Report{}, err
	}
	report.GeneratedAt = s.now()

	fields := applog.NewFields().
		WithOperation(applog.OpQuery).
		WithDuration(report.GeneratedAt.Sub(start).Milliseconds()).
		ToSlice()
	if max, ok := report.MaxWithdrawal(); ok {
		s.logger.InfoContext(ctx, "Report generated", append(fields,
			"deposit_rows", report.DepositRows,
			"withdrawal_rows", report.WithdrawalRows,
			applog.FieldTopCount, len(report.TopWithdrawers),
			applog.FieldMaxTotal, max,
			applog.FieldNegCount, len(report.NegativeAccounts))...)
	} else {
		s.logger.InfoContext(ctx, "Report generated with no withdrawals", append(fields,
			"deposit_rows", report.DepositRows,
			applog.FieldNegCount, len(report.NegativeAccounts))...)
	}

	s.publish(ctx, report)

	return report, nil
}

func (s *ReportService) load(ctx context.Context) (deposits, withdrawals []core.Transaction, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	g.Go(func() error {
		rows, err := s.loadTable(gctx, core.Deposits)
		deposits = rows
		return err
	})
	g.Go(func() error {
		rows, err := s.loadTable(gctx, core.Withdrawals)
		withdrawals = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return deposits, withdrawals, nil
}

func (s *ReportService) loadTable(ctx context.Context, table core.Table) ([]core.Transaction, error) {
	logger := s.logger.WithComponent(applog.ComponentSource)
	start := s.now()

	rows, err := s.reader.ReadTable(ctx, table)
	if err != nil {
		fields := applog.NewFields().
			WithOperation(applog.OpLoad).
			WithTable(table.String(), 0).
			WithError(err).
			WithErrorType(loadErrorType(err))
		logger.DebugContext(ctx, "Failed to load table", fields.ToSlice()...)
		return nil, fmt.Errorf("load %s: %w", table, err)
	}

	fields := applog.NewFields().
		WithOperation(applog.OpLoad).
		WithTable(table.String(), len(rows)).
		WithDuration(s.now().Sub(start).Milliseconds())
	logger.DebugContext(ctx, "Loaded table", fields.ToSlice()...)
	return rows, nil
}

func (s *ReportService) logQuery(ctx context.Context, query string, rows int, start time.Time) {
	fields := applog.NewFields().
		WithOperation(applog.OpQuery).
		WithDuration(s.now().Sub(start).Milliseconds())
	fields[applog.FieldQuery] = query
	fields[applog.FieldRows] = rows
	s.logger.WithComponent(applog.ComponentEngine).DebugContext(ctx, "Query finished", fields.ToSlice()...)
}

func (s *ReportService) publish(ctx context.Context, report core.Report) {
	logger := s.logger.WithComponent(applog.ComponentAMQP)
	if s.publisher == nil {
		logger.DebugContext(ctx, "No publisher configured, skipping report message")
		return
	}
	if err := s.publisher.PublishReport(ctx, report); err != nil {
		// The report is already computed; publishing is best effort.
		fields := applog.NewFields().
			WithOperation(applog.OpPublish).
			WithError(err).
			WithErrorType(applog.ErrorTypeNetwork)
		logger.WarnContext(ctx, "Failed to publish report", fields.ToSlice()...)
		return
	}
	logger.InfoContext(ctx, "Report published", applog.NewFields().WithOperation(applog.OpPublish).ToSlice()...)
}

func loadErrorType(err error) string {
	switch {
	case errors.Is(err, core.ErrInputNotFound):
		return applog.ErrorTypeNotFound
	case errors.Is(err, core.ErrParse):
		return applog.ErrorTypeParse
	default:
		return applog.ErrorTypeInternal
	}
}
