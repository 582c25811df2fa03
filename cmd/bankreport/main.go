package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"bankreport/internal/backend"
	"bankreport/internal/cli"
	"bankreport/internal/config"
	applog "bankreport/internal/log"
	"bankreport/internal/report"
	"bankreport/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production)
	cli.LoadEnvFile()

	ctx, stop := cli.SignalContext(context.Background())
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := cli.SetupLogger(stderr, os.Getenv("LOG_LEVEL"))

	cfg, err := cli.LoadConfig(args)
	if err != nil {
		fields := applog.NewFields().
			WithOperation(applog.OpValidate).
			WithError(err).
			WithErrorType(cli.ErrorType(err))
		logger.WithComponent(applog.ComponentConfig).Error("Configuration validation failed", fields.ToSlice()...)
		fmt.Fprintln(stderr, cli.Usage)
		return cli.ExitCode(err)
	}
	if !config.IsKnownMaster(cfg.Master) {
		logger.WithComponent(applog.ComponentConfig).Warn("Unrecognized master descriptor, using default worker count",
			applog.FieldMaster, cfg.Master,
			applog.FieldWorkers, cfg.Workers)
	}

	logger.Info("Starting bankreport", append(applog.NewFields().WithOperation(applog.OpStartup).ToSlice(),
		applog.FieldBasePath, cfg.BasePath,
		applog.FieldMaster, cfg.Master,
		applog.FieldWorkers, cfg.Workers,
		applog.FieldSource, cfg.Source,
		applog.FieldEngine, cfg.Engine)...)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		fields := applog.NewFields().
			WithOperation(applog.OpValidate).
			WithError(err).
			WithErrorType(applog.ErrorTypeValidation)
		logger.WithComponent(applog.ComponentConfig).Error("Invalid backend configuration", fields.ToSlice()...)
		return cli.ExitUsage
	}

	res, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		fields := applog.NewFields().
			WithOperation(applog.OpStartup).
			WithError(err).
			WithErrorType(applog.ErrorTypeConfiguration)
		logger.WithComponent(applog.ComponentBackend).Error("Failed to initialize backend", fields.ToSlice()...)
		return cli.ExitFailure
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			fields := applog.NewFields().WithOperation(applog.OpShutdown).WithError(err)
			logger.Warn("Cleanup failed", fields.ToSlice()...)
		}
	}()

	start := time.Now()
	svc := services.NewReportService(res.Reader, res.Engine, res.Publisher, cfg.Workers).WithLogger(logger)
	rep, err := svc.Generate(ctx)
	if err != nil {
		fields := applog.NewFields().
			WithError(err).
			WithErrorType(cli.ErrorType(err))
		logger.Error("Report failed", fields.ToSlice()...)
		return cli.ExitCode(err)
	}

	if err := report.NewPrinter(stdout).Print(rep); err != nil {
		fields := applog.NewFields().WithOperation(applog.OpPrint).WithError(err)
		logger.WithComponent(applog.ComponentReport).Error("Failed to print report", fields.ToSlice()...)
		return cli.ExitFailure
	}

	logger.Info("Report complete", append(applog.NewFields().
		WithOperation(applog.OpShutdown).
		WithDuration(time.Since(start).Milliseconds()).
		ToSlice(),
		applog.FieldTopCount, len(rep.TopWithdrawers),
		applog.FieldNegCount, len(rep.NegativeAccounts))...)
	return cli.ExitOK
}
