package main

import (
	"context"
	"errors"
	"os"
	"time"

	"finboard/internal/cli"
	"finboard/internal/export/sheets"
	applog "finboard/internal/log"
	"finboard/internal/services"
	"finboard/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL")).WithComponent(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting report-worker")

	backendResult, err := cli.OpenBackend(context.Background(), logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if err := backendResult.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", applog.FieldError, err)
		}
	})

	var exporter worker.ReportExporter
	if cfg.ExportEnabled() {
		exp, err := sheets.New(ctx, sheets.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleReportSheetName,
			CredentialsJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets exporter", applog.FieldError, err)
			os.Exit(1)
		}
		exporter = exp
	} else {
		logger.Info("Report export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	repos := backendResult.Repositories
	ledger := services.NewLedger(repos, backendResult.Publisher, cfg.CurrentUserID)
	w := worker.NewReportWorker(repos, cli.ViewOptions(cfg), exporter, services.NewRecurringPoster(repos.Bills, ledger))

	// Export once on startup so the sheet is current before any change arrives.
	if err := w.Refresh(ctx); err != nil {
		logger.Error("Initial report refresh failed", applog.FieldError, err)
	}

	if backendResult.Consumer != nil {
		go func() {
			if err := backendResult.Consumer.ConsumeChanges(ctx, w.HandleChange); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed", applog.FieldError, err)
			}
		}()
	} else {
		logger.Info("Skipping AMQP message consumption - no AMQP client available")
	}

	go func() {
		if err := w.RunRecurring(ctx, cfg.RecurringInterval); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Recurring bill loop stopped", applog.FieldError, err)
		}
	}()

	logger.Info("Report worker running",
		"interval", cfg.RecurringInterval.String(),
		"export", exporter != nil)

	cli.WaitForShutdown(ctx, done)
	logger.Info("Report worker stopped")
}
