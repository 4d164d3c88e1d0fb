package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"finboard/internal/cli"
	"finboard/internal/datekey"
	apphttp "finboard/internal/http"
	applog "finboard/internal/log"
	"finboard/internal/middleware/ratelimit"
	"finboard/internal/services"
	"finboard/internal/watch"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	backendResult, err := cli.OpenBackend(context.Background(), logger, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	repos := backendResult.Repositories
	opts := cli.ViewOptions(cfg)
	recomputer := watch.New(repos, opts, datekey.Range{})

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Repos:      repos,
		Ledger:     services.NewLedger(repos, backendResult.Publisher, cfg.CurrentUserID),
		Options:    opts,
		Recomputer: recomputer,
		Logger:     logger,
		RateLimit:  ratelimit.DefaultConfig(),
	})
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		if err := backendResult.Cleanup(); err != nil {
			logger.Error("Backend cleanup error", applog.FieldError, err)
		}
	})

	go func() {
		if err := recomputer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("View recomputer stopped", applog.FieldError, err)
		}
	}()

	logger.Info("Starting finboard server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"amqp", backendResult.Publisher != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully", "requests", srv.Metrics().Requests)
}
