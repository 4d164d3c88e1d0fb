package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"finboard/internal/backend"
	"finboard/internal/cli"
	"finboard/internal/config"
	"finboard/internal/dashboard"
	applog "finboard/internal/log"
)

// app is the state shared by every subcommand once the root has opened the
// backend.
type app struct {
	cfg     *config.Config
	logger  *applog.Logger
	backend *backend.BackendResult
	opts    dashboard.Options
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var logLevel string

	root := &cobra.Command{
		Use:   "financectl",
		Short: "Inspect and maintain the finboard ledger",
		Long: `financectl reads the configured backend (DATA_BACKEND, SQLITE_DB_PATH, ...)
and prints the dashboard, range reports and recurring-bill projections, or
posts due recurring bills.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context(), logLevel)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(dashboardCmd(a))
	root.AddCommand(reportCmd(a))
	root.AddCommand(projectCmd(a))
	root.AddCommand(postDueCmd(a))

	return root
}

func (a *app) open(ctx context.Context, logLevel string) error {
	cli.LoadEnvFile()
	a.logger = cli.SetupLogger(logLevel).WithComponent(applog.ComponentCLI)

	a.cfg = config.Load()
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	res, err := cli.OpenBackend(ctx, a.logger, a.cfg)
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	a.backend = res
	a.opts = cli.ViewOptions(a.cfg)
	return nil
}

func (a *app) close() error {
	if a.backend == nil || a.backend.Cleanup == nil {
		return nil
	}
	return a.backend.Cleanup()
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
