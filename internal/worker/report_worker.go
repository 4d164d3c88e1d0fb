package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finboard/internal/amqp"
	"finboard/internal/dashboard"
	"finboard/internal/datekey"
	"finboard/internal/ports"
	"finboard/internal/services"
	"finboard/internal/watch"
)

// ReportExporter receives every recomputed report.
type ReportExporter interface {
	Export(ctx context.Context, rep dashboard.Report) error
}

// ReportWorker rebuilds the current-month report after each ledger change
// and hands it to the exporter, if one is configured. It also posts due
// recurring bills on a schedule.
type ReportWorker struct {
	repos    ports.Repositories
	opts     dashboard.Options
	exporter ReportExporter
	poster   *services.RecurringPoster
	today    func() datekey.Day
}

// NewReportWorker creates a worker. exporter and poster may be nil.
func NewReportWorker(repos ports.Repositories, opts dashboard.Options, exporter ReportExporter, poster *services.RecurringPoster) *ReportWorker {
	return &ReportWorker{
		repos:    repos,
		opts:     opts,
		exporter: exporter,
		poster:   poster,
		today:    datekey.Today,
	}
}

// HandleChange processes one change message from AMQP.
func (w *ReportWorker) HandleChange(ctx context.Context, msg *amqp.ChangeMessage) error {
	slog.InfoContext(ctx, "Processing change message",
		"entity", msg.Entity,
		"op", msg.Op,
		"id", msg.ID)
	return w.Refresh(ctx)
}

// Refresh recomputes the current-month report and exports it.
func (w *ReportWorker) Refresh(ctx context.Context) error {
	snap, err := watch.LoadSnapshot(ctx, w.repos)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	rng := datekey.ThisMonth(w.today())
	rep, ok := dashboard.BuildReport(snap, rng, w.opts)
	if !ok {
		return fmt.Errorf("build report: invalid range %s..%s", rng.Start, rng.End)
	}

	if w.exporter == nil {
		slog.DebugContext(ctx, "No exporter configured, skipping report export")
		return nil
	}
	if err := w.exporter.Export(ctx, rep); err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	return nil
}

// PostDue runs the recurring poster for today and refreshes the report
// when anything was posted.
func (w *ReportWorker) PostDue(ctx context.Context) (services.PostResult, error) {
	if w.poster == nil {
		return services.PostResult{}, fmt.Errorf("no recurring poster configured")
	}
	res, err := w.poster.PostDue(ctx, w.today())
	if err != nil {
		return res, err
	}
	if len(res.Posted) > 0 {
		if err := w.Refresh(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to refresh report after posting", "error", err)
		}
	}
	return res, nil
}

// RunRecurring calls PostDue immediately and then every interval until ctx
// is done.
func (w *ReportWorker) RunRecurring(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := w.PostDue(ctx); err != nil {
			slog.ErrorContext(ctx, "Failed to post recurring bills", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
