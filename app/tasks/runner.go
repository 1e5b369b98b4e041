package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lysyi3m/wdtk-harvest/app/feed"
	"github.com/lysyi3m/wdtk-harvest/app/registry"
)

// Runner processes authorities one at a time, in order, pausing after each.
type Runner struct {
	fetcher   FeedFetcher
	extractor *feed.Extractor
	writer    EntryWriter
	delay     time.Duration
}

func NewRunner(fetcher FeedFetcher, extractor *feed.Extractor, writer EntryWriter, delay time.Duration) *Runner {
	return &Runner{
		fetcher:   fetcher,
		extractor: extractor,
		writer:    writer,
		delay:     delay,
	}
}

// Run returns once every authority was attempted or ctx is cancelled. Authorities
// not reached after a cancellation are absent from the report.
func (r *Runner) Run(ctx context.Context, authorities []registry.Authority) *Report {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Total:     len(authorities),
		Results:   make([]Result, 0, len(authorities)),
	}

	slog.Info("Run started", "run_id", report.RunID, "authorities", len(authorities), "delay", r.delay)

	for i, authority := range authorities {
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}

		slog.Debug("Processing authority", "progress", i+1, "total", len(authorities), "authority", authority.Name)

		task := NewHarvestAuthorityTask(authority, r.fetcher, r.extractor, r.writer)
		report.Results = append(report.Results, task.Execute(ctx))

		if err := pause(ctx, r.delay); err != nil {
			report.Interrupted = true
			break
		}
	}

	report.FinishedAt = time.Now().UTC()

	if report.Interrupted {
		slog.Warn("Run interrupted", "run_id", report.RunID, "processed", len(report.Results), "total", report.Total)
	}

	totals := report.Totals()
	slog.Info("Run completed",
		"run_id", report.RunID,
		"duration", report.FinishedAt.Sub(report.StartedAt),
		"written", totals[OutcomeWritten],
		"empty", totals[OutcomeEmpty],
		"skipped", totals[OutcomeSkipped],
		"fetch_failed", totals[OutcomeFetchFailed],
		"write_failed", totals[OutcomeWriteFailed])

	return report
}

// pause is a fixed sleep that ends early when ctx is cancelled.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
