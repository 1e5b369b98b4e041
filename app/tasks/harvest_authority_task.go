package tasks

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lysyi3m/wdtk-harvest/app/feed"
	"github.com/lysyi3m/wdtk-harvest/app/output"
	"github.com/lysyi3m/wdtk-harvest/app/registry"
)

type Outcome string

const (
	OutcomeWritten     Outcome = "written"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeEmpty       Outcome = "empty"
	OutcomeFetchFailed Outcome = "fetch_failed"
	OutcomeWriteFailed Outcome = "write_failed"
)

var Outcomes = []Outcome{OutcomeWritten, OutcomeEmpty, OutcomeSkipped, OutcomeFetchFailed, OutcomeWriteFailed}

// Result of processing one authority.
type Result struct {
	TaskID    string
	Authority registry.Authority
	Outcome   Outcome
	FeedURL   string
	FeedTitle string
	Entries   int
	File      *output.File
	Err       error
	Duration  time.Duration
}

type HarvestAuthorityTask struct {
	Task
	Authority registry.Authority
	fetcher   FeedFetcher
	extractor *feed.Extractor
	writer    EntryWriter
}

func NewHarvestAuthorityTask(authority registry.Authority, fetcher FeedFetcher, extractor *feed.Extractor, writer EntryWriter) *HarvestAuthorityTask {
	return &HarvestAuthorityTask{
		Task:      NewTask(TaskTypeHarvestAuthority, authority.Name),
		Authority: authority,
		fetcher:   fetcher,
		extractor: extractor,
		writer:    writer,
	}
}

// Execute makes exactly one attempt for the authority. Failures are reported in the
// result, never returned, so one authority cannot abort the run.
func (t *HarvestAuthorityTask) Execute(ctx context.Context) Result {
	t.Start()
	result := t.execute(ctx)
	result.TaskID = t.ID
	result.Authority = t.Authority
	result.Duration = t.GetDuration()

	attrs := []any{
		"type", t.GetType(),
		"authority", t.Name,
		"row", t.Authority.Index,
		"outcome", result.Outcome,
		"duration", result.Duration,
	}
	if t.Authority.URLName != nil {
		attrs = append(attrs, "url_name", *t.Authority.URLName)
	}

	switch result.Outcome {
	case OutcomeWritten:
		slog.Info("Saved feed entries", append(attrs,
			"feed_url", result.FeedURL,
			"feed_title", result.FeedTitle,
			"entries", result.Entries,
			"path", result.File.Path)...)
	case OutcomeEmpty:
		slog.Info("No items found", attrs...)
	case OutcomeSkipped:
		slog.Info("Authority has no URL name, skipping", attrs...)
	default:
		slog.Error("Failed to process authority", append(attrs, "error", result.Err)...)
	}

	return result
}

func (t *HarvestAuthorityTask) execute(ctx context.Context) Result {
	if t.Authority.URLName == nil {
		return Result{Outcome: OutcomeSkipped}
	}
	urlName := *t.Authority.URLName

	fetched, err := t.fetcher.Fetch(ctx, urlName)
	if err != nil {
		result := Result{Outcome: OutcomeFetchFailed, Err: err}
		var fetchErr *feed.FetchError
		if errors.As(err, &fetchErr) {
			result.FeedURL = fetchErr.URL
		}
		return result
	}

	var result Result
	if fetched != nil {
		result.FeedURL = fetched.URL
		if fetched.Metadata != nil {
			result.FeedTitle = fetched.Metadata.Title
		}
	}

	if fetched.Empty() {
		result.Outcome = OutcomeEmpty
		return result
	}

	entries := t.extractor.RunAll(fetched.Entries)
	result.Entries = len(entries)

	file, err := t.writer.Write(urlName, t.Authority.Index, entries)
	if err != nil {
		result.Outcome = OutcomeWriteFailed
		result.Err = err
		return result
	}

	result.Outcome = OutcomeWritten
	result.File = file
	return result
}
