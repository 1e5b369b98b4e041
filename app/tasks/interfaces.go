package tasks

import (
	"context"

	"github.com/lysyi3m/wdtk-harvest/app/feed"
	"github.com/lysyi3m/wdtk-harvest/app/output"
)

// FeedFetcher retrieves one authority's feed. Implemented by *feed.Fetcher.
// Errors are expected to be *feed.FetchError; any error is treated as a fetch failure.
type FeedFetcher interface {
	Fetch(ctx context.Context, urlName string) (*feed.Result, error)
}

// EntryWriter persists the records of one authority. Implemented by *output.Writer.
type EntryWriter interface {
	Write(urlName string, rowIndex int, entries []feed.Entry) (*output.File, error)
}

var (
	_ FeedFetcher = (*feed.Fetcher)(nil)
	_ EntryWriter = (*output.Writer)(nil)
)
