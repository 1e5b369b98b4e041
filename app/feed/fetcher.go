package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Fetcher struct {
	client  *resty.Client
	parser  *Parser
	baseURL string
	timeout time.Duration
}

func NewFetcher(client *resty.Client, parser *Parser, baseURL string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client:  client,
		parser:  parser,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// URL returns the feed address for an authority identifier.
func (f *Fetcher) URL(urlName string) string {
	return f.baseURL + "/" + EscapeSegment(urlName) + "/"
}

// EscapeSegment percent-encodes every byte outside [A-Za-z0-9_.~-], including '/'.
func EscapeSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Fetch retrieves and parses the feed of one authority. All failures are *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, urlName string) (*Result, error) {
	feedURL := f.URL(urlName)
	fail := func(kind ErrorKind, err error) (*Result, error) {
		return nil, &FetchError{URLName: urlName, URL: feedURL, Kind: kind, Err: err}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	slog.Debug("Fetching feed", "url_name", urlName, "url", feedURL)

	resp, err := f.client.R().
		SetContext(timeoutCtx).
		Get(feedURL)
	if err != nil {
		if isTimeout(err) {
			return fail(ErrorKindTimeout, err)
		}
		return fail(ErrorKindNetwork, err)
	}

	if !resp.IsSuccess() {
		return fail(ErrorKindStatus, fmt.Errorf("HTTP error: %s", resp.Status()))
	}

	metadata, entries, err := f.parser.Run(resp.Body())
	if err != nil {
		return fail(ErrorKindParse, err)
	}

	return &Result{
		URL:      feedURL,
		Metadata: metadata,
		Entries:  entries,
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
