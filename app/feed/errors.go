package feed

import "fmt"

type ErrorKind string

const (
	ErrorKindNetwork ErrorKind = "network"
	ErrorKindTimeout ErrorKind = "timeout"
	ErrorKindStatus  ErrorKind = "status"
	ErrorKindParse   ErrorKind = "parse"
)

// FetchError is returned for any failure fetching or parsing one authority's feed.
// It is recoverable: the caller moves on to the next authority.
type FetchError struct {
	URLName string
	URL     string
	Kind    ErrorKind
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s error fetching feed for %s (%s): %v", e.Kind, e.URLName, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
