package feed

// RawEntry is one syndication item as published. An empty field means the feed
// did not carry it.
type RawEntry struct {
	Title       string
	Description string // RSS description or Atom summary
	Published   string
	Updated     string
}

// Entry is the normalized record written to the output CSV.
type Entry struct {
	Title string
	Body  string
	Date  string
}

type Metadata struct {
	Title string
}

// Result of fetching one authority's feed.
type Result struct {
	URL      string
	Metadata *Metadata
	Entries  []RawEntry
}

// Empty reports whether the feed carried no entries; nothing is written for it.
func (r *Result) Empty() bool {
	return r == nil || len(r.Entries) == 0
}
