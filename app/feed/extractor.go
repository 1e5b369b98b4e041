package feed

import (
	"cmp"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type Extractor struct {
	policy *bluemonday.Policy // nil keeps bodies verbatim
}

func NewExtractor(stripHTML bool) *Extractor {
	e := &Extractor{}
	if stripHTML {
		e.policy = bluemonday.StrictPolicy()
	}
	return e
}

// Run maps a raw entry to its record. Missing fields become empty strings; the
// date prefers the published timestamp over the updated one.
func (e *Extractor) Run(raw RawEntry) Entry {
	return Entry{
		Title: raw.Title,
		Body:  e.body(raw.Description),
		Date:  cmp.Or(raw.Published, raw.Updated),
	}
}

func (e *Extractor) RunAll(raws []RawEntry) []Entry {
	entries := make([]Entry, 0, len(raws))
	for _, raw := range raws {
		entries = append(entries, e.Run(raw))
	}
	return entries
}

func (e *Extractor) body(description string) string {
	if e.policy == nil || description == "" {
		return description
	}
	text := html.UnescapeString(e.policy.Sanitize(description))
	return strings.Join(strings.Fields(text), " ")
}
