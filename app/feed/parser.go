package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses an RSS, Atom or JSON feed document.
func (p *Parser) Run(data []byte) (*Metadata, []RawEntry, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	metadata := &Metadata{
		Title: feed.Title,
	}

	entries := make([]RawEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, p.normalizeItem(item))
	}

	return metadata, entries, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) RawEntry {
	return RawEntry{
		Title:       item.Title,
		Description: item.Description,
		Published:   item.Published,
		Updated:     item.Updated,
	}
}
