package registry

import (
	"strings"

	"golang.org/x/text/cases"
)

type Filterer struct {
	tag string
}

func NewFilterer(tag string) *Filterer {
	return &Filterer{tag: tag}
}

// Run keeps authorities whose tags contain the configured tag, preserving order.
func (f *Filterer) Run(authorities []Authority) []Authority {
	filtered := make([]Authority, 0, len(authorities))
	for _, authority := range authorities {
		if f.Matches(authority) {
			filtered = append(filtered, authority)
		}
	}
	return filtered
}

func (f *Filterer) Matches(authority Authority) bool {
	if authority.Tags == nil {
		return false
	}
	// cases.Caser keeps state between calls and is not safe for concurrent use
	fold := cases.Fold()
	return strings.Contains(fold.String(*authority.Tags), fold.String(f.tag))
}
