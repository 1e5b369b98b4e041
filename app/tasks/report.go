package tasks

import (
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/lysyi3m/wdtk-harvest/app/cfg"
	"github.com/lysyi3m/wdtk-harvest/app/output"
)

type Report struct {
	RunID       string
	StartedAt   time.Time
	FinishedAt  time.Time
	Total       int
	Interrupted bool
	Results     []Result
}

func (r *Report) Totals() map[Outcome]int {
	totals := make(map[Outcome]int, len(Outcomes))
	for _, result := range r.Results {
		totals[result.Outcome]++
	}
	return totals
}

// Render prints one row per processed authority followed by per-outcome totals.
func (r *Report) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Row", "Authority", "URL name", "Outcome", "Entries", "File / error"})

	for _, result := range r.Results {
		urlName := ""
		if result.Authority.URLName != nil {
			urlName = *result.Authority.URLName
		}
		detail := ""
		switch {
		case result.File != nil:
			detail = result.File.Path
		case result.Err != nil:
			detail = result.Err.Error()
		}
		t.AppendRow(table.Row{result.Authority.Index, result.Authority.Name, urlName, result.Outcome, result.Entries, detail})
	}

	totals := r.Totals()
	summary := ""
	for _, outcome := range Outcomes {
		if summary != "" {
			summary += "  "
		}
		summary += string(outcome) + "=" + strconv.Itoa(totals[outcome])
	}
	if r.Interrupted {
		summary += "  (interrupted)"
	}
	t.AppendFooter(table.Row{"", "Processed " + strconv.Itoa(len(r.Results)) + "/" + strconv.Itoa(r.Total), "", summary})

	style := table.StyleRounded
	style.Format.Footer = text.FormatDefault
	t.SetStyle(style)
	t.Render()
}

func (r *Report) Manifest(c *cfg.Cfg) *output.Manifest {
	manifest := &output.Manifest{
		RunID:       r.RunID,
		Version:     c.Version,
		StartedAt:   r.StartedAt,
		FinishedAt:  r.FinishedAt,
		Interrupted: r.Interrupted,
		Config: output.ManifestConfig{
			AuthoritiesURL: c.AuthoritiesURL,
			FeedBaseURL:    c.FeedBaseURL,
			OutputDir:      c.OutputDir,
			Tag:            c.Tag,
			RequestDelay:   c.RequestDelay.String(),
		},
		Totals:      make(map[string]int, len(Outcomes)),
		Authorities: make([]output.ManifestEntry, 0, len(r.Results)),
	}

	for outcome, count := range r.Totals() {
		manifest.Totals[string(outcome)] = count
	}

	for _, result := range r.Results {
		entry := output.ManifestEntry{
			Row:     result.Authority.Index,
			Name:    result.Authority.Name,
			FeedURL: result.FeedURL,
			Outcome: string(result.Outcome),
			Entries: result.Entries,
		}
		if result.Authority.URLName != nil {
			entry.URLName = *result.Authority.URLName
		}
		if result.File != nil {
			entry.File = result.File.Path
		}
		if result.Err != nil {
			entry.Error = result.Err.Error()
		}
		manifest.Authorities = append(manifest.Authorities, entry)
	}

	return manifest
}
