package tasks

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/lysyi3m/wdtk-harvest/app/cfg"
	"github.com/lysyi3m/wdtk-harvest/app/output"
	"github.com/lysyi3m/wdtk-harvest/app/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	return &Report{
		RunID:      "run-1",
		StartedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2024, 3, 1, 12, 1, 0, 0, time.UTC),
		Total:      3,
		Results: []Result{
			{
				Authority: registry.Authority{Index: 0, Name: "University of X", URLName: ptr("x-uni")},
				Outcome:   OutcomeWritten,
				FeedURL:   "https://www.whatdotheyknow.com/feed/body/x-uni/",
				Entries:   2,
				File:      &output.File{Path: "wdtk-data/x-uni.csv", BaseName: "x-uni", Entries: 2},
			},
			{
				Authority: registry.Authority{Index: 3, Name: "Broken University", URLName: ptr("broken")},
				Outcome:   OutcomeFetchFailed,
				Err:       errors.New("status error"),
			},
			{
				Authority: registry.Authority{Index: 5, Name: "Nameless"},
				Outcome:   OutcomeSkipped,
			},
		},
	}
}

func TestReportTotals(t *testing.T) {
	totals := sampleReport().Totals()

	assert.Equal(t, 1, totals[OutcomeWritten])
	assert.Equal(t, 1, totals[OutcomeFetchFailed])
	assert.Equal(t, 1, totals[OutcomeSkipped])
	assert.Equal(t, 0, totals[OutcomeEmpty])
}

func TestReportRender(t *testing.T) {
	var buf bytes.Buffer
	sampleReport().Render(&buf)

	out := buf.String()
	assert.Contains(t, out, "University of X")
	assert.Contains(t, out, "wdtk-data/x-uni.csv")
	assert.Contains(t, out, "status error")
	assert.Contains(t, out, "written=1")
	assert.Contains(t, out, "fetch_failed=1")
	assert.Contains(t, out, "Processed 3/3")
	assert.NotContains(t, out, "interrupted")
}

func TestReportManifest(t *testing.T) {
	c := &cfg.Cfg{
		AuthoritiesURL: "https://example.com/all.csv",
		FeedBaseURL:    "https://example.com/feed/body",
		OutputDir:      "wdtk-data",
		Tag:            "university",
		RequestDelay:   300 * time.Millisecond,
		Version:        "test",
	}

	manifest := sampleReport().Manifest(c)

	assert.Equal(t, "run-1", manifest.RunID)
	assert.Equal(t, "test", manifest.Version)
	assert.Equal(t, "300ms", manifest.Config.RequestDelay)
	assert.Equal(t, 1, manifest.Totals["written"])

	require.Len(t, manifest.Authorities, 3)
	assert.Equal(t, output.ManifestEntry{
		Row: 0, Name: "University of X", URLName: "x-uni", FeedURL: "https://www.whatdotheyknow.com/feed/body/x-uni/",
		Outcome: "written", Entries: 2, File: "wdtk-data/x-uni.csv",
	}, manifest.Authorities[0])
	assert.Equal(t, "status error", manifest.Authorities[1].Error)
	assert.Empty(t, manifest.Authorities[2].URLName)
}
