package registry

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"
)

type Loader struct {
	client   *resty.Client
	url      string
	filterer *Filterer
}

func NewLoader(client *resty.Client, url string, filterer *Filterer) *Loader {
	return &Loader{
		client:   client,
		url:      url,
		filterer: filterer,
	}
}

// Load downloads the registry export and returns the authorities matching the filter.
// Any error here is fatal for the run.
func (l *Loader) Load(ctx context.Context) ([]Authority, error) {
	slog.Info("Downloading authorities registry", "url", l.url)

	data, err := l.download(ctx)
	if err != nil {
		return nil, err
	}

	authorities, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse authorities registry: %w", err)
	}

	filtered := l.filterer.Run(authorities)

	slog.Info("Authorities filtered",
		"tag", l.filterer.tag,
		"total", len(authorities),
		"matched", len(filtered))

	return filtered, nil
}

func (l *Loader) download(ctx context.Context) ([]byte, error) {
	resp, err := l.client.R().
		SetContext(ctx).
		Get(l.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch authorities registry: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("HTTP error fetching authorities registry: %s", resp.Status())
	}

	return resp.Body(), nil
}

// Parse reads a registry CSV export with a header row. Columns are matched by header
// name; the Tags column is mandatory.
func Parse(data []byte) ([]Authority, error) {
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\ufeff"))))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("registry export is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}

	if _, ok := columns[ColumnTags]; !ok {
		return nil, fmt.Errorf("registry export has no %q column", ColumnTags)
	}

	var authorities []Authority
	for index := 0; ; index++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", index, err)
		}

		authority := Authority{
			Index:   index,
			URLName: field(record, columns, ColumnURLName),
			Tags:    field(record, columns, ColumnTags),
		}
		if name := field(record, columns, ColumnName); name != nil {
			authority.Name = *name
		}

		authorities = append(authorities, authority)
	}

	return authorities, nil
}

// field returns nil for a missing column, a short record or an empty cell.
func field(record []string, columns map[string]int, name string) *string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return nil
	}
	value := record[i]
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
