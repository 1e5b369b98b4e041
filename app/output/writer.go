package output

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lysyi3m/wdtk-harvest/app/feed"
)

var Header = []string{"title", "body", "date"}

type File struct {
	Path     string
	BaseName string
	Entries  int
}

type Writer struct {
	dir string
	// lower-cased base name -> row index owning it for this run
	claimed map[string]int
}

func NewWriter(dir string) *Writer {
	return &Writer{
		dir:     dir,
		claimed: make(map[string]int),
	}
}

// Write stores the entries of one authority as <base>.csv, replacing any file left by
// an earlier run. Two authorities of the same run never share a file: a later
// collision gets _<rowIndex> appended.
func (w *Writer) Write(urlName string, rowIndex int, entries []feed.Entry) (*File, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, &WriteError{Path: w.dir, Op: "create directory", Err: err}
	}

	base := w.claim(BaseName(urlName, rowIndex), rowIndex)
	path := filepath.Join(w.dir, base+".csv")

	if err := writeCSV(w.dir, path, entries); err != nil {
		w.release(base, rowIndex)
		return nil, err
	}

	slog.Debug("Output file written", "path", path, "entries", len(entries))

	return &File{
		Path:     path,
		BaseName: base,
		Entries:  len(entries),
	}, nil
}

func (w *Writer) claim(base string, rowIndex int) string {
	name := base
	for {
		owner, taken := w.claimed[strings.ToLower(name)]
		if !taken || owner == rowIndex {
			break
		}
		name += "_" + strconv.Itoa(rowIndex)
	}
	if name != base {
		slog.Warn("Output name already used in this run, disambiguating",
			"base_name", base,
			"name", name,
			"row", rowIndex)
	}
	w.claimed[strings.ToLower(name)] = rowIndex
	return name
}

func (w *Writer) release(name string, rowIndex int) {
	if owner, ok := w.claimed[strings.ToLower(name)]; ok && owner == rowIndex {
		delete(w.claimed, strings.ToLower(name))
	}
}

// writeCSV writes to a temporary file in dir and renames it over path, so an
// interrupted run never leaves a truncated CSV behind.
func writeCSV(dir, path string, entries []feed.Entry) error {
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &WriteError{Path: path, Op: "create", Err: err}
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(Header); err != nil {
		tmp.Close()
		return &WriteError{Path: path, Op: "write", Err: err}
	}
	for _, entry := range entries {
		if err := writer.Write([]string{entry.Title, entry.Body, entry.Date}); err != nil {
			tmp.Close()
			return &WriteError{Path: path, Op: "write", Err: err}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return &WriteError{Path: path, Op: "write", Err: err}
	}

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return &WriteError{Path: path, Op: "chmod", Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &WriteError{Path: path, Op: "close", Err: err}
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return &WriteError{Path: path, Op: "rename", Err: err}
	}

	return nil
}
