package output

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional YAML report of one run.
type Manifest struct {
	RunID       string          `yaml:"run_id"`
	Version     string          `yaml:"version"`
	StartedAt   time.Time       `yaml:"started_at"`
	FinishedAt  time.Time       `yaml:"finished_at"`
	Interrupted bool            `yaml:"interrupted,omitempty"`
	Config      ManifestConfig  `yaml:"config"`
	Totals      map[string]int  `yaml:"totals"`
	Authorities []ManifestEntry `yaml:"authorities"`
}

type ManifestConfig struct {
	AuthoritiesURL string `yaml:"authorities_url"`
	FeedBaseURL    string `yaml:"feed_base_url"`
	OutputDir      string `yaml:"output_dir"`
	Tag            string `yaml:"tag"`
	RequestDelay   string `yaml:"request_delay"`
}

type ManifestEntry struct {
	Row     int    `yaml:"row"`
	Name    string `yaml:"name"`
	URLName string `yaml:"url_name,omitempty"`
	FeedURL string `yaml:"feed_url,omitempty"`
	Outcome string `yaml:"outcome"`
	Entries int    `yaml:"entries,omitempty"`
	File    string `yaml:"file,omitempty"`
	Error   string `yaml:"error,omitempty"`
}

func WriteManifest(path string, manifest *Manifest) error {
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create manifest directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
