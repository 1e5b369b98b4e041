package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Sources
	AuthoritiesURL string `long:"authorities-url" env:"AUTHORITIES_URL" default:"https://www.whatdotheyknow.com/body/all-authorities.csv" description:"CSV export of the authorities registry"`
	FeedBaseURL    string `long:"feed-base-url" env:"FEED_BASE_URL" default:"https://www.whatdotheyknow.com/feed/body" description:"Base URL of per-authority activity feeds"`

	// Run behaviour
	OutputDir    string `long:"output-dir" env:"OUTPUT_DIR" default:"wdtk-data" description:"Directory receiving one CSV file per authority"`
	Tag          string `long:"tag" env:"TAG" default:"university" description:"Case-insensitive substring matched against the Tags column"`
	RequestDelay int    `long:"request-delay" env:"REQUEST_DELAY" default:"300" description:"Pause after each authority in milliseconds"`
	Timeout      int    `long:"timeout" env:"TIMEOUT" default:"30" description:"HTTP request timeout in seconds"`
	StripHTML    bool   `long:"strip-html" env:"STRIP_HTML" description:"Reduce entry bodies to plain text"`
	ManifestPath string `long:"manifest" env:"MANIFEST" description:"Write a YAML run manifest to this path (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" description:"User agent string for HTTP requests (default: WDTK Harvest/<version>)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses args and the environment. It returns nil, nil when help was requested.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		AuthoritiesURL: raw.AuthoritiesURL,
		FeedBaseURL:    strings.TrimRight(raw.FeedBaseURL, "/"),
		OutputDir:      raw.OutputDir,
		Tag:            raw.Tag,
		RequestDelay:   time.Duration(raw.RequestDelay) * time.Millisecond,
		Timeout:        time.Duration(raw.Timeout) * time.Second,
		StripHTML:      raw.StripHTML,
		ManifestPath:   raw.ManifestPath,
		UserAgent:      cmp.Or(raw.UserAgent, "WDTK Harvest/"+GetVersion()),
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Cfg) error {
	if cfg.AuthoritiesURL == "" {
		return fmt.Errorf("authorities URL is required")
	}
	if cfg.FeedBaseURL == "" {
		return fmt.Errorf("feed base URL is required")
	}
	if cfg.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if strings.TrimSpace(cfg.Tag) == "" {
		return fmt.Errorf("tag must not be blank")
	}
	if cfg.RequestDelay < 0 {
		return fmt.Errorf("request delay must not be negative, got %s", cfg.RequestDelay)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return nil
}
