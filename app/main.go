package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-resty/resty/v2"
	"github.com/lysyi3m/wdtk-harvest/app/cfg"
	"github.com/lysyi3m/wdtk-harvest/app/feed"
	"github.com/lysyi3m/wdtk-harvest/app/output"
	"github.com/lysyi3m/wdtk-harvest/app/registry"
	"github.com/lysyi3m/wdtk-harvest/app/tasks"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit status: 1 when the configuration or the registry
// cannot be loaded, 0 otherwise, including runs where some authorities failed.
func run(args []string) int {
	config, err := cfg.Load(args)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}
	if config == nil {
		// Help was shown
		return 0
	}

	setupLogger(config.Debug)

	slog.Info("Starting WDTK Harvest",
		"version", config.Version,
		"authorities_url", config.AuthoritiesURL,
		"feed_base_url", config.FeedBaseURL,
		"output_dir", config.OutputDir,
		"tag", config.Tag)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := resty.New().
		SetTimeout(config.Timeout).
		SetHeader("User-Agent", config.UserAgent)

	loader := registry.NewLoader(client, config.AuthoritiesURL, registry.NewFilterer(config.Tag))
	authorities, err := loader.Load(ctx)
	if err != nil {
		slog.Error("Failed to load authorities", "error", err)
		return 1
	}

	fetcher := feed.NewFetcher(client, feed.NewParser(), config.FeedBaseURL, config.Timeout)
	extractor := feed.NewExtractor(config.StripHTML)
	writer := output.NewWriter(config.OutputDir)

	runner := tasks.NewRunner(fetcher, extractor, writer, config.RequestDelay)
	report := runner.Run(ctx, authorities)

	report.Render(os.Stdout)

	if config.ManifestPath != "" {
		if err := output.WriteManifest(config.ManifestPath, report.Manifest(config)); err != nil {
			slog.Error("Failed to write run manifest", "path", config.ManifestPath, "error", err)
		} else {
			slog.Info("Run manifest written", "path", config.ManifestPath)
		}
	}

	return 0
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
