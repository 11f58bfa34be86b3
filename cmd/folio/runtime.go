package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goliatone/go-folio/internal/config"
	"github.com/goliatone/go-folio/internal/logger"
	"github.com/goliatone/go-folio/internal/metrics"
	pkgopenapi "github.com/goliatone/go-folio/pkg/openapi"
	"github.com/goliatone/go-folio/pkg/orchestrator"
	"github.com/goliatone/go-folio/pkg/portfolio"
	"github.com/goliatone/go-folio/pkg/submit"
)

// runtime is what every subcommand builds from the configuration.
type runtime struct {
	cfg    config.Config
	logger *slog.Logger
	orch   *orchestrator.Orchestrator
	// source is nil for the embedded contract.
	source pkgopenapi.Source
}

func loadRuntime(opts *rootOptions) (*runtime, error) {
	cfg, err := config.Load(opts.configPath, config.WithDotEnv(opts.envFiles...))
	if err != nil {
		return nil, err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	log := logger.New(os.Stderr, level, cfg.Log.Format)

	catalog, err := orchestrator.NewCatalog(orchestrator.DefaultManifest())
	if err != nil {
		return nil, err
	}
	if _, err := catalog.Select(cfg.Theme.Name, cfg.Theme.Variant); err != nil {
		return nil, fmt.Errorf("folio: theme: %w", err)
	}

	orchOpts := []orchestrator.Option{
		orchestrator.WithThemeSelector(catalog, cfg.Theme.Name, cfg.Theme.Variant),
	}
	if cfg.Content.Path != "" {
		content, err := portfolio.Load(cfg.Content.Path)
		if err != nil {
			return nil, err
		}
		orchOpts = append(orchOpts, orchestrator.WithContent(content))
	}

	rt := &runtime{cfg: cfg, logger: log, orch: orchestrator.New(orchOpts...)}
	if cfg.Content.ContractPath != "" {
		rt.source = pkgopenapi.SourceFromFile(cfg.Content.ContractPath)
	}
	return rt, nil
}

// newSender posts to the configured webhook, or simulates delivery with the
// configured delay. A non-nil m instruments the result.
func newSender(cfg config.Contact, m *metrics.Metrics) (submit.Sender, error) {
	if cfg.WebhookURL == "" {
		return m.InstrumentSender(submit.NewDelaySender(cfg.Delay.Std())), nil
	}
	sender, err := submit.NewWebhookSender(cfg.WebhookURL, submit.WithTimeout(cfg.Timeout.Std()))
	if err != nil {
		return nil, err
	}
	return m.InstrumentSender(sender), nil
}
