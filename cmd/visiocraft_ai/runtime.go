package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/visiocraft/visiocraft-ai/internal/config"
	"github.com/visiocraft/visiocraft-ai/internal/llm"
	"github.com/visiocraft/visiocraft-ai/internal/logging"
)

// loadConfig resolves file, environment and defaults, then lets overrides
// (flag values the user actually set) win.
func loadConfig(overrides func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load(configPath, os.LookupEnv)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		cfg.Verbose = true
	}
	if overrides != nil {
		overrides(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the process logger from cfg. Validate has already
// checked the format and level names.
func newLogger(cfg *config.Config) *slog.Logger {
	format, _ := logging.ParseFormat(cfg.LogFormat)
	level, _ := logging.ParseLevel(cfg.LogLevel)
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return logging.New(logging.WithFormat(format), logging.WithLevel(level))
}

// openModel creates the process-wide model handle. On failure it logs the
// reason and returns nil: the service keeps running and reports the AI
// capability as unavailable. There is no later retry.
func openModel(ctx context.Context, cfg *config.Config, logger *slog.Logger) llm.Client {
	client, err := llm.NewClient(ctx, llm.DefaultConfig().WithModel(cfg.Model), cfg.APIKey)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			logger.Error("Google AI is not configured", "error", err, "hint", "set the "+config.EnvAPIKey+" environment variable")
		} else {
			logger.Error("failed to initialize Google AI client", "error", err)
		}
		return nil
	}

	logger.Info("Google AI client ready", "model", client.Model())
	return client
}
