// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/project-match/internal/ingest"
	"github.com/pdiddy/project-match/internal/logging"
	"github.com/pdiddy/project-match/internal/persist"
	"github.com/pdiddy/project-match/internal/store"
	"github.com/pdiddy/project-match/pkg/types"
)

// app holds what every command needs: resolved config, a logger, the
// loaded store and the persistence backend.
type app struct {
	cfg     types.Config
	logger  *zap.Logger
	store   *store.Store
	saver   persist.Saver
	closer  io.Closer
	summary ingest.Summary
}

func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// openApp resolves config, opens persistence and loads every collection.
// When the backend keeps snapshots, they take precedence over the source
// files for mutable collections.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	saver, closer, err := persist.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening persistence: %w", err)
	}

	loader := ingest.NewLoader(cfg.Data, logger)
	if o, ok := saver.(ingest.Overlay); ok {
		loader.WithOverlay(o)
	}

	c, summary, err := loader.Load(ctx)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("loading data: %w", err)
	}

	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   store.New(c),
		saver:   saver,
		closer:  closer,
		summary: summary,
	}, nil
}

func (a *app) Close() error {
	_ = a.logger.Sync()
	return a.closer.Close()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printJSON(v any) error {
	return writeJSON(os.Stdout, v)
}
