// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package persist writes mutated collections back to durable storage. Every
// Save overwrites the named collection in full; there is no incremental
// format.
package persist

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/project-match/pkg/types"
)

// Saver persists a whole collection.
type Saver interface {
	Save(ctx context.Context, collection string, records any) error
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the Saver selected by cfg.Persistence and a Closer that
// releases it. The sqlite saver also implements ingest.Overlay.
func Open(cfg types.Config) (Saver, io.Closer, error) {
	switch cfg.Persistence.Backend {
	case types.BackendFile, "":
		return NewFileSaver(cfg.Data.Dir, cfg.Data.Files), nopCloser{}, nil
	case types.BackendSQLite:
		s, err := NewSQLiteSaver(cfg.Persistence.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}
	return nil, nil, fmt.Errorf("unsupported persistence backend %q: use file or sqlite", cfg.Persistence.Backend)
}
