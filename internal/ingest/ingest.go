// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest loads the record sources into typed collections. Field
// aliases, grouped match exports and stray header rows are resolved here so
// that nothing downstream sees the raw shapes. A bad record is counted and
// skipped; a bad file leaves its collection empty. Neither aborts the load.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/project-match/internal/logging"
	"github.com/pdiddy/project-match/internal/metrics"
	"github.com/pdiddy/project-match/internal/store"
	errs "github.com/pdiddy/project-match/pkg/errors"
	"github.com/pdiddy/project-match/pkg/types"
)

// CollectionSummary holds counts from loading one collection.
type CollectionSummary struct {
	Collection string

	// Source is the file or snapshot the records came from.
	Source string

	Loaded    int
	Skipped   int
	Malformed int

	// Errors lists malformed records and, last, any file-level failure.
	Errors []error

	// FileErr is set when the source could not be read or decoded.
	FileErr error
}

func (c *CollectionSummary) malformed(index int, reason string) {
	c.Malformed++
	c.Errors = append(c.Errors, errs.NewMalformedInputError(c.Collection, index, reason))
}

// Summary holds per-collection counts from a full load.
type Summary struct {
	Collections []CollectionSummary
}

// Malformed returns the number of malformed records across all collections.
func (s Summary) Malformed() int {
	n := 0
	for _, c := range s.Collections {
		n += c.Malformed
	}
	return n
}

// FileErrors returns the number of sources that could not be read.
func (s Summary) FileErrors() int {
	n := 0
	for _, c := range s.Collections {
		if c.FileErr != nil {
			n++
		}
	}
	return n
}

// Get returns the summary for one collection.
func (s Summary) Get(collection string) (CollectionSummary, bool) {
	for _, c := range s.Collections {
		if c.Collection == collection {
			return c, true
		}
	}
	return CollectionSummary{}, false
}

// Write prints one line per collection followed by a totals line.
func (s Summary) Write(w io.Writer) {
	for _, c := range s.Collections {
		status := "loaded "
		if c.FileErr != nil {
			status = "failed "
		}
		fmt.Fprintf(w, "%s %-13s %5d records, %d skipped, %d malformed", status, c.Collection, c.Loaded, c.Skipped, c.Malformed)
		if c.FileErr != nil {
			fmt.Fprintf(w, ": %v", c.FileErr)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\nmalformed: %d, unreadable sources: %d\n", s.Malformed(), s.FileErrors())
}

// Overlay supplies persisted snapshots of mutable collections. A snapshot,
// when present, replaces the source file for that collection.
type Overlay interface {
	Snapshot(ctx context.Context, collection string) ([]byte, bool, error)
}

// Loader reads every configured source from the data directory.
type Loader struct {
	cfg     types.DataConfig
	logger  *zap.Logger
	overlay Overlay
}

// NewLoader creates a Loader. A nil logger discards output.
func NewLoader(cfg types.DataConfig, logger *zap.Logger) *Loader {
	return &Loader{cfg: cfg, logger: logging.OrNop(logger)}
}

// WithOverlay sets the snapshot source consulted for mutable collections.
func (l *Loader) WithOverlay(o Overlay) *Loader {
	l.overlay = o
	return l
}

// mutable lists the collections that change at runtime and are therefore
// eligible for an overlay snapshot.
var mutable = map[string]bool{
	types.CollectionDecisions:     true,
	types.CollectionLogs:          true,
	types.CollectionAnnouncements: true,
	types.CollectionMessages:      true,
}

// Load reads all collections. The returned error is non-nil only when ctx
// is cancelled; record and file problems are reported in the Summary.
func (l *Loader) Load(ctx context.Context) (store.Collections, Summary, error) {
	var (
		c   store.Collections
		sum Summary
	)

	steps := []struct {
		collection string
		groups     bool
		convert    func(raw []any, cs *CollectionSummary)
	}{
		{types.CollectionResearchers, false, func(raw []any, cs *CollectionSummary) { c.Researchers = Researchers(raw, cs) }},
		{types.CollectionProjects, false, func(raw []any, cs *CollectionSummary) { c.Projects = Projects(raw, cs) }},
		{types.CollectionMatches, true, func(raw []any, cs *CollectionSummary) { c.Matches = Matches(raw, l.cfg.HeaderToken, cs) }},
		{types.CollectionDecisions, false, func(raw []any, cs *CollectionSummary) { c.Decisions = Decisions(raw, cs) }},
		{types.CollectionLogs, false, func(raw []any, cs *CollectionSummary) { c.Logs = Entries(raw, cs) }},
		{types.CollectionAnnouncements, false, func(raw []any, cs *CollectionSummary) { c.Announcements = Entries(raw, cs) }},
		{types.CollectionMessages, false, func(raw []any, cs *CollectionSummary) { c.Messages = Entries(raw, cs) }},
	}

	for _, step := range steps {
		select {
		case <-ctx.Done():
			return store.Collections{}, sum, ctx.Err()
		default:
		}

		cs := CollectionSummary{Collection: step.collection}
		raw, err := l.read(ctx, step.collection, step.groups, &cs)
		if err != nil {
			cs.FileErr = err
			cs.Errors = append(cs.Errors, err)
			l.logger.Warn("source unreadable, collection left empty",
				zap.String("collection", step.collection),
				zap.String("source", cs.Source),
				zap.Error(err))
		}
		step.convert(raw, &cs)
		l.report(cs)
		sum.Collections = append(sum.Collections, cs)
	}

	return c, sum, nil
}

// read returns the raw records for one collection, preferring an overlay
// snapshot for mutable collections. A missing file is an empty collection.
func (l *Loader) read(ctx context.Context, collection string, groups bool, cs *CollectionSummary) ([]any, error) {
	if l.overlay != nil && mutable[collection] {
		data, ok, err := l.overlay.Snapshot(ctx, collection)
		if err != nil {
			l.logger.Warn("snapshot unavailable, falling back to source file",
				zap.String("collection", collection), zap.Error(err))
		} else if ok {
			cs.Source = "snapshot:" + collection
			raw, err := DecodeRecords(bytes.NewReader(data), FormatJSON, groups)
			if err != nil {
				return nil, fmt.Errorf("decoding %s snapshot: %w", collection, err)
			}
			return raw, nil
		}
	}

	name := l.cfg.Files.ByCollection(collection)
	if name == "" {
		return nil, nil
	}
	path := filepath.Join(l.cfg.Dir, name)
	cs.Source = path

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("source file absent", zap.String("collection", collection), zap.String("path", path))
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	raw, err := DecodeRecords(f, FormatFor(path), groups)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return raw, nil
}

func (l *Loader) report(cs CollectionSummary) {
	metrics.RecordsLoaded.WithLabelValues(cs.Collection).Add(float64(cs.Loaded))
	if cs.Skipped > 0 {
		metrics.RecordsSkipped.WithLabelValues(cs.Collection, metrics.ReasonHeader).Add(float64(cs.Skipped))
	}
	if cs.Malformed > 0 {
		metrics.RecordsSkipped.WithLabelValues(cs.Collection, metrics.ReasonMalformed).Add(float64(cs.Malformed))
		for _, err := range cs.Errors {
			l.logger.Debug("skipped malformed record", zap.Error(err))
		}
		l.logger.Warn("malformed records skipped",
			zap.String("collection", cs.Collection),
			zap.Int("count", cs.Malformed))
	}
	l.logger.Info("collection loaded",
		zap.String("collection", cs.Collection),
		zap.String("source", cs.Source),
		zap.Int("loaded", cs.Loaded),
		zap.Int("skipped", cs.Skipped))
}
