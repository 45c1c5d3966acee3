// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal appends entries to the external collections: access logs,
// announcements and messages. Entries are opaque maps; the journal only adds
// a timestamp when the caller did not supply one.
package journal

import (
	"context"
	"maps"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/project-match/internal/logging"
	"github.com/pdiddy/project-match/internal/metrics"
	"github.com/pdiddy/project-match/internal/persist"
	"github.com/pdiddy/project-match/internal/store"
	errs "github.com/pdiddy/project-match/pkg/errors"
	"github.com/pdiddy/project-match/pkg/types"
)

// TimestampKey is the entry key the journal stamps.
const TimestampKey = "timestamp"

// Access log actions.
const (
	ActionProfileView = "profile_view"
	ActionAdminView   = "admin_view"
)

var appendable = map[string]bool{
	types.CollectionLogs:          true,
	types.CollectionAnnouncements: true,
	types.CollectionMessages:      true,
}

// Journal serializes appends to the external collections.
type Journal struct {
	mu     sync.Mutex
	store  *store.Store
	saver  persist.Saver
	logger *zap.Logger
	now    func() time.Time
}

// New creates a Journal. A nil saver keeps entries in memory only.
func New(s *store.Store, saver persist.Saver, logger *zap.Logger) *Journal {
	return &Journal{store: s, saver: saver, logger: logging.OrNop(logger), now: time.Now}
}

// Append adds a copy of entry to collection and persists the collection.
// Unknown collections and empty entries are rejected with a ValidationError.
func (j *Journal) Append(ctx context.Context, collection string, entry types.Entry) (types.Entry, error) {
	if !appendable[collection] {
		return nil, errs.NewValidationError("collection", collection, "is not an appendable collection")
	}
	if len(entry) == 0 {
		return nil, errs.NewValidationError("entry", nil, "must not be empty")
	}

	e := maps.Clone(entry)

	j.mu.Lock()
	defer j.mu.Unlock()

	if ts, ok := e[TimestampKey]; !ok || ts == nil || ts == "" {
		e[TimestampKey] = j.now().Format(types.TimestampLayout)
	}
	snapshot := j.store.AppendEntry(collection, e)

	if j.saver != nil {
		if err := j.saver.Save(ctx, collection, snapshot); err != nil {
			metrics.PersistFailures.WithLabelValues(collection).Inc()
			j.logger.Error("entry kept in memory only",
				zap.String("collection", collection),
				zap.Error(errs.NewPersistenceError(collection, err)))
		}
	}
	return maps.Clone(e), nil
}

// RecordAccess appends an access-log entry for user.
func (j *Journal) RecordAccess(ctx context.Context, user, action string) error {
	_, err := j.Append(ctx, types.CollectionLogs, types.Entry{"user": user, "action": action})
	return err
}
