// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records researcher decisions on matched projects. There is
// at most one decision per (researcher, project) pair: a write either
// updates the first existing record in place or appends a new one, and the
// whole decision set is then handed to the persistence layer.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"

	"github.com/pdiddy/project-match/internal/ingest"
	"github.com/pdiddy/project-match/internal/logging"
	"github.com/pdiddy/project-match/internal/metrics"
	"github.com/pdiddy/project-match/internal/persist"
	"github.com/pdiddy/project-match/internal/store"
	errs "github.com/pdiddy/project-match/pkg/errors"
	"github.com/pdiddy/project-match/pkg/types"
)

// MaxRating is the highest accepted rating; 0 means unrated.
const MaxRating = 5

// request is the validated form of a DecisionInput.
type request struct {
	Academician string `validate:"notblank"`
	ProjectID   string `validate:"notblank"`
	Decision    string `validate:"required,oneof=accepted rejected waiting"`
	Rating      int    `validate:"min=0,max=5"`
}

// Ledger serializes decision writes against a Store.
type Ledger struct {
	mu       sync.Mutex
	store    *store.Store
	saver    persist.Saver
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// New creates a Ledger. A nil saver keeps decisions in memory only.
func New(s *store.Store, saver persist.Saver, logger *zap.Logger) *Ledger {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	return &Ledger{
		store:    s,
		saver:    saver,
		logger:   logging.OrNop(logger),
		validate: v,
		now:      time.Now,
	}
}

// Upsert validates in and writes it. A ValidationError leaves the ledger
// untouched. A failed save is logged and counted but not returned: the
// in-memory ledger stays authoritative.
func (l *Ledger) Upsert(ctx context.Context, in types.DecisionInput) (types.Decision, error) {
	req, err := l.check(in)
	if err != nil {
		metrics.DecisionUpserts.WithLabelValues(metrics.OutcomeRejected).Inc()
		return types.Decision{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var (
		result  types.Decision
		outcome string
	)
	ts := l.now().Format(types.TimestampLayout)

	snapshot := l.store.UpdateDecisions(func(ds store.DecisionSet) store.DecisionSet {
		if i := ds.Index(req.Academician, req.ProjectID); i >= 0 {
			ds[i].Decision = types.DecisionState(req.Decision)
			ds[i].Note = in.Note
			ds[i].Rating = req.Rating
			ds[i].Timestamp = ts
			result = ds[i].Clone()
			outcome = metrics.OutcomeUpdated
			return ds
		}

		d := types.Decision{
			Academician:  req.Academician,
			ProjectID:    req.ProjectID,
			ProjectTitle: in.ProjectTitle,
			Decision:     types.DecisionState(req.Decision),
			Note:         in.Note,
			Rating:       req.Rating,
			Timestamp:    ts,
		}
		result = d
		outcome = metrics.OutcomeInserted
		return append(ds, d)
	})

	metrics.DecisionUpserts.WithLabelValues(outcome).Inc()
	l.logger.Info("decision recorded",
		zap.String("academician", req.Academician),
		zap.String("project_id", req.ProjectID),
		zap.String("decision", req.Decision),
		zap.String("outcome", outcome))

	l.persist(ctx, snapshot)
	return result, nil
}

func (l *Ledger) persist(ctx context.Context, snapshot store.DecisionSet) {
	if l.saver == nil {
		return
	}
	records := []types.Decision(snapshot)
	if records == nil {
		records = []types.Decision{}
	}
	if err := l.saver.Save(ctx, types.CollectionDecisions, records); err != nil {
		metrics.PersistFailures.WithLabelValues(types.CollectionDecisions).Inc()
		l.logger.Error("decision persisted in memory only",
			zap.Error(errs.NewPersistenceError(types.CollectionDecisions, err)))
	}
}

// check coerces the rating and validates every field.
func (l *Ledger) check(in types.DecisionInput) (request, error) {
	rating, err := coerceRating(in.Rating)
	if err != nil {
		return request{}, err
	}

	req := request{
		Academician: in.Academician,
		ProjectID:   in.ProjectID,
		Decision:    in.Decision,
		Rating:      rating,
	}
	if err := l.validate.Struct(req); err != nil {
		return request{}, translate(err)
	}
	return req, nil
}

// coerceRating accepts integers and integral numeric strings. A missing
// rating is 0. Fractions, booleans and non-numeric text are rejected, not
// truncated.
func coerceRating(v any) (int, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case string:
		if strings.TrimSpace(x) == "" {
			return 0, nil
		}
	case json.Number:
		v = x.String()
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
	default:
		return 0, errs.NewValidationError("rating", v, "must be an integer")
	}

	n, err := ingest.ParseInt(v)
	if err != nil {
		return 0, errs.NewValidationError("rating", v, "must be an integer")
	}
	return n, nil
}

// translate turns the first validator failure into a ValidationError.
func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errs.As(err, &verrs) || len(verrs) == 0 {
		return errs.NewValidationError("", nil, err.Error())
	}

	fe := verrs[0]
	field := fieldNames[fe.Field()]
	if field == "" {
		field = fe.Field()
	}

	var msg string
	switch fe.Tag() {
	case "required", "notblank":
		msg = "is required"
	case "oneof":
		msg = fmt.Sprintf("must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "max":
		msg = fmt.Sprintf("must be between 0 and %d", MaxRating)
	default:
		msg = fmt.Sprintf("failed %s check", fe.Tag())
	}
	return errs.NewValidationError(field, fe.Value(), msg)
}

// fieldNames maps struct fields to their wire names.
var fieldNames = map[string]string{
	"Academician": "academician",
	"ProjectID":   "projId",
	"Decision":    "decision",
	"Rating":      "rating",
}
