// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics holds the Prometheus collectors for ingestion, decision
// writes, persistence and view composition.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Skip reasons for RecordsSkipped.
const (
	ReasonHeader    = "header"
	ReasonMalformed = "malformed"
)

// Upsert outcomes for DecisionUpserts.
const (
	OutcomeInserted = "inserted"
	OutcomeUpdated  = "updated"
	OutcomeRejected = "rejected"
)

var (
	// RecordsLoaded counts source records accepted into the store.
	RecordsLoaded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "project_match_records_loaded_total",
		Help: "Source records loaded into the record store, by collection",
	}, []string{"collection"})

	// RecordsSkipped counts source records dropped during ingestion.
	RecordsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "project_match_records_skipped_total",
		Help: "Source records dropped during ingestion, by collection and reason",
	}, []string{"collection", "reason"})

	// DecisionUpserts counts decision ledger writes by outcome.
	DecisionUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "project_match_decision_upserts_total",
		Help: "Decision ledger writes by outcome (inserted, updated, rejected)",
	}, []string{"outcome"})

	// PersistFailures counts failed write-throughs per collection.
	PersistFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "project_match_persist_failures_total",
		Help: "Failed collection saves; the in-memory state is kept",
	}, []string{"collection"})

	// ComposeDuration tracks how long each composed view takes to build.
	ComposeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "project_match_compose_duration_seconds",
		Help:    "Time to compose a view, by view name",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 0.1ms to ~400ms
	}, []string{"view"})
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
