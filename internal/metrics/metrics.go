// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"outcome"}, // "ok", "invalid", "not_found", "not_ready", "error"
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_query_duration_seconds",
			Help:    "Time spent resolving and ranking one recommendation query",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	TitleMatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_title_matches_total",
			Help: "Title resolutions by match kind",
		},
		[]string{"kind"}, // "exact", "fuzzy", "none"
	)

	// Snapshot Metrics
	SnapshotBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_snapshot_build_duration_seconds",
			Help:    "Time to encode the catalog and build the similarity index",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	SnapshotBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_snapshot_builds_total",
			Help: "Total snapshot builds by result",
		},
		[]string{"result"}, // "success", "failure", "restored"
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_catalog_items",
			Help: "Number of items in the published catalog snapshot",
		},
	)

	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_snapshot_version",
			Help: "Version counter of the published snapshot",
		},
	)

	VocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_vocabulary_size",
			Help: "Number of text terms in the published snapshot vocabulary",
		},
	)

	// Reload Metrics
	CatalogReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Catalog reload attempts by trigger and result",
		},
		[]string{"trigger", "result"}, // trigger: "startup", "schedule", "file", "api"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records the outcome and latency of one query.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(duration.Seconds())
}

// RecordTitleMatch counts a title resolution by kind.
func RecordTitleMatch(kind string) {
	TitleMatchesTotal.WithLabelValues(kind).Inc()
}

// RecordSnapshotBuild records a snapshot build. Items, version and vocabulary
// gauges only move on success.
func RecordSnapshotBuild(result string, duration time.Duration, items, vocabulary int, version int64) {
	SnapshotBuildsTotal.WithLabelValues(result).Inc()
	if result == "failure" {
		return
	}
	SnapshotBuildDuration.Observe(duration.Seconds())
	CatalogItems.Set(float64(items))
	VocabularySize.Set(float64(vocabulary))
	SnapshotVersion.Set(float64(version))
}

// RecordCatalogReload counts a reload attempt.
func RecordCatalogReload(trigger string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	CatalogReloadsTotal.WithLabelValues(trigger, result).Inc()
}
