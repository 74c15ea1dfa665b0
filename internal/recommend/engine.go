// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/dramarec/internal/catalog"
	"github.com/tomtom215/dramarec/internal/logging"
	"github.com/tomtom215/dramarec/internal/metrics"
	"github.com/tomtom215/dramarec/internal/recommend/storage"
)

// artifactsKept is how many persisted index artifacts survive a prune.
const artifactsKept = 3

// IndexStore persists similarity matrices between runs.
type IndexStore interface {
	Save(ctx context.Context, meta storage.Metadata, art *storage.Artifact) error
	Load(ctx context.Context, key string) (*storage.Artifact, *storage.Metadata, error)
	Prune(ctx context.Context, keep int) (int, error)
}

// Recommendation is one ranked item.
type Recommendation struct {
	Record catalog.DramaRecord `json:"record"`
	Score  float64             `json:"similarity_score"`
}

// Result is the answer to one recommendation query.
type Result struct {
	// Query is the catalog record the title resolved to.
	Query catalog.DramaRecord `json:"query"`
	Match Match               `json:"match"`
	Items []Recommendation    `json:"items"`

	// Requested is the count asked for before clamping.
	Requested int           `json:"requested"`
	Version   int64         `json:"version"`
	Latency   time.Duration `json:"latency"`
}

// Status is a read of the engine's readiness.
type Status struct {
	Ready           bool       `json:"ready"`
	Items           int        `json:"items"`
	VocabularySize  int        `json:"vocabulary_size"`
	Dimension       int        `json:"dimension"`
	Version         int64      `json:"version"`
	Source          string     `json:"source,omitempty"`
	Fingerprint     string     `json:"fingerprint,omitempty"`
	BuiltAt         *time.Time `json:"built_at,omitempty"`
	BuildDurationMS int64      `json:"build_duration_ms"`
	Restored        bool       `json:"restored"`
	LastError       string     `json:"last_error,omitempty"`
	LastErrorAt     *time.Time `json:"last_error_at,omitempty"`
	Requests        int64      `json:"requests"`
	Errors          int64      `json:"errors"`
}

// Engine builds snapshots and answers recommendation queries against the
// current one. Queries never take a lock; a rebuild publishes its snapshot
// with a single atomic pointer swap once it is complete.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	encoder *Encoder

	source catalog.Source
	store  IndexStore

	current atomic.Pointer[Snapshot]
	version atomic.Int64

	// buildMu serializes builds. Queries do not touch it.
	buildMu sync.Mutex

	statusMu    sync.RWMutex
	lastError   string
	lastErrorAt time.Time

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates a new recommendation engine. It is not ready until
// Build or Reload succeeds.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	cfg = cfg.Clone()
	return &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		encoder: NewEncoder(cfg.Encoder),
	}, nil
}

// SetSource sets the catalog source used by Reload.
func (e *Engine) SetSource(src catalog.Source) {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()
	e.source = src
}

// SetIndexStore enables persisting and restoring similarity matrices.
func (e *Engine) SetIndexStore(store IndexStore) {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()
	e.store = store
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// DefaultCount returns the configured count for requests that omit one.
func (e *Engine) DefaultCount() int {
	return e.config.Limits.DefaultN
}

// Snapshot returns the published snapshot, or nil before the first build.
func (e *Engine) Snapshot() *Snapshot {
	return e.current.Load()
}

// Ready reports whether a snapshot is published.
func (e *Engine) Ready() bool {
	return e.current.Load() != nil
}

// Build builds a snapshot from records and publishes it. It waits for any
// build already running. On failure the previous snapshot stays published.
func (e *Engine) Build(ctx context.Context, records []catalog.DramaRecord) (*Snapshot, error) {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()
	return e.build(ctx, records, "records")
}

// Reload loads the catalog from the configured source and rebuilds.
// It returns ErrReloadInProgress instead of waiting when a build is running.
func (e *Engine) Reload(ctx context.Context) (*Snapshot, error) {
	if !e.buildMu.TryLock() {
		return nil, ErrReloadInProgress
	}
	defer e.buildMu.Unlock()

	if e.source == nil {
		return nil, ErrNoSource
	}

	records, err := e.source.Load(ctx)
	if err != nil {
		err = fmt.Errorf("load catalog from %s: %w", e.source.Name(), err)
		e.recordFailure(err)
		metrics.RecordSnapshotBuild("failure", 0, 0, 0, 0)
		return nil, err
	}
	return e.build(ctx, records, e.source.Name())
}

// build must be called with buildMu held.
func (e *Engine) build(ctx context.Context, records []catalog.DramaRecord, source string) (*Snapshot, error) {
	start := time.Now()
	logger := e.logger.With().Str("source", source).Logger()
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		logger = logger.With().Str("correlation_id", id).Logger()
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.Index.BuildTimeout)
	defer cancel()

	snap, err := e.buildSnapshot(ctx, records, source, logger)
	if err != nil {
		e.recordFailure(err)
		metrics.RecordSnapshotBuild("failure", time.Since(start), 0, 0, 0)
		logger.Error().Err(err).Int("records", len(records)).Msg("snapshot build failed; keeping previous snapshot")
		return nil, err
	}

	snap.Version = e.version.Add(1)
	snap.BuiltAt = time.Now().UTC()
	snap.BuildDuration = time.Since(start)
	e.current.Store(snap)
	e.clearFailure()

	result := "success"
	if snap.Restored {
		result = "restored"
	}
	metrics.RecordSnapshotBuild(result, snap.BuildDuration, snap.Len(), snap.Vocabulary.Terms(), snap.Version)

	logger.Info().
		Int64("version", snap.Version).
		Int("items", snap.Len()).
		Int("vocabulary", snap.Vocabulary.Terms()).
		Int("dimension", snap.Vocabulary.Dim()).
		Bool("restored", snap.Restored).
		Dur("duration", snap.BuildDuration).
		Msg("published recommendation snapshot")
	return snap, nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) buildSnapshot(ctx context.Context, records []catalog.DramaRecord, source string, logger zerolog.Logger) (*Snapshot, error) {
	cat, err := catalog.New(records)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	vocab, vectors := e.encoder.Encode(cat)
	if len(vectors) != cat.Len() {
		return nil, invariantf("encoder produced %d vectors for %d records", len(vectors), cat.Len())
	}

	idx := e.restoreIndex(ctx, cat, vocab, logger)
	restored := idx != nil
	if idx == nil {
		indexStart := time.Now()
		idx, err = BuildSimilarityIndex(ctx, vectors, e.config.Index.workers())
		if err != nil {
			return nil, fmt.Errorf("build similarity index: %w", err)
		}
		e.persistIndex(ctx, cat, vocab, idx, time.Since(indexStart), logger)
	}

	snap := &Snapshot{
		Catalog:    cat,
		Vocabulary: vocab,
		Vectors:    vectors,
		Index:      idx,
		Resolver:   NewResolver(cat, e.config.Resolver.MatchThreshold),
		Source:     source,
		Restored:   restored,
	}
	if err := snap.checkInvariants(); err != nil {
		return nil, err
	}
	return snap, nil
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) restoreIndex(ctx context.Context, cat *catalog.Catalog, vocab *Vocabulary, logger zerolog.Logger) *SimilarityIndex {
	if e.store == nil {
		return nil
	}

	key := storage.ArtifactKey(cat.Fingerprint(), e.config.Encoder.Key())
	art, _, err := e.store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.Debug().Str("key", key).Msg("no persisted index for catalog")
		} else {
			logger.Warn().Err(err).Str("key", key).Msg("persisted index unreadable; rebuilding")
		}
		return nil
	}

	if art.Items != cat.Len() || art.Dim != vocab.Dim() {
		logger.Warn().
			Int("items", art.Items).Int("want_items", cat.Len()).
			Int("dim", art.Dim).Int("want_dim", vocab.Dim()).
			Msg("persisted index shape mismatch; rebuilding")
		return nil
	}

	idx, err := restoreSimilarityIndex(art.Items, art.Matrix)
	if err != nil {
		logger.Warn().Err(err).Msg("persisted index rejected; rebuilding")
		return nil
	}
	return idx
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func (e *Engine) persistIndex(ctx context.Context, cat *catalog.Catalog, vocab *Vocabulary, idx *SimilarityIndex, took time.Duration, logger zerolog.Logger) {
	if e.store == nil {
		return
	}

	meta := storage.Metadata{
		Fingerprint:     cat.Fingerprint(),
		EncoderKey:      e.config.Encoder.Key(),
		BuildDurationMS: took.Milliseconds(),
	}
	art := &storage.Artifact{Items: idx.Len(), Dim: vocab.Dim(), Matrix: idx.Matrix()}
	if err := e.store.Save(ctx, meta, art); err != nil {
		logger.Warn().Err(err).Msg("failed to persist similarity index")
		return
	}
	if removed, err := e.store.Prune(ctx, artifactsKept); err != nil {
		logger.Warn().Err(err).Msg("failed to prune persisted indexes")
	} else if removed > 0 {
		logger.Debug().Int("removed", removed).Msg("pruned persisted indexes")
	}
}

// Recommend returns the n catalog items most similar to title.
//
// n must be at least 1. It is clamped to the configured maximum and to the
// number of other items in the catalog. Results are ordered by descending
// similarity with ties broken by ascending ID, and never include the
// queried item.
func (e *Engine) Recommend(ctx context.Context, title string, n int) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	res, err := e.recommend(title, n)
	outcome := outcomeOf(err)
	metrics.RecordRecommendation(outcome, time.Since(start))

	if err != nil {
		if outcome == "error" {
			e.errorCount.Add(1)
		}
		e.logger.Debug().
			Str("request_id", logging.RequestIDFromContext(ctx)).
			Str("title", title).
			Int("n", n).
			Str("outcome", outcome).
			Err(err).
			Msg("recommendation rejected")
		return nil, err
	}

	res.Latency = time.Since(start)
	e.logger.Debug().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("title", title).
		Str("matched", res.Match.Title).
		Int("match_score", res.Match.Score).
		Int("returned", len(res.Items)).
		Dur("latency", res.Latency).
		Msg("recommendation complete")
	return res, nil
}

func (e *Engine) recommend(title string, n int) (*Result, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if n < 1 {
		return nil, &ValidationError{Field: "n_recommendations", Reason: fmt.Sprintf("must be at least 1, got %d", n)}
	}

	snap := e.current.Load()
	if snap == nil {
		return nil, ErrNotReady
	}

	match, err := snap.Resolver.Resolve(title)
	if err != nil {
		metrics.RecordTitleMatch("none")
		return nil, err
	}
	if match.Exact {
		metrics.RecordTitleMatch("exact")
	} else {
		metrics.RecordTitleMatch("fuzzy")
	}

	requested := n
	if limit := e.config.Limits.MaxN; limit > 0 && n > limit {
		n = limit
	}
	if n > snap.Len()-1 {
		n = snap.Len() - 1
	}

	query, _ := snap.Catalog.Get(match.ID)
	res := &Result{
		Query:     query,
		Match:     match,
		Items:     make([]Recommendation, 0, n),
		Requested: requested,
		Version:   snap.Version,
	}
	for _, id := range rankRow(snap.Index.row(match.ID), match.ID, n) {
		rec, _ := snap.Catalog.Get(id)
		res.Items = append(res.Items, Recommendation{Record: rec, Score: snap.Index.Score(match.ID, id)})
	}
	return res, nil
}

// rankRow returns the top n IDs of row excluding self, ordered by descending
// score then ascending ID.
func rankRow(row []float64, self, n int) []int {
	if n <= 0 {
		return nil
	}
	ids := make([]int, 0, len(row)-1)
	for id := range row {
		if id != self {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		if row[a] != row[b] {
			return row[a] > row[b]
		}
		return a < b
	})
	if len(ids) > n {
		ids = ids[:n]
	}
	return ids
}

// Suggest returns title candidates for query, best first. A limit below 1
// or above the configured maximum uses the maximum.
func (e *Engine) Suggest(ctx context.Context, query string, limit int) ([]Match, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "q", Reason: "must not be empty"}
	}
	snap := e.current.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	if limit < 1 || limit > e.config.Resolver.MaxSuggestions {
		limit = e.config.Resolver.MaxSuggestions
	}
	return snap.Resolver.Suggest(query, limit), nil
}

// Status returns a read of the current readiness state.
func (e *Engine) Status() Status {
	st := Status{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
	}

	e.statusMu.RLock()
	st.LastError = e.lastError
	if !e.lastErrorAt.IsZero() {
		t := e.lastErrorAt
		st.LastErrorAt = &t
	}
	e.statusMu.RUnlock()

	snap := e.current.Load()
	if snap == nil {
		return st
	}
	builtAt := snap.BuiltAt
	st.Ready = true
	st.Items = snap.Len()
	st.VocabularySize = snap.Vocabulary.Terms()
	st.Dimension = snap.Vocabulary.Dim()
	st.Version = snap.Version
	st.Source = snap.Source
	st.Fingerprint = snap.Catalog.Fingerprint()
	st.BuiltAt = &builtAt
	st.BuildDurationMS = snap.BuildDuration.Milliseconds()
	st.Restored = snap.Restored
	return st
}

func (e *Engine) recordFailure(err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.lastError = err.Error()
	e.lastErrorAt = time.Now().UTC()
}

func (e *Engine) clearFailure() {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	e.lastError = ""
	e.lastErrorAt = time.Time{}
}

// outcomeOf maps a Recommend error to its metric label.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNotReady):
		return "not_ready"
	default:
		return "error"
	}
}
