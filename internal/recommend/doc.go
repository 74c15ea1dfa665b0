// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

// Package recommend implements content-based drama recommendations.
//
// # Architecture
//
// A build turns a catalog into an immutable Snapshot:
//
//   - Encoder: TF-IDF over synopsis, genres and network, a one-hot content
//     rating block, and a min-max normalized rating dimension
//   - SimilarityIndex: the eager pairwise cosine matrix, computed row by row
//     with a bounded errgroup
//   - Resolver: exact case-insensitive title lookup with a fuzzy fallback
//     gated by a configurable threshold
//
// Queries read the published snapshot through an atomic pointer and never
// lock. A rebuild happens off to the side and is published with one swap,
// so a query sees either the old snapshot or the new one.
//
// # Ranking
//
// Recommend excludes the queried item, orders by descending similarity and
// breaks ties by ascending catalog ID. The count is clamped to the catalog
// size minus one.
//
// # Errors
//
// ValidationError and NotFoundError are expected outcomes that callers map
// to client responses. ErrNotReady is transient. ErrInvariant aborts a build
// and leaves the previous snapshot published.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetSource(src)
//	if _, err := engine.Reload(ctx); err != nil {
//	    return err
//	}
//	res, err := engine.Recommend(ctx, "Crash Landing on You", 5)
//
// # Persistence
//
// With an IndexStore attached, each built matrix is saved under the catalog
// fingerprint and encoder settings, and a later build of the same catalog
// restores it instead of recomputing.
package recommend
