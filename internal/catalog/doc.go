// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

// Package catalog holds the immutable set of drama records that the
// recommendation engine is built from, and the sources that load it.
//
// # Records
//
// A DramaRecord carries the metadata used for content similarity: title,
// genres, synopsis, original network, rating and content rating. Rating and
// content rating are optional and use pointer fields so that "absent" is
// distinct from zero or the empty string.
//
// # Identity
//
// Record IDs are assigned by position when a Catalog is created. Whatever
// identifiers the underlying data carried are discarded, so an ID is stable
// only for the lifetime of one Catalog value. Titles are not required to be
// unique.
//
// # Sources
//
// A Source loads the raw record list:
//
//   - FileSource: a JSON array on local disk
//   - DuckDBSource: CSV, Parquet or JSON files read through DuckDB
//   - ObjectSource: a JSON object in S3-compatible storage (MinIO, AWS S3)
//
// NewSource selects one from configuration.
//
// # Usage
//
//	src, err := catalog.NewSource(cfg)
//	records, err := src.Load(ctx)
//	cat, err := catalog.New(records)
//
// # Thread Safety
//
// A Catalog is never mutated after New returns and is safe for concurrent
// reads. Sources are safe for concurrent Load calls.
package catalog
