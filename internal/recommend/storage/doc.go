// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

// Package storage persists similarity index artifacts in BadgerDB so a
// restart with an unchanged catalog skips the pairwise similarity pass.
//
// # Keys
//
// An artifact is stored under a key derived from the catalog fingerprint and
// the encoder settings. A changed catalog or changed feature weights produce
// a different key, so a stale matrix is never reused.
//
//	index/<key>/meta  JSON Metadata
//	index/<key>/data  gzip(gob(Artifact))
//
// # Integrity
//
// The SHA-256 checksum of the uncompressed payload is recorded in the
// metadata and verified on every Load. A mismatch is reported as an error
// and the caller rebuilds from scratch.
//
// # Retention
//
// Prune keeps the most recently saved artifacts and deletes the rest.
package storage
