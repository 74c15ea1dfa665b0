// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package recommend

import (
	"time"

	"github.com/tomtom215/dramarec/internal/catalog"
)

// Snapshot is one immutable, fully built generation of the engine state.
// Nothing in a published snapshot is modified afterwards.
type Snapshot struct {
	Catalog    *catalog.Catalog
	Vocabulary *Vocabulary
	Vectors    []FeatureVector
	Index      *SimilarityIndex
	Resolver   *Resolver

	// Version increases by one with every published snapshot.
	Version int64

	// Source names where the catalog came from.
	Source string

	BuiltAt       time.Time
	BuildDuration time.Duration

	// Restored is true when the similarity matrix came from the index store.
	Restored bool
}

// Len returns the number of catalog items.
func (s *Snapshot) Len() int {
	return s.Catalog.Len()
}

// checkInvariants verifies that every derived structure covers the catalog.
func (s *Snapshot) checkInvariants() error {
	n := s.Catalog.Len()
	if len(s.Vectors) != n {
		return invariantf("%d feature vectors for %d catalog items", len(s.Vectors), n)
	}
	if s.Index.Len() != n {
		return invariantf("similarity index covers %d items, catalog has %d", s.Index.Len(), n)
	}
	dim := s.Vocabulary.Dim()
	for i := range s.Vectors {
		if s.Vectors[i].Dim != dim {
			return invariantf("vector %d has dimension %d, vocabulary has %d", i, s.Vectors[i].Dim, dim)
		}
	}
	return nil
}
