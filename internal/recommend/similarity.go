// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package recommend

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
)

// SimilarityIndex is an eager, symmetric n x n cosine similarity matrix.
type SimilarityIndex struct {
	n      int
	matrix []float64
}

// cosineSimilarity returns dot(a,b)/(|a||b|), or 0 when either vector has
// zero magnitude. The result is clamped to [0,1].
func cosineSimilarity(a, b *FeatureVector, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	return clamp01(a.Dot(b) / (normA * normB))
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// BuildSimilarityIndex computes all pairwise scores. Row i computes the pairs
// (i, j) for j > i and writes both (i, j) and (j, i), so goroutines never
// write the same cell and every pair is produced by one sequential dot
// product.
func BuildSimilarityIndex(ctx context.Context, vectors []FeatureVector, workers int) (*SimilarityIndex, error) {
	n := len(vectors)
	idx := &SimilarityIndex{n: n, matrix: make([]float64, n*n)}
	if n == 0 {
		return idx, nil
	}

	dim := vectors[0].Dim
	norms := make([]float64, n)
	for i := range vectors {
		if vectors[i].Dim != dim {
			return nil, invariantf("vector %d has dimension %d, want %d", i, vectors[i].Dim, dim)
		}
		norms[i] = vectors[i].Norm()
	}

	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := idx.matrix[i*n : (i+1)*n]
			if norms[i] > 0 {
				row[i] = 1
			}
			for j := i + 1; j < n; j++ {
				s := cosineSimilarity(&vectors[i], &vectors[j], norms[i], norms[j])
				row[j] = s
				idx.matrix[j*n+i] = s
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return idx, nil
}

// restoreSimilarityIndex wraps a persisted matrix after checking its shape.
func restoreSimilarityIndex(n int, matrix []float64) (*SimilarityIndex, error) {
	if len(matrix) != n*n {
		return nil, invariantf("persisted matrix has %d cells, want %d", len(matrix), n*n)
	}
	return &SimilarityIndex{n: n, matrix: matrix}, nil
}

// Len returns the number of items.
func (s *SimilarityIndex) Len() int {
	return s.n
}

// Score returns the similarity of i and j, or 0 when either is out of range.
func (s *SimilarityIndex) Score(i, j int) float64 {
	if i < 0 || j < 0 || i >= s.n || j >= s.n {
		return 0
	}
	return s.matrix[i*s.n+j]
}

// Row returns a copy of the scores of id against every item, indexed by ID.
func (s *SimilarityIndex) Row(id int) []float64 {
	if id < 0 || id >= s.n {
		return nil
	}
	return append([]float64(nil), s.row(id)...)
}

// row returns the backing slice; callers must not modify it.
func (s *SimilarityIndex) row(id int) []float64 {
	return s.matrix[id*s.n : (id+1)*s.n]
}

// Matrix returns the backing row-major matrix for persistence. Callers must
// not modify it.
func (s *SimilarityIndex) Matrix() []float64 {
	return s.matrix
}
