// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package recommend

import (
	"math"
	"sort"

	"github.com/tomtom215/dramarec/internal/catalog"
)

// FeatureVector is a sparse, fixed-dimension feature vector. Indices are
// strictly increasing and every stored value is non-zero.
type FeatureVector struct {
	Dim     int
	Indices []int
	Values  []float64
}

// Norm returns the Euclidean magnitude.
func (v *FeatureVector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// IsZero reports whether every component is zero.
func (v *FeatureVector) IsZero() bool {
	return len(v.Values) == 0
}

// Dot returns the inner product with o. Both vectors must share Dim.
func (v *FeatureVector) Dot(o *FeatureVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			sum += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Dense expands the vector to a full slice of length Dim.
func (v *FeatureVector) Dense() []float64 {
	out := make([]float64, v.Dim)
	for k, idx := range v.Indices {
		out[idx] = v.Values[k]
	}
	return out
}

// Vocabulary is the frozen dimension layout of one snapshot:
// text terms first, then content rating categories, then the rating slot.
type Vocabulary struct {
	terms      map[string]int
	termList   []string
	categories map[string]int
	catList    []string
	idf        []float64
	ratingMin  float64
	ratingMax  float64
	hasRatings bool
}

// Terms returns the number of text dimensions.
func (v *Vocabulary) Terms() int {
	return len(v.termList)
}

// Categories returns the observed content ratings in dimension order.
func (v *Vocabulary) Categories() []string {
	return append([]string(nil), v.catList...)
}

// Dim returns the total vector dimension.
func (v *Vocabulary) Dim() int {
	return len(v.termList) + len(v.catList) + 1
}

// TermIndex returns the dimension of a text term.
func (v *Vocabulary) TermIndex(term string) (int, bool) {
	i, ok := v.terms[term]
	return i, ok
}

// IDF returns the inverse document frequency of a text term, or 0 if unknown.
func (v *Vocabulary) IDF(term string) float64 {
	i, ok := v.terms[term]
	if !ok {
		return 0
	}
	return v.idf[i]
}

// ratingIndex is the last dimension.
func (v *Vocabulary) ratingIndex() int {
	return len(v.termList) + len(v.catList)
}

// Encoder turns catalog records into feature vectors.
type Encoder struct {
	cfg EncoderConfig
}

// NewEncoder creates an Encoder.
func NewEncoder(cfg EncoderConfig) *Encoder {
	if cfg.MinTokenLength < 1 {
		cfg.MinTokenLength = 1
	}
	return &Encoder{cfg: cfg}
}

// document returns the text tokens of one record.
func (e *Encoder) document(rec *catalog.DramaRecord) []string {
	tokens := tokenize(rec.Synopsis, e.cfg.MinTokenLength)
	for _, g := range rec.Genres {
		tokens = append(tokens, tokenize(g, e.cfg.MinTokenLength)...)
		if e.cfg.PhraseTokens {
			if p := phraseToken("genre", g); p != "" {
				tokens = append(tokens, p)
			}
		}
	}
	tokens = append(tokens, tokenize(rec.Network, e.cfg.MinTokenLength)...)
	if e.cfg.PhraseTokens {
		if p := phraseToken("network", rec.Network); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Encode builds the vocabulary over the whole catalog and returns one vector
// per record, indexed by record ID.
func (e *Encoder) Encode(cat *catalog.Catalog) (*Vocabulary, []FeatureVector) {
	n := cat.Len()
	termCounts := make([]map[string]int, n)
	docFreq := make(map[string]int)
	categorySet := make(map[string]struct{})
	vocab := &Vocabulary{}

	cat.Each(func(rec *catalog.DramaRecord) {
		counts := make(map[string]int)
		for _, tok := range e.document(rec) {
			counts[tok]++
		}
		for tok := range counts {
			docFreq[tok]++
		}
		termCounts[rec.ID] = counts

		if cr := rec.ContentRatingValue(); cr != "" {
			categorySet[cr] = struct{}{}
		}
		if rec.Rating != nil && !math.IsNaN(*rec.Rating) {
			r := *rec.Rating
			if !vocab.hasRatings || r < vocab.ratingMin {
				vocab.ratingMin = r
			}
			if !vocab.hasRatings || r > vocab.ratingMax {
				vocab.ratingMax = r
			}
			vocab.hasRatings = true
		}
	})

	// Sorted layouts make dimension assignment independent of map order.
	vocab.termList = sortedKeys(docFreq)
	vocab.terms = indexOf(vocab.termList)
	vocab.catList = sortedKeys(categorySet)
	vocab.categories = indexOf(vocab.catList)

	vocab.idf = make([]float64, len(vocab.termList))
	for i, term := range vocab.termList {
		vocab.idf[i] = math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
	}

	vectors := make([]FeatureVector, n)
	cat.Each(func(rec *catalog.DramaRecord) {
		vectors[rec.ID] = e.vector(vocab, rec, termCounts[rec.ID])
	})
	return vocab, vectors
}

func (e *Encoder) vector(vocab *Vocabulary, rec *catalog.DramaRecord, counts map[string]int) FeatureVector {
	vec := FeatureVector{Dim: vocab.Dim()}

	if e.cfg.TextWeight > 0 && len(counts) > 0 {
		idx := make([]int, 0, len(counts))
		for term := range counts {
			idx = append(idx, vocab.terms[term])
		}
		sort.Ints(idx)

		vals := make([]float64, len(idx))
		var sumSq float64
		for k, i := range idx {
			w := float64(counts[vocab.termList[i]]) * vocab.idf[i]
			vals[k] = w
			sumSq += w * w
		}
		scale := e.cfg.TextWeight / math.Sqrt(sumSq)
		for k := range vals {
			vals[k] *= scale
		}
		vec.Indices = idx
		vec.Values = vals
	}

	if e.cfg.CategoryWeight > 0 {
		if cr := rec.ContentRatingValue(); cr != "" {
			vec.Indices = append(vec.Indices, len(vocab.termList)+vocab.categories[cr])
			vec.Values = append(vec.Values, e.cfg.CategoryWeight)
		}
	}

	if e.cfg.RatingWeight > 0 {
		if r := vocab.normalizeRating(rec.Rating); r > 0 {
			vec.Indices = append(vec.Indices, vocab.ratingIndex())
			vec.Values = append(vec.Values, r*e.cfg.RatingWeight)
		}
	}

	return vec
}

// normalizeRating maps a rating into [0,1] over the catalog range. When every
// rating is equal the present ratings map to 1. Absent ratings map to 0.
func (v *Vocabulary) normalizeRating(r *float64) float64 {
	if r == nil || !v.hasRatings || math.IsNaN(*r) {
		return 0
	}
	span := v.ratingMax - v.ratingMin
	if span == 0 {
		return 1
	}
	x := (*r - v.ratingMin) / span
	return math.Min(math.Max(x, 0), 1)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func indexOf(list []string) map[string]int {
	m := make(map[string]int, len(list))
	for i, s := range list {
		m[s] = i
	}
	return m
}
