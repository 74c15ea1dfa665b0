// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package recommend

import (
	"sort"

	"github.com/tomtom215/dramarec/internal/catalog"
)

// Match is a resolved title.
type Match struct {
	ID    int    `json:"id"`
	Title string `json:"title"`

	// Score is 100 for exact matches, otherwise the fuzzy score.
	Score int  `json:"score"`
	Exact bool `json:"exact"`
}

// Resolver maps free-text titles to catalog IDs.
//
// Exact matches compare titles after case folding and whitespace collapsing.
// Otherwise the best fuzzy candidate is accepted when its score reaches the
// threshold. Equal titles or equal scores resolve to the lowest ID.
type Resolver struct {
	threshold  float64
	exact      map[string]int
	titles     []string
	normalized []string
	processed  []string
}

// NewResolver indexes the catalog titles.
func NewResolver(cat *catalog.Catalog, threshold float64) *Resolver {
	r := &Resolver{
		threshold:  threshold,
		exact:      make(map[string]int, cat.Len()),
		titles:     cat.Titles(),
		normalized: make([]string, cat.Len()),
		processed:  make([]string, cat.Len()),
	}
	for id, title := range r.titles {
		key := normalizeTitle(title)
		r.normalized[id] = key
		if _, seen := r.exact[key]; !seen {
			r.exact[key] = id
		}
		r.processed[id] = processTitle(title)
	}
	return r
}

// Threshold returns the minimum accepted fuzzy score.
func (r *Resolver) Threshold() float64 {
	return r.threshold
}

// Resolve returns the catalog entry for query. Blank input is a
// *ValidationError; no acceptable candidate is a *NotFoundError.
func (r *Resolver) Resolve(query string) (Match, error) {
	key := normalizeTitle(query)
	if key == "" {
		return Match{}, &ValidationError{Field: "title", Reason: "must not be empty"}
	}

	if id, ok := r.exact[key]; ok {
		return Match{ID: id, Title: r.titles[id], Score: 100, Exact: true}, nil
	}

	processed := processTitle(query)
	bestID, bestScore := -1, -1
	if processed != "" {
		for id, candidate := range r.processed {
			score := weightedRatio(processed, candidate)
			if score > bestScore {
				bestID, bestScore = id, score
			}
		}
	}

	if bestID < 0 {
		return Match{}, &NotFoundError{Query: query, ClosestID: -1}
	}
	if float64(bestScore) < r.threshold {
		return Match{}, &NotFoundError{
			Query:     query,
			Closest:   r.titles[bestID],
			ClosestID: bestID,
			Score:     bestScore,
		}
	}
	return Match{ID: bestID, Title: r.titles[bestID], Score: bestScore}, nil
}

// Suggest returns up to limit candidates ordered by descending score, then
// ascending ID. Exact matches score 100. Candidates scoring zero are omitted.
func (r *Resolver) Suggest(query string, limit int) []Match {
	processed := processTitle(query)
	if processed == "" || limit < 1 {
		return nil
	}
	key := normalizeTitle(query)

	matches := make([]Match, 0, len(r.titles))
	for id, candidate := range r.processed {
		m := Match{ID: id, Title: r.titles[id]}
		if r.normalized[id] == key {
			m.Score, m.Exact = 100, true
		} else {
			m.Score = weightedRatio(processed, candidate)
		}
		if m.Score > 0 {
			matches = append(matches, m)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
