// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package models

// RecommendRequest is the POST /recommend body.
//
// NRecommendations is a pointer so an explicit 0 can be told apart from an
// omitted field; only the latter falls back to the default count.
type RecommendRequest struct {
	Title            string `json:"title" validate:"notblank,max=500"`
	NRecommendations *int   `json:"n_recommendations,omitempty" validate:"omitempty,min=1"`
}

// Count returns the requested number of recommendations, or def when the
// field was omitted.
func (r *RecommendRequest) Count(def int) int {
	if r.NRecommendations == nil {
		return def
	}
	return *r.NRecommendations
}

// RecommendationItem is one ranked drama.
type RecommendationItem struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Genres          []string `json:"genres"`
	OriginalNetwork string   `json:"original_network"`
	Rating          *float64 `json:"rating,omitempty"`
	ContentRating   *string  `json:"content_rating,omitempty"`
	SimilarityScore float64  `json:"similarity_score"`
}

// TitleMatch describes how the query title was resolved.
type TitleMatch struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Score int    `json:"score"`
	Exact bool   `json:"exact"`
}

// RecommendResponse is the data payload of a successful /recommend call.
type RecommendResponse struct {
	Query           string               `json:"query"`
	Match           TitleMatch           `json:"match"`
	Requested       int                  `json:"requested"`
	Count           int                  `json:"count"`
	Recommendations []RecommendationItem `json:"recommendations"`
}

// TitleSuggestionsResponse is the data payload of the title search endpoint.
type TitleSuggestionsResponse struct {
	Query       string       `json:"query"`
	Suggestions []TitleMatch `json:"suggestions"`
}
