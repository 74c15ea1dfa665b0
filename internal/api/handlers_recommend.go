// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/dramarec/internal/logging"
	"github.com/tomtom215/dramarec/internal/models"
	"github.com/tomtom215/dramarec/internal/recommend"
)

// RecommendPost handles POST /recommend.
//
// Body: {"title": "Crash Landing on You", "n_recommendations": 5}. A missing
// n_recommendations defaults to 5; an explicit value below 1 is rejected.
func (h *Handler) RecommendPost(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendRequest
	if apiErr := decodeJSONBody(w, r, &req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}
	h.serveRecommendation(w, r, &req, start)
}

// RecommendGet handles GET /recommend?title=...&n=5.
func (h *Handler) RecommendGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	n, apiErr := intQueryParam(r, "n", h.engine.DefaultCount())
	if apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}
	req := models.RecommendRequest{
		Title:            r.URL.Query().Get("title"),
		NRecommendations: &n,
	}
	h.serveRecommendation(w, r, &req, start)
}

func (h *Handler) serveRecommendation(w http.ResponseWriter, r *http.Request, req *models.RecommendRequest, start time.Time) {
	if apiErr := validateRequest(req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	result, err := h.engine.Recommend(r.Context(), req.Title, req.Count(h.engine.DefaultCount()))
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("query", sanitizeLogValue(req.Title)).
		Str("match", result.Match.Title).
		Int("count", len(result.Items)).
		Msg("Served recommendations")

	respondSuccess(w, http.StatusOK, NewRecommendResponse(req.Title, result), start, result.Version)
}

// NewRecommendResponse converts an engine result to its API payload.
func NewRecommendResponse(query string, result *recommend.Result) models.RecommendResponse {
	items := make([]models.RecommendationItem, len(result.Items))
	for i := range result.Items {
		rec := &result.Items[i].Record
		genres := rec.Genres
		if genres == nil {
			genres = []string{}
		}
		items[i] = models.RecommendationItem{
			ID:              rec.ID,
			Title:           rec.Title,
			Genres:          genres,
			OriginalNetwork: rec.Network,
			Rating:          rec.Rating,
			ContentRating:   rec.ContentRating,
			SimilarityScore: result.Items[i].Score,
		}
	}
	return models.RecommendResponse{
		Query:           query,
		Match:           toTitleMatch(result.Match),
		Requested:       result.Requested,
		Count:           len(items),
		Recommendations: items,
	}
}

func toTitleMatch(m recommend.Match) models.TitleMatch {
	return models.TitleMatch{ID: m.ID, Title: m.Title, Score: m.Score, Exact: m.Exact}
}
