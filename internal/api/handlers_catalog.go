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
)

// titlesRequest holds GET /api/v1/catalog/titles parameters. Limit 0 lets
// the engine apply its configured maximum.
type titlesRequest struct {
	Query string `query:"q" validate:"notblank,max=500"`
	Limit int    `query:"limit" validate:"gte=0"`
}

// CatalogTitles handles GET /api/v1/catalog/titles?q=...&limit=10 for title
// autocomplete.
func (h *Handler) CatalogTitles(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, apiErr := intQueryParam(r, "limit", 0)
	if apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}
	req := titlesRequest{Query: r.URL.Query().Get("q"), Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	matches, err := h.engine.Suggest(r.Context(), req.Query, req.Limit)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	suggestions := make([]models.TitleMatch, len(matches))
	for i, m := range matches {
		suggestions[i] = toTitleMatch(m)
	}
	respondSuccess(w, http.StatusOK, models.TitleSuggestionsResponse{
		Query:       req.Query,
		Suggestions: suggestions,
	}, start, h.engine.Status().Version)
}

// CatalogStatus handles GET /api/v1/catalog/status.
func (h *Handler) CatalogStatus(w http.ResponseWriter, r *http.Request) {
	st := h.engine.Status()
	respondSuccess(w, http.StatusOK, st, time.Now(), st.Version)
}

// CatalogReload handles POST /api/v1/catalog/reload. The reload runs in the
// background; 202 means it started.
func (h *Handler) CatalogReload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.reloader == nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "Catalog reloads are not enabled", nil)
		return
	}

	if err := h.reloader.TriggerReload("api"); err != nil {
		respondEngineError(w, r, err)
		return
	}

	st := h.engine.Status()
	logging.Ctx(r.Context()).Info().
		Str("remote_addr", r.RemoteAddr).
		Int64("current_version", st.Version).
		Msg("Catalog reload requested")

	respondSuccess(w, http.StatusAccepted, models.ReloadResponse{
		Accepted: true,
		Items:    st.Items,
		Version:  st.Version,
		Message:  "reload started",
	}, start, st.Version)
}
