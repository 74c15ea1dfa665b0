// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tomtom215/dramarec/internal/logging"
	"github.com/tomtom215/dramarec/internal/recommend"
)

// Error codes used in APIError.Code.
const (
	codeValidation       = "VALIDATION_ERROR"
	codeNotFound         = "NOT_FOUND"
	codeNotReady         = "NOT_READY"
	codeConflict         = "CONFLICT"
	codeUnauthorized     = "UNAUTHORIZED"
	codeRateLimited      = "RATE_LIMIT_EXCEEDED"
	codeRouteNotFound    = "ROUTE_NOT_FOUND"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeUnavailable      = "SERVICE_UNAVAILABLE"
	codeInternal         = "INTERNAL_ERROR"
)

// notReadyRetryAfter is the Retry-After value, in seconds, sent with 503s.
const notReadyRetryAfter = 5

// respondEngineError maps engine errors onto HTTP responses.
func respondEngineError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *recommend.ValidationError
	var notFoundErr *recommend.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, codeValidation, validationErr.Error(), map[string]interface{}{
			"field":  validationErr.Field,
			"reason": validationErr.Reason,
		})

	case errors.As(err, &notFoundErr):
		details := map[string]interface{}{"query": notFoundErr.Query}
		if notFoundErr.Closest != "" {
			details["closest_match"] = notFoundErr.Closest
			details["confidence"] = notFoundErr.Score
		}
		respondError(w, http.StatusNotFound, codeNotFound, notFoundErr.Error(), details)

	case errors.Is(err, recommend.ErrNotReady):
		w.Header().Set("Retry-After", strconv.Itoa(notReadyRetryAfter))
		respondError(w, http.StatusServiceUnavailable, codeNotReady, "Recommendation index is still loading", nil)

	case errors.Is(err, recommend.ErrReloadInProgress):
		respondError(w, http.StatusConflict, codeConflict, "A catalog reload is already in progress", nil)

	case errors.Is(err, recommend.ErrReloadThrottled):
		w.Header().Set("Retry-After", strconv.Itoa(notReadyRetryAfter))
		respondError(w, http.StatusTooManyRequests, codeRateLimited, "Catalog reloads are rate limited", nil)

	case errors.Is(err, recommend.ErrNoSource):
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "No catalog source is configured", nil)

	default:
		logging.Ctx(r.Context()).Error().
			Str("path", r.URL.Path).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("Request failed")
		respondError(w, http.StatusInternalServerError, codeInternal, "Internal server error", nil)
	}
}
