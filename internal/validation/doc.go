// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Field errors are reported under
// the request's JSON (or query) names so messages match what the client sent.
//
// Custom tags:
//   - notblank: string must contain a non-whitespace character
//
// Example usage:
//
//	type RecommendRequest struct {
//	    Title string `json:"title" validate:"notblank,max=300"`
//	    N     *int   `json:"n_recommendations" validate:"omitempty,min=1"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
package validation
