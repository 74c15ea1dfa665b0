// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

/*
Package models defines the HTTP request and response structures.

Every JSON endpoint wraps its payload in APIResponse with a status of
"success" or "error", a Metadata block and, on failure, an APIError.

Request models carry validate tags consumed by internal/validation:

	var req models.RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil { ... }
	if verr := validation.ValidateStruct(&req); verr != nil { ... }
	n := req.Count(defaultN) // defaultN when n_recommendations was omitted

The domain types themselves (catalog.DramaRecord, recommend.Result) live with
their packages; the API layer maps them onto these transport shapes.
*/
package models
