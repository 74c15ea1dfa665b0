// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the wrapper used by every JSON endpoint except /metrics.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"query": "goblin", "recommendations": [...]},
//	  "metadata": {
//	    "timestamp": "2026-10-19T12:00:00Z",
//	    "query_time_ms": 1
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "NOT_FOUND",
//	    "message": "no close match found for \"gobln xyz\"",
//	    "details": {"closest_match": "Goblin", "confidence": 62}
//	  },
//	  "metadata": {"timestamp": "2026-10-19T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes when and how quickly a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`

	// Version is the snapshot version that served the request, 0 if none.
	Version int64 `json:"snapshot_version,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Error codes:
//   - VALIDATION_ERROR: malformed body or parameters (400)
//   - NOT_FOUND: title resolved to no catalog entry (404)
//   - UNAUTHORIZED: missing or wrong admin token (401)
//   - CONFLICT: a catalog reload is already running (409)
//   - RATE_LIMIT_EXCEEDED: too many requests (429)
//   - NOT_READY: no snapshot published yet (503)
//   - INTERNAL_ERROR: anything else (500)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
