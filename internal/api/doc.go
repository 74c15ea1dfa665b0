// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

/*
Package api provides the HTTP layer in front of the recommendation engine.

Routes:

	POST /recommend                   {"title": "...", "n_recommendations": 5}
	GET  /recommend?title=...&n=5     same semantics for GET clients
	GET  /health                      always 200, reports model_loaded
	GET  /health/live                 process liveness
	GET  /health/ready                200 once a snapshot is published, else 503
	GET  /api/v1/catalog/titles       ?q=...&limit=10 fuzzy title suggestions
	GET  /api/v1/catalog/status       full engine status
	POST /api/v1/catalog/reload       start a reload (bearer admin token)
	GET  /metrics                     Prometheus exposition

/api/v1/recommend is an alias of /recommend.

Every JSON response uses the models.APIResponse envelope. Engine errors map
to statuses as follows:

  - *recommend.ValidationError: 400 VALIDATION_ERROR
  - *recommend.NotFoundError: 404 NOT_FOUND, details carry closest_match and
    confidence when a candidate existed
  - recommend.ErrNotReady: 503 NOT_READY with Retry-After
  - recommend.ErrReloadInProgress: 409 CONFLICT
  - recommend.ErrReloadThrottled: 429 RATE_LIMIT_EXCEEDED
  - anything else: 500 INTERNAL_ERROR, details withheld from the client

Middleware (outermost first): request ID, real IP, panic recovery, CORS,
Prometheus metrics, then per-group rate limiting and gzip.
*/
package api
