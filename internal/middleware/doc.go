// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

/*
Package middleware provides chi-compatible HTTP middleware.

Key Components:

  - RequestID: request and correlation IDs for structured logging
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - Compression: gzip for clients sending Accept-Encoding: gzip
  - AdminToken: static bearer token guard for administrative routes

All middleware has the func(http.Handler) http.Handler shape so it composes
with chi's r.Use and r.With:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.With(middleware.AdminToken(token, unauthorized)).
	    Post("/api/v1/catalog/reload", h.ReloadCatalog)

PrometheusMetrics reads the route pattern after the handler returns, so it
must run inside the chi router (r.Use), not wrap it from outside.
*/
package middleware
