// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

// Package metrics defines the Prometheus collectors exported on /metrics.
//
// Collectors are registered with the default registry through promauto at
// package init. Callers use the Record* helpers rather than touching the
// vectors directly so label values stay consistent.
//
// # Families
//
//   - api_*: HTTP request count, latency and concurrency
//   - recommend_*: query outcomes, title match kinds, snapshot builds and size
//   - catalog_reloads_total: reload attempts by trigger and result
//   - circuit_breaker_*: object store breaker state and traffic
package metrics
