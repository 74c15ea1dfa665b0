// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package models

import "time"

// HealthStatus is returned by GET /health. The endpoint always answers 200;
// ModelLoaded tells whether recommendations can be served.
type HealthStatus struct {
	Status         string     `json:"status"`
	Version        string     `json:"version"`
	ModelLoaded    bool       `json:"model_loaded"`
	Items          int        `json:"items"`
	VocabularySize int        `json:"vocabulary_size"`
	Dimension      int        `json:"dimension"`
	SnapshotVer    int64      `json:"snapshot_version"`
	Source         string     `json:"source,omitempty"`
	BuiltAt        *time.Time `json:"built_at,omitempty"`
	LastError      string     `json:"last_error,omitempty"`
	Uptime         float64    `json:"uptime_seconds"`
}

// ReadinessStatus is returned by GET /health/ready.
type ReadinessStatus struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// ReloadResponse acknowledges a manual catalog reload.
type ReloadResponse struct {
	Accepted bool   `json:"accepted"`
	Items    int    `json:"items"`
	Version  int64  `json:"snapshot_version"`
	Message  string `json:"message,omitempty"`
}
