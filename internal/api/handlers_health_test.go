// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/dramarec/internal/models"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		built      bool
		wantLoaded bool
		wantStatus string
		wantItems  int
	}{
		{"before build", false, false, "starting", 0},
		{"after build", true, true, "healthy", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, newTestEngine(t, tt.built), nil)

			rec := doRequest(t, srv, http.MethodGet, "/health", nil, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}

			var health models.HealthStatus
			decodeEnvelope(t, rec, &health)
			if health.ModelLoaded != tt.wantLoaded {
				t.Errorf("model_loaded = %v, want %v", health.ModelLoaded, tt.wantLoaded)
			}
			if health.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", health.Status, tt.wantStatus)
			}
			if health.Items != tt.wantItems {
				t.Errorf("items = %d, want %d", health.Items, tt.wantItems)
			}
			if tt.built && (health.VocabularySize == 0 || health.Dimension <= health.VocabularySize || health.BuiltAt == nil) {
				t.Errorf("built snapshot fields missing: %+v", health)
			}
			if health.Version != "test" {
				t.Errorf("version = %q", health.Version)
			}
		})
	}
}

func TestHealthReady(t *testing.T) {
	notReady := newTestServer(t, newTestEngine(t, false), nil)
	rec := doRequest(t, notReady, http.MethodGet, "/health/ready", nil, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("not built: status = %d, want 503", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}

	ready := newTestServer(t, newTestEngine(t, true), nil)
	rec = doRequest(t, ready, http.MethodGet, "/health/ready", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("built: status = %d, want 200", rec.Code)
	}
	var status models.ReadinessStatus
	decodeEnvelope(t, rec, &status)
	if !status.Ready || status.Checks["snapshot"] != "ok" {
		t.Errorf("readiness = %+v", status)
	}
}

func TestHealthLive(t *testing.T) {
	srv := newTestServer(t, newTestEngine(t, false), nil)
	rec := doRequest(t, srv, http.MethodGet, "/health/live", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
