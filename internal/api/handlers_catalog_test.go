// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/dramarec/internal/models"
	"github.com/tomtom215/dramarec/internal/recommend"
)

func TestCatalogTitles(t *testing.T) {
	srv := newTestServer(t, newTestEngine(t, true), nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/catalog/titles?q=goblin&limit=3", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var data models.TitleSuggestionsResponse
	decodeEnvelope(t, rec, &data)

	if len(data.Suggestions) == 0 || len(data.Suggestions) > 3 {
		t.Fatalf("got %d suggestions, want 1..3", len(data.Suggestions))
	}
	first := data.Suggestions[0]
	if first.Title != "Goblin" || !first.Exact || first.Score != 100 {
		t.Errorf("first suggestion = %+v", first)
	}
	for i := 1; i < len(data.Suggestions); i++ {
		if data.Suggestions[i].Score > data.Suggestions[i-1].Score {
			t.Errorf("suggestions not sorted at %d", i)
		}
	}
}

func TestCatalogTitles_Errors(t *testing.T) {
	tests := []struct {
		name     string
		built    bool
		target   string
		wantCode int
	}{
		{"missing q", true, "/api/v1/catalog/titles", http.StatusBadRequest},
		{"blank q", true, "/api/v1/catalog/titles?q=%20%20", http.StatusBadRequest},
		{"bad limit", true, "/api/v1/catalog/titles?q=gob&limit=x", http.StatusBadRequest},
		{"negative limit", true, "/api/v1/catalog/titles?q=gob&limit=-1", http.StatusBadRequest},
		{"not ready", false, "/api/v1/catalog/titles?q=gob", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, newTestEngine(t, tt.built), nil)
			rec := doRequest(t, srv, http.MethodGet, tt.target, nil, nil)
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
		})
	}
}

func TestCatalogStatus(t *testing.T) {
	srv := newTestServer(t, newTestEngine(t, true), nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/catalog/status", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var st recommend.Status
	decodeEnvelope(t, rec, &st)
	if !st.Ready || st.Items != 6 || st.Version != 1 {
		t.Errorf("status = %+v", st)
	}
}

func TestCatalogReload(t *testing.T) {
	auth := map[string]string{"Authorization": "Bearer " + testAdminToken}

	tests := []struct {
		name     string
		reloader *fakeReloader
		headers  map[string]string
		wantCode int
		wantCall bool
	}{
		{"accepted", &fakeReloader{}, auth, http.StatusAccepted, true},
		{"in progress", &fakeReloader{err: recommend.ErrReloadInProgress}, auth, http.StatusConflict, true},
		{"throttled", &fakeReloader{err: recommend.ErrReloadThrottled}, auth, http.StatusTooManyRequests, true},
		{"missing token", &fakeReloader{}, nil, http.StatusUnauthorized, false},
		{"wrong token", &fakeReloader{}, map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, newTestEngine(t, true), tt.reloader)
			rec := doRequest(t, srv, http.MethodPost, "/api/v1/catalog/reload", nil, tt.headers)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			called := len(tt.reloader.triggers) > 0
			if called != tt.wantCall {
				t.Errorf("reloader called = %v, want %v", called, tt.wantCall)
			}
			if called && tt.reloader.triggers[0] != "api" {
				t.Errorf("trigger = %q, want api", tt.reloader.triggers[0])
			}
		})
	}
}

func TestCatalogReload_NotConfigured(t *testing.T) {
	srv := newTestServer(t, newTestEngine(t, true), nil)
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/catalog/reload", nil,
		map[string]string{"Authorization": "Bearer " + testAdminToken})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
