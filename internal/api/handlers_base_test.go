// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/dramarec/internal/catalog"
	"github.com/tomtom215/dramarec/internal/config"
	"github.com/tomtom215/dramarec/internal/models"
	"github.com/tomtom215/dramarec/internal/recommend"
)

const testAdminToken = "test-admin-token-0123456789"

func ptr[T any](v T) *T {
	return &v
}

func testRecords() []catalog.DramaRecord {
	return []catalog.DramaRecord{
		{Title: "Crash Landing on You", Genres: []string{"Romance", "Drama"}, Synopsis: "A South Korean heiress crash lands in North Korea.", Network: "tvN", Rating: ptr(9.1), ContentRating: ptr("15+ - Teens 15 or older")},
		{Title: "Goblin", Genres: []string{"Fantasy", "Romance", "Drama"}, Synopsis: "An immortal goblin searches for a human bride.", Network: "tvN", Rating: ptr(8.8), ContentRating: ptr("15+ - Teens 15 or older")},
		{Title: "Descendants of the Sun", Genres: []string{"Romance", "Drama", "Action"}, Synopsis: "An army captain falls for a surgeon.", Network: "KBS2", Rating: ptr(8.5), ContentRating: ptr("15+ - Teens 15 or older")},
		{Title: "Signal", Genres: []string{"Thriller", "Mystery", "Crime"}, Synopsis: "A detective talks to the past through a walkie-talkie.", Network: "tvN", Rating: ptr(9.0), ContentRating: ptr("18+ Restricted")},
		{Title: "Kingdom", Genres: []string{"Horror", "Thriller", "Historical"}, Synopsis: "A crown prince investigates a plague in Joseon.", Network: "Netflix"},
		{Title: "Reply 1988", Genres: []string{"Comedy", "Family", "Romance"}, Synopsis: "Five families in a Seoul neighborhood.", Network: "tvN", Rating: ptr(9.2)},
	}
}

// fakeReloader records triggers and returns err.
type fakeReloader struct {
	err      error
	triggers []string
}

func (f *fakeReloader) TriggerReload(trigger string) error {
	f.triggers = append(f.triggers, trigger)
	return f.err
}

func newTestEngine(t *testing.T, build bool) *recommend.Engine {
	t.Helper()
	return newTestEngineWithConfig(t, nil, build)
}

func newTestEngineWithConfig(t *testing.T, cfg *recommend.Config, build bool) *recommend.Engine {
	t.Helper()
	engine, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if build {
		if _, err := engine.Build(context.Background(), testRecords()); err != nil {
			t.Fatalf("Build() error = %v", err)
		}
	}
	return engine
}

func testSecurity() *config.SecurityConfig {
	return &config.SecurityConfig{
		AdminToken:      testAdminToken,
		CORSOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		RateLimitReqs:   10000,
		RateLimitWindow: time.Minute,
	}
}

// newTestServer returns the full chi handler around engine.
func newTestServer(t *testing.T, engine Recommender, reloader ReloadTrigger) http.Handler {
	t.Helper()
	h := NewHandler(engine, reloader, "test")
	return NewRouter(h, testSecurity()).SetupChi()
}

func doRequest(t *testing.T, srv http.Handler, method, target string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

// decodeEnvelope decodes the response envelope, unmarshalling data into
// dataOut when non-nil.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, dataOut interface{}) models.APIResponse {
	t.Helper()
	var raw struct {
		Status   string           `json:"status"`
		Data     json.RawMessage  `json:"data"`
		Metadata models.Metadata  `json:"metadata"`
		Error    *models.APIError `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode envelope %q: %v", rec.Body.String(), err)
	}
	if dataOut != nil {
		if err := json.Unmarshal(raw.Data, dataOut); err != nil {
			t.Fatalf("decode data %s: %v", raw.Data, err)
		}
	}
	return models.APIResponse{Status: raw.Status, Metadata: raw.Metadata, Error: raw.Error}
}
