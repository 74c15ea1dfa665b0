// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package recommend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/dramarec/internal/catalog"
)

func ptr[T any](v T) *T {
	return &v
}

// dramaRecords is a small catalog with overlapping genres and networks.
func dramaRecords() []catalog.DramaRecord {
	return []catalog.DramaRecord{
		{
			Title:         "Crash Landing on You",
			Genres:        []string{"Romance", "Drama"},
			Synopsis:      "A South Korean heiress crash lands in North Korea after a paragliding accident and meets an army officer.",
			Network:       "tvN",
			Rating:        ptr(9.1),
			ContentRating: ptr("15+ - Teens 15 or older"),
		},
		{
			Title:         "Goblin",
			Genres:        []string{"Fantasy", "Romance", "Drama"},
			Synopsis:      "An immortal goblin searches for a human bride to end his cursed life.",
			Network:       "tvN",
			Rating:        ptr(8.8),
			ContentRating: ptr("15+ - Teens 15 or older"),
		},
		{
			Title:         "Descendants of the Sun",
			Genres:        []string{"Romance", "Drama", "Action"},
			Synopsis:      "An army captain falls for a surgeon while deployed overseas.",
			Network:       "KBS2",
			Rating:        ptr(8.5),
			ContentRating: ptr("15+ - Teens 15 or older"),
		},
		{
			Title:         "Signal",
			Genres:        []string{"Thriller", "Mystery", "Crime"},
			Synopsis:      "A detective communicates with a past detective through a walkie-talkie to solve cold cases.",
			Network:       "tvN",
			Rating:        ptr(9.0),
			ContentRating: ptr("18+ Restricted"),
		},
		{
			Title:    "Kingdom",
			Genres:   []string{"Horror", "Thriller", "Historical"},
			Synopsis: "A crown prince investigates a plague spreading through Joseon.",
			Network:  "Netflix",
		},
		{
			Title:    "Reply 1988",
			Genres:   []string{"Comedy", "Family", "Romance"},
			Synopsis: "Five families in a Seoul neighborhood in 1988.",
			Network:  "tvN",
			Rating:   ptr(9.2),
		},
	}
}

func newTestEngine(t *testing.T, cfg *Config) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func builtEngine(t *testing.T) *Engine {
	t.Helper()
	engine := newTestEngine(t, nil)
	if _, err := engine.Build(context.Background(), dramaRecords()); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return engine
}

func mustCatalog(t *testing.T, records []catalog.DramaRecord) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(records)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return cat
}
