// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package api

import (
	"context"
	"time"

	"github.com/tomtom215/dramarec/internal/recommend"
)

// Recommender is the query side of the engine.
type Recommender interface {
	Recommend(ctx context.Context, title string, n int) (*recommend.Result, error)
	Suggest(ctx context.Context, query string, limit int) ([]recommend.Match, error)
	Status() recommend.Status
	DefaultCount() int
}

// ReloadTrigger starts a catalog reload in the background. It returns
// recommend.ErrReloadInProgress or recommend.ErrReloadThrottled when the
// reload cannot start.
type ReloadTrigger interface {
	TriggerReload(trigger string) error
}

// Handler serves the HTTP endpoints.
type Handler struct {
	engine    Recommender
	reloader  ReloadTrigger
	version   string
	startTime time.Time
}

// NewHandler creates a handler. reloader may be nil, in which case the
// reload endpoint answers 503.
func NewHandler(engine Recommender, reloader ReloadTrigger, version string) *Handler {
	return &Handler{
		engine:    engine,
		reloader:  reloader,
		version:   version,
		startTime: time.Now(),
	}
}
