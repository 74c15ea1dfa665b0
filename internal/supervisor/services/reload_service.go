// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
	"golang.org/x/time/rate"

	"github.com/tomtom215/dramarec/internal/metrics"
	"github.com/tomtom215/dramarec/internal/recommend"
)

// Reload triggers, used as the metrics label.
const (
	TriggerStartup  = "startup"
	TriggerSchedule = "schedule"
	TriggerFile     = "file"
	TriggerAPI      = "api"
)

const defaultStartupRetry = 10 * time.Second

// CatalogReloader is the engine side of a reload.
type CatalogReloader interface {
	Reload(ctx context.Context) (*recommend.Snapshot, error)
	Ready() bool
}

// ReloadServiceConfig holds configuration for the reload service.
type ReloadServiceConfig struct {
	// Schedule is a cron expression for periodic reloads; nil disables them.
	Schedule cron.Schedule

	// MinInterval is the minimum spacing between triggered reloads.
	// Zero disables throttling.
	MinInterval time.Duration

	// StartupRetry is how long to wait between failed initial loads.
	StartupRetry time.Duration
}

// ReloadService owns the catalog snapshot lifecycle: it performs the initial
// load, retrying until it succeeds, then serves reload triggers from the
// schedule, the file watcher and the API one at a time.
type ReloadService struct {
	engine   CatalogReloader
	config   ReloadServiceConfig
	limiter  *rate.Limiter
	requests chan string
	busy     atomic.Bool
	logger   zerolog.Logger
	name     string
}

// NewReloadService creates a new reload service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(engine CatalogReloader, cfg ReloadServiceConfig, logger zerolog.Logger) *ReloadService {
	if cfg.StartupRetry <= 0 {
		cfg.StartupRetry = defaultStartupRetry
	}
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	return &ReloadService{
		engine:   engine,
		config:   cfg,
		limiter:  rate.NewLimiter(limit, 1),
		requests: make(chan string, 1),
		logger:   logger.With().Str("service", "catalog-reload").Logger(),
		name:     "catalog-reload-service",
	}
}

// TriggerReload queues a reload. It never blocks: a reload already queued or
// running yields recommend.ErrReloadInProgress, and triggers arriving faster
// than MinInterval yield recommend.ErrReloadThrottled.
func (s *ReloadService) TriggerReload(trigger string) error {
	if !s.busy.CompareAndSwap(false, true) {
		return recommend.ErrReloadInProgress
	}
	if !s.limiter.Allow() {
		s.busy.Store(false)
		return recommend.ErrReloadThrottled
	}
	select {
	case s.requests <- trigger:
		return nil
	default:
		s.busy.Store(false)
		return recommend.ErrReloadInProgress
	}
}

// Serve implements suture.Service.
func (s *ReloadService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("scheduled", s.config.Schedule != nil).
		Dur("min_interval", s.config.MinInterval).
		Msg("catalog reload service starting")

	if !s.engine.Ready() {
		if err := s.loadUntilReady(ctx); err != nil {
			return err
		}
	}

	var timer *time.Timer
	var tick <-chan time.Time
	if s.config.Schedule != nil {
		timer = time.NewTimer(s.untilNext())
		defer timer.Stop()
		tick = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog reload service shutting down")
			return ctx.Err()

		case <-tick:
			if err := s.TriggerReload(TriggerSchedule); err != nil {
				s.logger.Info().Err(err).Msg("scheduled reload skipped")
			}
			timer.Reset(s.untilNext())

		case trigger := <-s.requests:
			_ = s.reload(ctx, trigger)
			s.busy.Store(false)
		}
	}
}

// loadUntilReady retries the initial load until a snapshot is published.
func (s *ReloadService) loadUntilReady(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		s.busy.Store(true)
		err := s.reload(ctx, TriggerStartup)
		s.busy.Store(false)

		switch {
		case err == nil:
			return nil
		case errors.Is(err, recommend.ErrNoSource):
			return fmt.Errorf("%w: %w", err, suture.ErrDoNotRestart)
		case ctx.Err() != nil:
			return ctx.Err()
		}

		s.logger.Warn().
			Int("attempt", attempt).
			Dur("retry_in", s.config.StartupRetry).
			Msg("initial catalog load failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.config.StartupRetry):
		}
	}
}

func (s *ReloadService) reload(ctx context.Context, trigger string) error {
	start := time.Now()
	snap, err := s.engine.Reload(ctx)
	metrics.RecordCatalogReload(trigger, err)

	if err != nil {
		s.logger.Error().Err(err).
			Str("trigger", trigger).
			Dur("duration", time.Since(start)).
			Msg("catalog reload failed")
		return err
	}

	s.logger.Info().
		Str("trigger", trigger).
		Int("items", snap.Len()).
		Int64("version", snap.Version).
		Bool("restored", snap.Restored).
		Dur("duration", time.Since(start)).
		Msg("catalog reloaded")
	return nil
}

func (s *ReloadService) untilNext() time.Duration {
	now := time.Now()
	d := s.config.Schedule.Next(now).Sub(now)
	if d < 0 {
		d = 0
	}
	return d
}

// String returns the service name for logging.
func (s *ReloadService) String() string {
	return s.name
}
