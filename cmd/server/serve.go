// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tomtom215/dramarec/internal/api"
	"github.com/tomtom215/dramarec/internal/catalog"
	"github.com/tomtom215/dramarec/internal/config"
	"github.com/tomtom215/dramarec/internal/logging"
	"github.com/tomtom215/dramarec/internal/recommend"
	"github.com/tomtom215/dramarec/internal/recommend/storage"
	"github.com/tomtom215/dramarec/internal/supervisor"
	"github.com/tomtom215/dramarec/internal/supervisor/services"
)

// newEngine creates an engine wired to the configured catalog source and,
// when a snapshot directory is set, the BadgerDB index store. The returned
// cleanup closes the store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func newEngine(cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, func(), error) {
	cleanup := func() {}

	src, err := catalog.NewSource(cfg.Catalog.SourceConfig())
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to create catalog source: %w", err)
	}

	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logger)
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to create recommendation engine: %w", err)
	}
	engine.SetSource(src)

	if cfg.Catalog.SnapshotDir != "" {
		store, err := storage.Open(cfg.Catalog.SnapshotDir, logger)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to open index store: %w", err)
		}
		engine.SetIndexStore(store)
		cleanup = func() {
			if err := store.Close(); err != nil {
				logger.Error().Err(err).Msg("Error closing index store")
			}
		}
		logger.Info().Str("dir", cfg.Catalog.SnapshotDir).Msg("Index store opened")
	}

	return engine, cleanup, nil
}

// runServe wires the engine, reload triggers and HTTP server into the
// supervisor tree and blocks until ctx is canceled.
//
//nolint:gocyclo // sequential setup steps
func runServe(ctx context.Context, cfg *config.Config) error {
	logger := logging.Logger()

	logging.Info().
		Str("version", version).
		Str("catalog_source", cfg.Catalog.Source).
		Str("catalog_path", cfg.Catalog.Path).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Dramarec with supervisor tree")

	if cfg.Security.AdminToken == "" {
		logging.Warn().Msg("ADMIN_TOKEN is not set: POST /api/v1/catalog/reload is open to any client")
	}
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS is configured with wildcard origin (CORS_ORIGINS=*)")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	engine, closeStore, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var schedule cron.Schedule
	if cfg.Reload.Schedule != "" {
		schedule, err = config.ScheduleParser.Parse(cfg.Reload.Schedule)
		if err != nil {
			return fmt.Errorf("invalid reload schedule %q: %w", cfg.Reload.Schedule, err)
		}
		logging.Info().Str("schedule", cfg.Reload.Schedule).Msg("Scheduled catalog reloads enabled")
	}

	reloadSvc := services.NewReloadService(engine, services.ReloadServiceConfig{
		Schedule:     schedule,
		MinInterval:  cfg.Reload.MinInterval,
		StartupRetry: cfg.Reload.StartupRetry,
	}, logger)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	// Catalog layer
	tree.AddCatalogService(reloadSvc)
	if cfg.Reload.WatchFile {
		tree.AddCatalogService(services.NewWatchService(cfg.Catalog.Path, cfg.Reload.Debounce, reloadSvc, logger))
		logging.Info().Str("path", cfg.Catalog.Path).Msg("Catalog file watcher added to supervisor tree")
	}

	// API layer
	handler := api.NewHandler(engine, reloadSvc, version)
	router := api.NewRouter(handler, &cfg.Security)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewAPIService(server.Addr, server, cfg.Server.ShutdownTimeout, logger))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
		return fmt.Errorf("supervisor tree stopped: %w", treeErr)
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
	return nil
}
