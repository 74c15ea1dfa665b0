// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/tomtom215/dramarec/internal/recommend"
)

const defaultDebounce = 2 * time.Second

// ReloadTrigger queues a catalog reload without blocking.
type ReloadTrigger interface {
	TriggerReload(trigger string) error
}

// WatchService triggers a reload when the catalog file changes.
//
// The parent directory is watched rather than the file so editors that
// replace the file by rename are still noticed. Bursts of events collapse
// into one trigger after Debounce of quiet. A trigger refused as in progress
// or throttled is retried after another Debounce.
type WatchService struct {
	path     string
	debounce time.Duration
	trigger  ReloadTrigger
	logger   zerolog.Logger
	name     string
}

// NewWatchService creates a watcher for path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWatchService(path string, debounce time.Duration, trigger ReloadTrigger, logger zerolog.Logger) *WatchService {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &WatchService{
		path:     filepath.Clean(path),
		debounce: debounce,
		trigger:  trigger,
		logger:   logger.With().Str("service", "catalog-watch").Str("path", path).Logger(),
		name:     "catalog-watch-service",
	}
}

// Serve implements suture.Service.
func (w *WatchService) Serve(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.path), err)
	}
	w.logger.Info().Dur("debounce", w.debounce).Msg("watching catalog file")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("file watcher closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug().Str("op", event.Op.String()).Msg("catalog file changed")
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("file watcher closed")
			}
			w.logger.Warn().Err(err).Msg("file watcher error")

		case <-timer.C:
			if err := w.trigger.TriggerReload(TriggerFile); err != nil {
				if errors.Is(err, recommend.ErrReloadInProgress) || errors.Is(err, recommend.ErrReloadThrottled) {
					w.logger.Debug().Err(err).Msg("reload deferred")
					timer.Reset(w.debounce)
					continue
				}
				w.logger.Warn().Err(err).Msg("reload trigger failed")
			}
		}
	}
}

func (w *WatchService) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// String returns the service name for logging.
func (w *WatchService) String() string {
	return w.name
}
