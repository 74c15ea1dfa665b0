// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

/*
Package services provides suture.Service implementations for long-running
components.

Services:

  - APIService: binds the API listener and serves an *http.Server on it,
    draining connections on shutdown
  - ReloadService: initial catalog load with retry, cron-scheduled reloads,
    and the single queue through which every reload trigger passes
  - WatchService: fsnotify watcher that debounces catalog file changes into
    reload triggers

Reload triggers are non-blocking. ReloadService.TriggerReload returns
recommend.ErrReloadInProgress while a reload is queued or running and
recommend.ErrReloadThrottled when triggers arrive faster than the configured
minimum interval. Every attempt is counted in catalog_reloads_total by
trigger (startup, schedule, file, api) and result.

Each service implements fmt.Stringer so suture log lines name it.
*/
package services
