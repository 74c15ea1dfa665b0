// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

// Package logging provides the process-wide zerolog logger.
//
// Init configures level, format (json or console), caller and timestamp
// fields once at startup; before that a default info-level JSON logger
// writing to stderr is in place.
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	logging.Info().Int("items", n).Msg("catalog loaded")
//
// Request-scoped logging goes through Ctx, which adds request_id and
// correlation_id when the context carries them:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("recommendation failed")
//
// Components that hold their own logger take a zerolog.Logger and tag it
// with WithComponent. SlogHandler adapts the logger for libraries that log
// through log/slog.
package logging
