// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package recommend

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match them with errors.Is.
var (
	// ErrValidation marks a malformed request (empty title, non-positive count).
	ErrValidation = errors.New("invalid request")

	// ErrNotFound marks a title that resolves to no catalog entry.
	ErrNotFound = errors.New("title not found")

	// ErrNotReady is returned until the first snapshot is published. Transient.
	ErrNotReady = errors.New("recommendation index not ready")

	// ErrInvariant marks an internal inconsistency found while building a
	// snapshot. The build is aborted and the previous snapshot kept.
	ErrInvariant = errors.New("snapshot invariant violated")

	// ErrReloadInProgress is returned when a reload is requested while one runs.
	ErrReloadInProgress = errors.New("catalog reload already in progress")

	// ErrNoSource is returned by Reload when the engine has no catalog source.
	ErrNoSource = errors.New("no catalog source configured")

	// ErrReloadThrottled is returned by reload triggers that fire faster than
	// the configured minimum interval.
	ErrReloadThrottled = errors.New("catalog reload rate limited")
)

// ValidationError describes which request field was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError carries the closest candidate that fell below the threshold.
type NotFoundError struct {
	Query string

	// Closest is empty when the catalog offered no candidate at all.
	Closest   string
	ClosestID int
	Score     int
}

func (e *NotFoundError) Error() string {
	if e.Closest == "" {
		return fmt.Sprintf("no match found for %q", e.Query)
	}
	return fmt.Sprintf("no close match found for %q; closest match %q (confidence %d)", e.Query, e.Closest, e.Score)
}

// Unwrap returns ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}
