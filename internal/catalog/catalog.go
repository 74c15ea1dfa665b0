// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// ErrEmptyCatalog is returned when a catalog would contain no records.
var ErrEmptyCatalog = errors.New("catalog contains no records")

// InvalidRecordError reports a record that cannot enter a catalog.
type InvalidRecordError struct {
	// Position is the zero-based index of the record in the loaded list.
	Position int
	Reason   string
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Position, e.Reason)
}

// Catalog is an immutable, ordered set of drama records.
type Catalog struct {
	records     []DramaRecord
	fingerprint string
}

// New builds a catalog from records, assigning IDs by position.
// The input slice is copied; later changes to it do not affect the catalog.
func New(records []DramaRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, ErrEmptyCatalog
	}

	out := make([]DramaRecord, len(records))
	for i := range records {
		rec := cloneRecord(&records[i])
		rec.Title = strings.TrimSpace(rec.Title)
		if rec.Title == "" {
			return nil, &InvalidRecordError{Position: i, Reason: "title is empty"}
		}
		if rec.Rating != nil && !isFinite(*rec.Rating) {
			rec.Rating = nil
		}
		rec.ID = i
		out[i] = rec
	}

	fp, err := Fingerprint(out)
	if err != nil {
		return nil, err
	}

	return &Catalog{records: out, fingerprint: fp}, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Get returns the record with the given ID.
func (c *Catalog) Get(id int) (DramaRecord, bool) {
	if id < 0 || id >= len(c.records) {
		return DramaRecord{}, false
	}
	return cloneRecord(&c.records[id]), true
}

// Title returns the title of the record with the given ID, or "" when out of range.
func (c *Catalog) Title(id int) string {
	if id < 0 || id >= len(c.records) {
		return ""
	}
	return c.records[id].Title
}

// Titles returns all titles in ID order.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.records))
	for i := range c.records {
		titles[i] = c.records[i].Title
	}
	return titles
}

// Each calls fn for every record in ID order. The record must not be retained
// or modified by fn.
func (c *Catalog) Each(fn func(rec *DramaRecord)) {
	for i := range c.records {
		fn(&c.records[i])
	}
}

// Records returns a deep copy of all records in ID order.
func (c *Catalog) Records() []DramaRecord {
	out := make([]DramaRecord, len(c.records))
	for i := range c.records {
		out[i] = cloneRecord(&c.records[i])
	}
	return out
}

// Fingerprint returns the SHA-256 fingerprint computed at construction.
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

// Fingerprint hashes the canonical JSON encoding of records. Two record lists
// with the same content in the same order share a fingerprint.
func Fingerprint(records []DramaRecord) (string, error) {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return "", fmt.Errorf("fingerprint record %d: %w", i, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func cloneRecord(r *DramaRecord) DramaRecord {
	out := *r
	if r.Genres != nil {
		out.Genres = append([]string(nil), r.Genres...)
	}
	if r.Rating != nil {
		v := *r.Rating
		out.Rating = &v
	}
	if r.ContentRating != nil {
		v := *r.ContentRating
		out.ContentRating = &v
	}
	return out
}
