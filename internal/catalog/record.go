// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package catalog

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// DramaRecord is one catalog entry.
type DramaRecord struct {
	// ID is the position of the record in its Catalog.
	ID int `json:"id"`

	// Title is the display and lookup key. Never empty.
	Title string `json:"title"`

	// Genres keeps the order the source listed them in.
	Genres []string `json:"genres"`

	// Synopsis is free text, possibly empty.
	Synopsis string `json:"synopsis"`

	// Network is the original broadcast network, possibly empty.
	Network string `json:"original_network"`

	// Rating is nil when the source had no rating.
	Rating *float64 `json:"rating,omitempty"`

	// ContentRating is nil when the source had no content rating.
	ContentRating *string `json:"content_rating,omitempty"`
}

// HasRating reports whether the record carries a rating.
func (r *DramaRecord) HasRating() bool {
	return r.Rating != nil
}

// ContentRatingValue returns the trimmed content rating, or "" when absent.
func (r *DramaRecord) ContentRatingValue() string {
	if r.ContentRating == nil {
		return ""
	}
	return strings.TrimSpace(*r.ContentRating)
}

// rawRecord accepts the looser shapes found in exported datasets:
// genres as an array or a comma-separated string, ratings as numbers or
// numeric strings.
type rawRecord struct {
	Title         string          `json:"title"`
	Genres        json.RawMessage `json:"genres"`
	Synopsis      string          `json:"synopsis"`
	Network       string          `json:"original_network"`
	Rating        json.RawMessage `json:"rating"`
	ContentRating *string         `json:"content_rating"`
}

// UnmarshalJSON decodes a record, normalizing genres and rating.
func (r *DramaRecord) UnmarshalJSON(data []byte) error {
	var raw rawRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	genres, err := decodeGenres(raw.Genres)
	if err != nil {
		return fmt.Errorf("genres: %w", err)
	}
	rating, err := decodeRating(raw.Rating)
	if err != nil {
		return fmt.Errorf("rating: %w", err)
	}

	*r = DramaRecord{
		Title:         raw.Title,
		Genres:        genres,
		Synopsis:      raw.Synopsis,
		Network:       raw.Network,
		Rating:        rating,
		ContentRating: raw.ContentRating,
	}
	return nil
}

func decodeGenres(data json.RawMessage) ([]string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return SplitGenres(s), nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return cleanGenres(list), nil
}

func decodeRating(data json.RawMessage) (*float64, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return ParseRating(s)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// SplitGenres splits a comma-separated genre list, dropping blanks.
func SplitGenres(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return cleanGenres(strings.Split(s, ","))
}

// ParseRating parses an optional numeric rating. Blank input and
// non-finite values (NaN, Inf) yield nil.
func ParseRating(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid rating %q: %w", s, err)
	}
	if !isFinite(f) {
		return nil, nil
	}
	return &f, nil
}

func cleanGenres(in []string) []string {
	out := make([]string, 0, len(in))
	for _, g := range in {
		g = strings.TrimSpace(g)
		if g != "" {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// isFinite reports whether f is neither NaN nor an infinity.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
