// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package recommend

import (
	"fmt"
	"runtime"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Encoder controls how catalog records become feature vectors.
	Encoder EncoderConfig `json:"encoder"`

	// Resolver controls title lookup.
	Resolver ResolverConfig `json:"resolver"`

	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`

	// Index controls similarity index construction.
	Index IndexConfig `json:"index"`
}

// EncoderConfig weights the three feature blocks. Each block is scaled
// independently, so a weight of zero removes that block from similarity.
type EncoderConfig struct {
	// TextWeight scales the L2-normalized TF-IDF block (synopsis, genres, network).
	TextWeight float64 `json:"text_weight"`

	// CategoryWeight is the value of the one-hot content rating dimension.
	CategoryWeight float64 `json:"category_weight"`

	// RatingWeight scales the min-max normalized rating.
	RatingWeight float64 `json:"rating_weight"`

	// MinTokenLength drops shorter tokens (in runes).
	MinTokenLength int `json:"min_token_length"`

	// PhraseTokens adds whole-value genre and network tokens alongside their words.
	PhraseTokens bool `json:"phrase_tokens"`
}

// ResolverConfig controls title resolution.
type ResolverConfig struct {
	// MatchThreshold is the minimum fuzzy score (0-100) accepted as a match.
	MatchThreshold float64 `json:"match_threshold"`

	// MaxSuggestions caps title suggestion lists.
	MaxSuggestions int `json:"max_suggestions"`
}

// LimitsConfig contains request limits.
type LimitsConfig struct {
	// DefaultN is used by callers when a request omits the count.
	DefaultN int `json:"default_n"`

	// MaxN caps the count. Larger requests are clamped, not rejected.
	// Zero leaves only the catalog-size clamp.
	MaxN int `json:"max_n"`
}

// IndexConfig controls similarity index construction.
type IndexConfig struct {
	// Workers bounds concurrent row computation. Zero means GOMAXPROCS.
	Workers int `json:"workers"`

	// BuildTimeout bounds a full snapshot build.
	BuildTimeout time.Duration `json:"build_timeout"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Encoder: EncoderConfig{
			TextWeight:     1.0,
			CategoryWeight: 0.5,
			RatingWeight:   0.25,
			MinTokenLength: 2,
			PhraseTokens:   true,
		},
		Resolver: ResolverConfig{
			MatchThreshold: 80,
			MaxSuggestions: 10,
		},
		Limits: LimitsConfig{
			DefaultN: 5,
			MaxN:     0,
		},
		Index: IndexConfig{
			Workers:      0,
			BuildTimeout: 2 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Encoder.TextWeight < 0 {
		return fmt.Errorf("encoder.text_weight must be non-negative, got %f", c.Encoder.TextWeight)
	}
	if c.Encoder.CategoryWeight < 0 {
		return fmt.Errorf("encoder.category_weight must be non-negative, got %f", c.Encoder.CategoryWeight)
	}
	if c.Encoder.RatingWeight < 0 {
		return fmt.Errorf("encoder.rating_weight must be non-negative, got %f", c.Encoder.RatingWeight)
	}
	if c.Encoder.TextWeight+c.Encoder.CategoryWeight+c.Encoder.RatingWeight == 0 {
		return fmt.Errorf("encoder weights must not all be zero")
	}
	if c.Encoder.MinTokenLength < 1 {
		return fmt.Errorf("encoder.min_token_length must be positive, got %d", c.Encoder.MinTokenLength)
	}

	if c.Resolver.MatchThreshold < 0 || c.Resolver.MatchThreshold > 100 {
		return fmt.Errorf("resolver.match_threshold must be in [0, 100], got %f", c.Resolver.MatchThreshold)
	}
	if c.Resolver.MaxSuggestions < 1 {
		return fmt.Errorf("resolver.max_suggestions must be positive, got %d", c.Resolver.MaxSuggestions)
	}

	if c.Limits.DefaultN < 1 {
		return fmt.Errorf("limits.default_n must be positive, got %d", c.Limits.DefaultN)
	}
	if c.Limits.MaxN < 0 {
		return fmt.Errorf("limits.max_n must be non-negative, got %d", c.Limits.MaxN)
	}
	if c.Limits.MaxN > 0 && c.Limits.MaxN < c.Limits.DefaultN {
		return fmt.Errorf("limits.max_n must be 0 or >= limits.default_n, got %d < %d", c.Limits.MaxN, c.Limits.DefaultN)
	}

	if c.Index.Workers < 0 {
		return fmt.Errorf("index.workers must be non-negative, got %d", c.Index.Workers)
	}
	if c.Index.BuildTimeout <= 0 {
		return fmt.Errorf("index.build_timeout must be positive, got %v", c.Index.BuildTimeout)
	}

	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// workers resolves the effective worker count.
func (c *IndexConfig) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Key identifies encoder settings that change vector values. Persisted
// indexes are only reused when their key matches.
func (c *EncoderConfig) Key() string {
	return fmt.Sprintf("t%g-c%g-r%g-m%d-p%t", c.TextWeight, c.CategoryWeight, c.RatingWeight, c.MinTokenLength, c.PhraseTokens)
}
