// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package config

import (
	"time"

	"github.com/tomtom215/dramarec/internal/catalog"
	"github.com/tomtom215/dramarec/internal/recommend"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//   - Server: HTTP listener and timeouts
//   - Logging: Log level, format and caller info
//   - Catalog: Where drama records come from and where built indexes are kept
//   - Recommend: Encoder weights, title matching and request limits
//   - Reload: Scheduled and file-triggered catalog rebuilds
//   - Security: Admin token, CORS and rate limiting
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
	Reload    ReloadConfig    `koanf:"reload"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"` // Per-request handler timeout

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	Environment string `koanf:"environment"` // "development", "staging" or "production"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller adds file:line to each entry.
	Caller bool `koanf:"caller"`
}

// CatalogConfig selects the catalog source and the index store.
type CatalogConfig struct {
	// Source is one of "file", "duckdb" or "s3".
	Source string `koanf:"source"`

	// Path is the local catalog file for file and duckdb sources.
	Path string `koanf:"path"`

	// Format overrides extension-based detection for duckdb: csv, parquet, json.
	Format string `koanf:"format"`

	// SnapshotDir is the BadgerDB directory for built similarity indexes.
	// Empty disables persistence.
	SnapshotDir string `koanf:"snapshot_dir"`

	Object ObjectStoreConfig `koanf:"object"`
}

// ObjectStoreConfig configures the s3 catalog source.
type ObjectStoreConfig struct {
	Endpoint        string        `koanf:"endpoint"`
	AccessKey       string        `koanf:"access_key"`
	SecretKey       string        `koanf:"secret_key"`
	Region          string        `koanf:"region"`
	Bucket          string        `koanf:"bucket"`
	Key             string        `koanf:"key"`
	UseSSL          bool          `koanf:"use_ssl"`
	Timeout         time.Duration `koanf:"timeout"`
	BreakerFailures int           `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// RecommendConfig holds engine settings. See recommend.Config for semantics.
type RecommendConfig struct {
	TextWeight     float64       `koanf:"text_weight"`
	CategoryWeight float64       `koanf:"category_weight"`
	RatingWeight   float64       `koanf:"rating_weight"`
	MinTokenLength int           `koanf:"min_token_length"`
	PhraseTokens   bool          `koanf:"phrase_tokens"`
	MatchThreshold float64       `koanf:"match_threshold"`
	MaxSuggestions int           `koanf:"max_suggestions"`
	DefaultN       int           `koanf:"default_n"`
	MaxN           int           `koanf:"max_n"`
	Workers        int           `koanf:"workers"`
	BuildTimeout   time.Duration `koanf:"build_timeout"`
}

// ReloadConfig controls catalog rebuilds after startup.
type ReloadConfig struct {
	// Schedule is a cron expression (robfig/cron, optional seconds field or
	// descriptors like "@every 1h"). Empty disables scheduled reloads.
	Schedule string `koanf:"schedule"`

	// WatchFile reloads when the catalog file changes. File and duckdb sources only.
	WatchFile bool `koanf:"watch_file"`

	// Debounce coalesces bursts of file events into one reload.
	Debounce time.Duration `koanf:"debounce"`

	// MinInterval is the minimum spacing between reloads from any trigger.
	MinInterval time.Duration `koanf:"min_interval"`

	// StartupRetry is the delay between attempts when the first load fails.
	StartupRetry time.Duration `koanf:"startup_retry"`
}

// SecurityConfig holds access control and request limiting settings.
type SecurityConfig struct {
	// AdminToken guards the reload endpoint. Empty leaves it open, which
	// Validate rejects in production.
	AdminToken string `koanf:"admin_token"`

	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// EngineConfig converts the recommend section to the engine's configuration.
func (c *RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Encoder: recommend.EncoderConfig{
			TextWeight:     c.TextWeight,
			CategoryWeight: c.CategoryWeight,
			RatingWeight:   c.RatingWeight,
			MinTokenLength: c.MinTokenLength,
			PhraseTokens:   c.PhraseTokens,
		},
		Resolver: recommend.ResolverConfig{
			MatchThreshold: c.MatchThreshold,
			MaxSuggestions: c.MaxSuggestions,
		},
		Limits: recommend.LimitsConfig{
			DefaultN: c.DefaultN,
			MaxN:     c.MaxN,
		},
		Index: recommend.IndexConfig{
			Workers:      c.Workers,
			BuildTimeout: c.BuildTimeout,
		},
	}
}

// SourceConfig converts the catalog section to a catalog source configuration.
func (c *CatalogConfig) SourceConfig() catalog.SourceConfig {
	return catalog.SourceConfig{
		Kind:   c.Source,
		Path:   c.Path,
		Format: c.Format,
		Object: catalog.ObjectConfig{
			Endpoint:        c.Object.Endpoint,
			AccessKey:       c.Object.AccessKey,
			SecretKey:       c.Object.SecretKey,
			Region:          c.Object.Region,
			Bucket:          c.Object.Bucket,
			Key:             c.Object.Key,
			UseSSL:          c.Object.UseSSL,
			Timeout:         c.Object.Timeout,
			BreakerFailures: uint32(max(c.Object.BreakerFailures, 0)), //nolint:gosec // validated positive
			BreakerTimeout:  c.Object.BreakerTimeout,
		},
	}
}

// IsLocalFile reports whether the source reads a local file that can be watched.
func (c *CatalogConfig) IsLocalFile() bool {
	return c.Source == catalog.SourceFile || c.Source == catalog.SourceDuckDB
}
