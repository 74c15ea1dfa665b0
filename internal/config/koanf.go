// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/dramarec/config.yaml",
	"/etc/dramarec/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Catalog: CatalogConfig{
			Source:      "file",
			Path:        "data/kdrama_catalog.json",
			Format:      "",
			SnapshotDir: "", // Persistence disabled by default
			Object: ObjectStoreConfig{
				Region:          "us-east-1",
				UseSSL:          true,
				Timeout:         30 * time.Second,
				BreakerFailures: 5,
				BreakerTimeout:  60 * time.Second,
			},
		},
		Recommend: RecommendConfig{
			TextWeight:     1.0,
			CategoryWeight: 0.5,
			RatingWeight:   0.25,
			MinTokenLength: 2,
			PhraseTokens:   true,
			MatchThreshold: 80,
			MaxSuggestions: 10,
			DefaultN:       5,
			MaxN:           0, // 0 = no cap beyond catalog size
			Workers:        0, // 0 = GOMAXPROCS
			BuildTimeout:   2 * time.Minute,
		},
		Reload: ReloadConfig{
			Schedule:     "", // Scheduled reloads disabled by default
			WatchFile:    false,
			Debounce:     2 * time.Second,
			MinInterval:  30 * time.Second,
			StartupRetry: 10 * time.Second,
		},
		Security: SecurityConfig{
			AdminToken:        "",
			CORSOrigins:       []string{"http://localhost:5173", "http://127.0.0.1:5173"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// LoadDotEnv loads KEY=value pairs from .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is LoadWithKoanf with an explicit config file path. An empty path
// skips the file layer.
func LoadFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// CATALOG_PATH -> catalog.path, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to config paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":             "server.port",
	"http_host":             "server.host",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Catalog mappings
	"catalog_source":      "catalog.source",
	"catalog_path":        "catalog.path",
	"catalog_format":      "catalog.format",
	"snapshot_dir":        "catalog.snapshot_dir",
	"s3_endpoint":         "catalog.object.endpoint",
	"s3_access_key":       "catalog.object.access_key",
	"s3_secret_key":       "catalog.object.secret_key",
	"s3_region":           "catalog.object.region",
	"s3_bucket":           "catalog.object.bucket",
	"s3_key":              "catalog.object.key",
	"s3_use_ssl":          "catalog.object.use_ssl",
	"s3_timeout":          "catalog.object.timeout",
	"s3_breaker_failures": "catalog.object.breaker_failures",
	"s3_breaker_timeout":  "catalog.object.breaker_timeout",

	// Recommendation engine mappings
	"recommend_text_weight":      "recommend.text_weight",
	"recommend_category_weight":  "recommend.category_weight",
	"recommend_rating_weight":    "recommend.rating_weight",
	"recommend_min_token_length": "recommend.min_token_length",
	"recommend_phrase_tokens":    "recommend.phrase_tokens",
	"match_threshold":            "recommend.match_threshold",
	"recommend_max_suggestions":  "recommend.max_suggestions",
	"recommend_default_n":        "recommend.default_n",
	"recommend_max_n":            "recommend.max_n",
	"recommend_workers":          "recommend.workers",
	"recommend_build_timeout":    "recommend.build_timeout",

	// Reload mappings
	"reload_schedule":      "reload.schedule",
	"reload_watch_file":    "reload.watch_file",
	"reload_debounce":      "reload.debounce",
	"reload_min_interval":  "reload.min_interval",
	"reload_startup_retry": "reload.startup_retry",

	// Security mappings
	"admin_token":         "security.admin_token",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - CATALOG_PATH -> catalog.path
//   - S3_BUCKET -> catalog.object.bucket
//   - MATCH_THRESHOLD -> recommend.match_threshold
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys return "" so unrelated environment variables are skipped.
	return ""
}
