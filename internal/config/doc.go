// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

/*
Package config provides centralized configuration management for Dramarec.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - Optional YAML file: CONFIG_PATH, ./config.yaml or /etc/dramarec/config.yaml
  - Environment variables, mapped explicitly (unknown variables are ignored)

LoadDotEnv can populate the environment from a .env file first; it never
overrides variables that are already set.

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 5000)
  - HTTP_TIMEOUT: Per-request timeout (default: 30s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown bound (default: 15s)
  - ENVIRONMENT: development, staging or production

Catalog:
  - CATALOG_SOURCE: file, duckdb or s3 (default: file)
  - CATALOG_PATH: Local catalog file (default: data/kdrama_catalog.json)
  - CATALOG_FORMAT: csv, parquet or json for duckdb (default: by extension)
  - SNAPSHOT_DIR: BadgerDB directory for built indexes (default: disabled)
  - S3_ENDPOINT, S3_ACCESS_KEY, S3_SECRET_KEY, S3_REGION, S3_BUCKET, S3_KEY, S3_USE_SSL
  - S3_TIMEOUT, S3_BREAKER_FAILURES, S3_BREAKER_TIMEOUT

Recommendations:
  - MATCH_THRESHOLD: Minimum fuzzy title score 0-100 (default: 80)
  - RECOMMEND_DEFAULT_N / RECOMMEND_MAX_N: Count default and cap (default: 5 / 0, where 0 means no cap)
  - RECOMMEND_TEXT_WEIGHT, RECOMMEND_CATEGORY_WEIGHT, RECOMMEND_RATING_WEIGHT
  - RECOMMEND_WORKERS, RECOMMEND_BUILD_TIMEOUT

Reload:
  - RELOAD_SCHEDULE: Cron expression or descriptor (default: disabled)
  - RELOAD_WATCH_FILE: Rebuild when the catalog file changes
  - RELOAD_DEBOUNCE, RELOAD_MIN_INTERVAL, RELOAD_STARTUP_RETRY

Security:
  - ADMIN_TOKEN: Bearer token for POST /api/v1/catalog/reload (required in production)
  - CORS_ORIGINS: Comma-separated origins (default: the Vite dev server origins)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include file:line

# Usage

	if err := config.LoadDotEnv(); err != nil {
	    return err
	}
	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    return err
	}
	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logger)
*/
package config
