// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tomtom215/dramarec/internal/catalog"
)

// ScheduleParser parses reload schedules: standard 5-field cron expressions
// plus descriptors such as "@hourly" and "@every 6h".
var ScheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateReload(); err != nil {
		return err
	}
	return c.validateSecurity()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateCatalog validates the catalog source configuration
func (c *Config) validateCatalog() error {
	switch c.Catalog.Source {
	case catalog.SourceFile:
		if c.Catalog.Path == "" {
			return fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE=file")
		}
	case catalog.SourceDuckDB:
		if c.Catalog.Path == "" {
			return fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE=duckdb")
		}
		if err := validateCatalogFormat(c.Catalog.Format); err != nil {
			return err
		}
	case catalog.SourceS3:
		return c.validateObjectStore()
	default:
		return fmt.Errorf("CATALOG_SOURCE must be one of: file, duckdb, s3")
	}
	return nil
}

func validateCatalogFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "csv", "parquet", "json":
		return nil
	default:
		return fmt.Errorf("CATALOG_FORMAT must be one of: csv, parquet, json")
	}
}

// validateObjectStore validates the s3 source settings
func (c *Config) validateObjectStore() error {
	o := c.Catalog.Object
	if err := validateEndpoint(o.Endpoint, "S3_ENDPOINT"); err != nil {
		return err
	}
	if o.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required when CATALOG_SOURCE=s3")
	}
	if o.Key == "" {
		return fmt.Errorf("S3_KEY is required when CATALOG_SOURCE=s3")
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("S3_TIMEOUT must be positive")
	}
	if o.BreakerFailures < 1 {
		return fmt.Errorf("S3_BREAKER_FAILURES must be at least 1")
	}
	if o.BreakerTimeout <= 0 {
		return fmt.Errorf("S3_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// validateRecommend delegates to the engine's own validation so the two
// cannot drift apart.
func (c *Config) validateRecommend() error {
	if err := c.Recommend.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

// validateReload validates reload triggers
func (c *Config) validateReload() error {
	if c.Reload.Schedule != "" {
		if _, err := ScheduleParser.Parse(c.Reload.Schedule); err != nil {
			return fmt.Errorf("RELOAD_SCHEDULE is invalid: %w", err)
		}
	}
	if c.Reload.WatchFile && !c.Catalog.IsLocalFile() {
		return fmt.Errorf("RELOAD_WATCH_FILE requires a file or duckdb catalog source")
	}
	if c.Reload.Debounce < 0 {
		return fmt.Errorf("RELOAD_DEBOUNCE must not be negative")
	}
	if c.Reload.MinInterval < 0 {
		return fmt.Errorf("RELOAD_MIN_INTERVAL must not be negative")
	}
	if c.Reload.StartupRetry <= 0 {
		return fmt.Errorf("RELOAD_STARTUP_RETRY must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window

	minAdminTokenLength = 16
)

// validateSecurity validates security configuration
func (c *Config) validateSecurity() error {
	if c.IsProduction() && c.Security.AdminToken == "" {
		return fmt.Errorf("ADMIN_TOKEN is required when ENVIRONMENT=production")
	}
	if c.Security.AdminToken != "" && len(c.Security.AdminToken) < minAdminTokenLength {
		return fmt.Errorf("ADMIN_TOKEN must be at least %d characters", minAdminTokenLength)
	}
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com")
	}
	return c.validateRateLimits()
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}
