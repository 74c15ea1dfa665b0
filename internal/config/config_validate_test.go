// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }, "HTTP_TIMEOUT"},
		{"unknown environment", func(c *Config) { c.Server.Environment = "qa" }, "ENVIRONMENT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"file without path", func(c *Config) { c.Catalog.Path = "" }, "CATALOG_PATH"},
		{"duckdb bad format", func(c *Config) {
			c.Catalog.Source = "duckdb"
			c.Catalog.Format = "xlsx"
		}, "CATALOG_FORMAT"},
		{"duckdb parquet", func(c *Config) {
			c.Catalog.Source = "duckdb"
			c.Catalog.Format = "Parquet"
		}, ""},
		{"s3 without bucket", func(c *Config) {
			c.Catalog.Source = "s3"
			c.Catalog.Object.Endpoint = "minio:9000"
			c.Catalog.Object.Key = "k.json"
		}, "S3_BUCKET"},
		{"s3 endpoint with scheme", func(c *Config) {
			c.Catalog.Source = "s3"
			c.Catalog.Object.Endpoint = "https://minio:9000"
			c.Catalog.Object.Bucket = "b"
			c.Catalog.Object.Key = "k.json"
		}, "S3_ENDPOINT"},
		{"s3 zero breaker failures", func(c *Config) {
			c.Catalog.Source = "s3"
			c.Catalog.Object.Endpoint = "minio:9000"
			c.Catalog.Object.Bucket = "b"
			c.Catalog.Object.Key = "k.json"
			c.Catalog.Object.BreakerFailures = 0
		}, "S3_BREAKER_FAILURES"},
		{"recommend max below default", func(c *Config) { c.Recommend.MaxN = 1 }, "max_n"},
		{"valid cron", func(c *Config) { c.Reload.Schedule = "0 4 * * *" }, ""},
		{"invalid cron", func(c *Config) { c.Reload.Schedule = "61 * * * *" }, "RELOAD_SCHEDULE"},
		{"watch with s3", func(c *Config) {
			c.Catalog.Source = "s3"
			c.Catalog.Object.Endpoint = "minio:9000"
			c.Catalog.Object.Bucket = "b"
			c.Catalog.Object.Key = "k.json"
			c.Reload.WatchFile = true
		}, "RELOAD_WATCH_FILE"},
		{"zero startup retry", func(c *Config) { c.Reload.StartupRetry = 0 }, "RELOAD_STARTUP_RETRY"},
		{"short admin token", func(c *Config) { c.Security.AdminToken = "short" }, "ADMIN_TOKEN"},
		{"production wildcard cors", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.AdminToken = "0123456789abcdef"
			c.Security.CORSOrigins = []string{"*"}
		}, "CORS_ORIGINS"},
		{"production ok", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.AdminToken = "0123456789abcdef"
		}, ""},
		{"rate limit window too long", func(c *Config) { c.Security.RateLimitWindow = 2 * time.Hour }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		endpoint string
		valid    bool
	}{
		{"s3.amazonaws.com", true},
		{"minio:9000", true},
		{"127.0.0.1:9000", true},
		{"[::1]:9000", true},
		{"", false},
		{"http://minio:9000", false},
		{"minio:9000/bucket", false},
		{"minio:99999", false},
		{":9000", false},
	}
	for _, tt := range tests {
		err := validateEndpoint(tt.endpoint, "S3_ENDPOINT")
		if (err == nil) != tt.valid {
			t.Errorf("validateEndpoint(%q) error = %v, want valid=%v", tt.endpoint, err, tt.valid)
		}
	}
}

func TestRecommendConfig_EngineConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Recommend.MatchThreshold = 65
	cfg.Recommend.Workers = 3

	eng := cfg.Recommend.EngineConfig()
	if err := eng.Validate(); err != nil {
		t.Fatalf("EngineConfig().Validate() error = %v", err)
	}
	if eng.Resolver.MatchThreshold != 65 || eng.Index.Workers != 3 {
		t.Errorf("EngineConfig() = %+v", eng)
	}
	if eng.Limits.DefaultN != 5 || eng.Encoder.TextWeight != 1.0 {
		t.Errorf("EngineConfig() lost defaults: %+v", eng)
	}
}

func TestCatalogConfig_SourceConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Catalog.Source = "s3"
	cfg.Catalog.Object.Bucket = "catalogs"
	cfg.Catalog.Object.BreakerFailures = 7

	src := cfg.Catalog.SourceConfig()
	if src.Kind != "s3" || src.Object.Bucket != "catalogs" || src.Object.BreakerFailures != 7 {
		t.Errorf("SourceConfig() = %+v", src)
	}
	if cfg.Catalog.IsLocalFile() {
		t.Error("s3 source reported as a local file")
	}
	cfg.Catalog.Source = "duckdb"
	if !cfg.Catalog.IsLocalFile() {
		t.Error("duckdb source not reported as a local file")
	}
}
