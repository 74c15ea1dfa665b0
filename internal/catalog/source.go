// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Source kinds accepted by NewSource.
const (
	SourceFile   = "file"
	SourceDuckDB = "duckdb"
	SourceS3     = "s3"
)

// Source loads the raw, ordered record list for a catalog.
type Source interface {
	// Load returns records in catalog order. IDs on the returned records are ignored.
	Load(ctx context.Context) ([]DramaRecord, error)

	// Name identifies the source in logs and status output.
	Name() string
}

// SourceConfig selects and configures a Source.
type SourceConfig struct {
	// Kind is one of "file", "duckdb" or "s3".
	Kind string

	// Path is the local file for file and duckdb sources.
	Path string

	// Format overrides format detection for duckdb sources: csv, parquet or json.
	Format string

	// Object configures the s3 source.
	Object ObjectConfig
}

// ObjectConfig configures access to an S3-compatible object store.
type ObjectConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Key       string
	UseSSL    bool

	// Timeout bounds a single fetch.
	Timeout time.Duration

	// BreakerFailures is the number of consecutive failures that opens the circuit.
	BreakerFailures uint32

	// BreakerTimeout is how long the circuit stays open before a trial request.
	BreakerTimeout time.Duration
}

// NewSource creates the Source named by cfg.Kind.
func NewSource(cfg SourceConfig) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Kind)) {
	case SourceFile, "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("file source requires a path")
		}
		return NewFileSource(cfg.Path), nil
	case SourceDuckDB:
		if cfg.Path == "" {
			return nil, fmt.Errorf("duckdb source requires a path")
		}
		return NewDuckDBSource(cfg.Path, cfg.Format)
	case SourceS3:
		return NewObjectSource(cfg.Object)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Kind)
	}
}

// detectFormat maps a file extension to a duckdb reader format.
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet", ".pq":
		return "parquet"
	case ".json", ".jsonl", ".ndjson":
		return "json"
	default:
		return "csv"
	}
}
