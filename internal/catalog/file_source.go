// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package catalog

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// FileSource reads a JSON array of records from local disk.
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Source.
func (s *FileSource) Name() string {
	return "file:" + s.path
}

// Path returns the file the source reads.
func (s *FileSource) Path() string {
	return s.path
}

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) ([]DramaRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	records, err := DecodeRecords(f)
	if err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", s.path, err)
	}
	return records, nil
}

// DecodeRecords decodes a JSON array of records from r.
func DecodeRecords(r io.Reader) ([]DramaRecord, error) {
	var records []DramaRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}
