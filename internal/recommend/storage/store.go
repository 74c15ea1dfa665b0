// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const keyPrefix = "index/"

// ErrNotFound is returned by Load when no artifact exists for a key.
var ErrNotFound = errors.New("index artifact not found")

// Artifact is the persisted part of a snapshot.
type Artifact struct {
	// Items is the catalog size; Matrix has Items*Items cells.
	Items int

	// Dim is the feature dimension the matrix was computed from.
	Dim int

	// Matrix is the row-major similarity matrix.
	Matrix []float64
}

// Metadata describes a stored artifact.
type Metadata struct {
	Key             string    `json:"key"`
	Fingerprint     string    `json:"fingerprint"`
	EncoderKey      string    `json:"encoder_key"`
	Items           int       `json:"items"`
	Dim             int       `json:"dim"`
	Checksum        string    `json:"checksum"`
	SizeBytes       int64     `json:"size_bytes"`
	BuildDurationMS int64     `json:"build_duration_ms"`
	SavedAt         time.Time `json:"saved_at"`
}

// ArtifactKey combines a catalog fingerprint and encoder settings key.
func ArtifactKey(fingerprint, encoderKey string) string {
	return fingerprint + "@" + encoderKey
}

// Store manages artifact persistence.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens (or creates) a store in dir.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(dir string, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(&badgerLogger{logger: logger})
	return open(opts, logger)
}

// OpenInMemory opens a store that keeps everything in memory.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenInMemory(logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(&badgerLogger{logger: logger})
	return open(opts, logger)
}

//nolint:gocritic // badger options are passed by value by design
func open(opts badger.Options, logger zerolog.Logger) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open index store: %w", err)
	}
	return &Store{db: db, logger: logger.With().Str("component", "index_store").Logger()}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores an artifact. Checksum, SizeBytes, SavedAt and Key in meta are
// filled in by Save.
//
//nolint:gocritic // meta passed by value is acceptable for this write operation
func (s *Store) Save(ctx context.Context, meta Metadata, art *Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(art.Matrix) != art.Items*art.Items {
		return fmt.Errorf("artifact matrix has %d cells for %d items", len(art.Matrix), art.Items)
	}

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(art); err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	sum := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return fmt.Errorf("compress artifact: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta.Key = ArtifactKey(meta.Fingerprint, meta.EncoderKey)
	meta.Items = art.Items
	meta.Dim = art.Dim
	meta.Checksum = hex.EncodeToString(sum[:])
	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now().UTC()

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(dataKey(meta.Key), compressed.Bytes()); err != nil {
			return fmt.Errorf("set data: %w", err)
		}
		if err := txn.Set(metaKey(meta.Key), metaJSON); err != nil {
			return fmt.Errorf("set metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Debug().
		Str("key", meta.Key).
		Int("items", meta.Items).
		Int64("size_bytes", meta.SizeBytes).
		Msg("saved index artifact")
	return nil
}

// Load returns the artifact stored under key.
func (s *Store) Load(ctx context.Context, key string) (*Artifact, *Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var meta Metadata
	var compressed []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get metadata: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		}); err != nil {
			return fmt.Errorf("decode metadata: %w", err)
		}

		item, err = txn.Get(dataKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get data: %w", err)
		}
		compressed, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	gzr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress artifact: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed artifact: %w", err)
	}

	sum := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(sum[:]); checksum != meta.Checksum {
		return nil, nil, fmt.Errorf("checksum mismatch: expected %s, got %s", meta.Checksum, checksum)
	}

	var art Artifact
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&art); err != nil {
		return nil, nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &art, &meta, nil
}

// List returns metadata for all stored artifacts, newest first.
func (s *Store) List(ctx context.Context) ([]Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []Metadata
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			if !strings.HasSuffix(string(item.Key()), "/meta") {
				continue
			}
			var meta Metadata
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &meta)
			}); err != nil {
				return fmt.Errorf("decode metadata %s: %w", item.Key(), err)
			}
			out = append(out, meta)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].SavedAt.After(out[j].SavedAt)
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// Prune deletes all but the keep most recently saved artifacts and returns
// how many were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 1 {
		keep = 1
	}
	all, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(all) <= keep {
		return 0, nil
	}

	stale := all[keep:]
	err = s.db.Update(func(txn *badger.Txn) error {
		for i := range stale {
			if err := txn.Delete(metaKey(stale[i].Key)); err != nil {
				return err
			}
			if err := txn.Delete(dataKey(stale[i].Key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("prune artifacts: %w", err)
	}
	return len(stale), nil
}

func metaKey(key string) []byte {
	return []byte(keyPrefix + key + "/meta")
}

func dataKey(key string) []byte {
	return []byte(keyPrefix + key + "/data")
}

// badgerLogger routes badger's internal logging to zerolog. Badger's info
// output is chatty, so it is logged at debug level.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(strings.TrimSpace(format), args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(strings.TrimSpace(format), args...)
}
