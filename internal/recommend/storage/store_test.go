// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory(zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	art := &Artifact{Items: 2, Dim: 5, Matrix: []float64{1, 0.25, 0.25, 1}}

	err := s.Save(ctx, Metadata{Fingerprint: "abc", EncoderKey: "t1", BuildDurationMS: 12}, art)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, meta, err := s.Load(ctx, ArtifactKey("abc", "t1"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Items != 2 || got.Dim != 5 || len(got.Matrix) != 4 || got.Matrix[1] != 0.25 {
		t.Errorf("Load() artifact = %+v", got)
	}
	if meta.Checksum == "" || meta.SizeBytes == 0 {
		t.Errorf("metadata not filled: %+v", meta)
	}
	if meta.Items != 2 || meta.BuildDurationMS != 12 {
		t.Errorf("metadata = %+v", meta)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	_, _, err := s.Load(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestStore_SaveRejectsBadShape(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	err := s.Save(context.Background(), Metadata{Fingerprint: "x"}, &Artifact{Items: 3, Matrix: []float64{1}})
	if err == nil {
		t.Fatal("expected error for mismatched matrix size")
	}
}

func TestStore_ChecksumMismatch(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, Metadata{Fingerprint: "f", EncoderKey: "e"}, &Artifact{Items: 1, Matrix: []float64{1}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Save a second artifact and graft its data under the first key.
	if err := s.Save(ctx, Metadata{Fingerprint: "g", EncoderKey: "e"}, &Artifact{Items: 1, Matrix: []float64{0}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	_, _, err := s.Load(ctx, ArtifactKey("g", "e"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := s.copyData(ArtifactKey("g", "e"), ArtifactKey("f", "e")); err != nil {
		t.Fatalf("copyData() error = %v", err)
	}

	if _, _, err := s.Load(ctx, ArtifactKey("f", "e")); err == nil {
		t.Fatal("expected checksum mismatch error")
	}
}

func TestStore_ListAndPrune(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ctx := context.Background()
	for _, fp := range []string{"a", "b", "c"} {
		if err := s.Save(ctx, Metadata{Fingerprint: fp, EncoderKey: "e"}, &Artifact{Items: 1, Matrix: []float64{1}}); err != nil {
			t.Fatalf("Save(%s) error = %v", fp, err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 || list[0].Fingerprint != "c" {
		t.Fatalf("List() = %+v, want 3 entries newest first", list)
	}

	removed, err := s.Prune(ctx, 1)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("Prune() removed %d, want 2", removed)
	}
	if _, _, err := s.Load(ctx, ArtifactKey("a", "e")); !errors.Is(err, ErrNotFound) {
		t.Errorf("pruned artifact still loadable: %v", err)
	}
	if _, _, err := s.Load(ctx, ArtifactKey("c", "e")); err != nil {
		t.Errorf("newest artifact lost: %v", err)
	}
}
