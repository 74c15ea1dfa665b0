// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package catalog

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

type fakeFetcher struct {
	body  string
	err   error
	calls atomic.Int32
}

func (f *fakeFetcher) Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func TestObjectSource_Load(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: `[{"title":"Goblin","genres":["Fantasy"]}]`}
	src := newObjectSource(fetcher, ObjectConfig{Bucket: "catalogs", Key: "kdrama.json"})

	records, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(records) != 1 || records[0].Title != "Goblin" {
		t.Errorf("records = %+v", records)
	}
	if src.Name() != "s3://catalogs/kdrama.json" {
		t.Errorf("Name() = %q", src.Name())
	}
}

func TestObjectSource_BreakerOpens(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	src := newObjectSource(fetcher, ObjectConfig{
		Bucket:          "catalogs",
		Key:             "kdrama.json",
		BreakerFailures: 2,
		BreakerTimeout:  time.Hour,
	})

	for i := 0; i < 2; i++ {
		if _, err := src.Load(context.Background()); err == nil {
			t.Fatal("expected fetch error")
		}
	}

	_, err := src.Load(context.Background())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("Load() error = %v, want ErrOpenState", err)
	}
	if got := fetcher.calls.Load(); got != 2 {
		t.Errorf("fetch calls = %d, want 2 (open circuit must not call through)", got)
	}
}

func TestObjectSource_DecodeError(t *testing.T) {
	t.Parallel()

	src := newObjectSource(&fakeFetcher{body: "not json"}, ObjectConfig{Bucket: "b", Key: "k"})
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
