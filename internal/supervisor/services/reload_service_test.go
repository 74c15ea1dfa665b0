// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/dramarec/internal/catalog"
	"github.com/tomtom215/dramarec/internal/metrics"
	"github.com/tomtom215/dramarec/internal/recommend"
)

// fakeEngine fails the first failFirst reloads, then succeeds. When block
// is set each reload waits for it to be closed.
type fakeEngine struct {
	ready     atomic.Bool
	calls     atomic.Int32
	failFirst int32
	err       error
	block     chan struct{}
}

func (f *fakeEngine) Reload(ctx context.Context) (*recommend.Snapshot, error) {
	n := f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if n <= f.failFirst {
		return nil, errors.New("catalog source unavailable")
	}
	cat, err := catalog.New([]catalog.DramaRecord{{Title: "Goblin"}})
	if err != nil {
		return nil, err
	}
	f.ready.Store(true)
	return &recommend.Snapshot{Catalog: cat, Version: int64(n)}, nil
}

func (f *fakeEngine) Ready() bool {
	return f.ready.Load()
}

// everySchedule fires at a fixed sub-second interval.
type everySchedule time.Duration

func (e everySchedule) Next(t time.Time) time.Time {
	return t.Add(time.Duration(e))
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func serveInBackground(t *testing.T, svc suture.Service) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Serve(ctx)
	}()
	t.Cleanup(cancel)
	return cancel, errCh
}

func TestReloadService_StartupRetries(t *testing.T) {
	engine := &fakeEngine{failFirst: 2}
	svc := NewReloadService(engine, ReloadServiceConfig{StartupRetry: 10 * time.Millisecond}, zerolog.Nop())

	failures := metrics.CatalogReloadsTotal.WithLabelValues(TriggerStartup, "failure")
	before := testutil.ToFloat64(failures)

	cancel, errCh := serveInBackground(t, svc)
	waitFor(t, "engine ready", engine.Ready)

	if got := engine.calls.Load(); got != 3 {
		t.Errorf("reload calls = %d, want 3", got)
	}
	if got := testutil.ToFloat64(failures) - before; got != 2 {
		t.Errorf("startup failures recorded = %v, want 2", got)
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
}

func TestReloadService_NoSourceStopsService(t *testing.T) {
	engine := &fakeEngine{err: recommend.ErrNoSource}
	svc := NewReloadService(engine, ReloadServiceConfig{}, zerolog.Nop())

	err := svc.Serve(context.Background())
	if !errors.Is(err, recommend.ErrNoSource) {
		t.Errorf("Serve() = %v, want ErrNoSource", err)
	}
	if !errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("Serve() = %v, want ErrDoNotRestart", err)
	}
}

func TestReloadService_SkipsStartupWhenReady(t *testing.T) {
	engine := &fakeEngine{}
	engine.ready.Store(true)
	svc := NewReloadService(engine, ReloadServiceConfig{}, zerolog.Nop())

	cancel, errCh := serveInBackground(t, svc)
	time.Sleep(30 * time.Millisecond)
	cancel()
	<-errCh

	if got := engine.calls.Load(); got != 0 {
		t.Errorf("reload calls = %d, want 0", got)
	}
}

func TestReloadService_TriggerInProgress(t *testing.T) {
	engine := &fakeEngine{block: make(chan struct{})}
	engine.ready.Store(true)
	svc := NewReloadService(engine, ReloadServiceConfig{}, zerolog.Nop())
	serveInBackground(t, svc)

	if err := svc.TriggerReload(TriggerAPI); err != nil {
		t.Fatalf("first TriggerReload() = %v", err)
	}
	waitFor(t, "reload to start", func() bool { return engine.calls.Load() == 1 })

	if err := svc.TriggerReload(TriggerAPI); !errors.Is(err, recommend.ErrReloadInProgress) {
		t.Errorf("second TriggerReload() = %v, want ErrReloadInProgress", err)
	}

	close(engine.block)
	waitFor(t, "reload to finish", func() bool { return !svc.busy.Load() })

	if err := svc.TriggerReload(TriggerAPI); err != nil {
		t.Errorf("TriggerReload() after finish = %v", err)
	}
	waitFor(t, "second reload", func() bool { return engine.calls.Load() == 2 })
}

func TestReloadService_Throttled(t *testing.T) {
	engine := &fakeEngine{}
	engine.ready.Store(true)
	svc := NewReloadService(engine, ReloadServiceConfig{MinInterval: time.Hour}, zerolog.Nop())
	serveInBackground(t, svc)

	if err := svc.TriggerReload(TriggerAPI); err != nil {
		t.Fatalf("first TriggerReload() = %v", err)
	}
	waitFor(t, "reload to finish", func() bool { return engine.calls.Load() == 1 && !svc.busy.Load() })

	if err := svc.TriggerReload(TriggerFile); !errors.Is(err, recommend.ErrReloadThrottled) {
		t.Errorf("TriggerReload() = %v, want ErrReloadThrottled", err)
	}
	if svc.busy.Load() {
		t.Error("a throttled trigger must not leave the service busy")
	}
}

func TestReloadService_Schedule(t *testing.T) {
	engine := &fakeEngine{}
	engine.ready.Store(true)
	svc := NewReloadService(engine, ReloadServiceConfig{
		Schedule: everySchedule(20 * time.Millisecond),
	}, zerolog.Nop())

	scheduled := metrics.CatalogReloadsTotal.WithLabelValues(TriggerSchedule, "success")
	before := testutil.ToFloat64(scheduled)

	serveInBackground(t, svc)
	waitFor(t, "two scheduled reloads", func() bool { return engine.calls.Load() >= 2 })

	if got := testutil.ToFloat64(scheduled) - before; got < 2 {
		t.Errorf("scheduled successes recorded = %v, want >= 2", got)
	}
}
