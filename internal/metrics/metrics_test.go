// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/recommend", "200"))
	RecordAPIRequest("POST", "/recommend", "200", 3*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/recommend", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []string{"ok", "invalid", "not_found", "not_ready", "error"}
	for _, outcome := range tests {
		before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(outcome))
		RecordRecommendation(outcome, time.Millisecond)
		if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(outcome)) - before; got != 1 {
			t.Errorf("outcome %s delta = %v, want 1", outcome, got)
		}
	}
}

func TestRecordSnapshotBuild(t *testing.T) {
	RecordSnapshotBuild("success", time.Second, 120, 3400, 7)
	if got := testutil.ToFloat64(CatalogItems); got != 120 {
		t.Errorf("catalog items = %v, want 120", got)
	}
	if got := testutil.ToFloat64(SnapshotVersion); got != 7 {
		t.Errorf("snapshot version = %v, want 7", got)
	}

	RecordSnapshotBuild("failure", time.Second, 0, 0, 0)
	if got := testutil.ToFloat64(CatalogItems); got != 120 {
		t.Errorf("failed build changed catalog items to %v", got)
	}
}

func TestRecordCatalogReload(t *testing.T) {
	before := testutil.ToFloat64(CatalogReloadsTotal.WithLabelValues("api", "failure"))
	RecordCatalogReload("api", errors.New("boom"))
	if got := testutil.ToFloat64(CatalogReloadsTotal.WithLabelValues("api", "failure")) - before; got != 1 {
		t.Errorf("reload failure delta = %v, want 1", got)
	}
}

func TestRecordTitleMatch(t *testing.T) {
	before := testutil.ToFloat64(TitleMatchesTotal.WithLabelValues("fuzzy"))
	RecordTitleMatch("fuzzy")
	if got := testutil.ToFloat64(TitleMatchesTotal.WithLabelValues("fuzzy")) - before; got != 1 {
		t.Errorf("fuzzy delta = %v, want 1", got)
	}
}
