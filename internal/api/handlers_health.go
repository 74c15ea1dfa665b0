// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/dramarec/internal/models"
)

// Health handles GET /health. It always answers 200; model_loaded reports
// whether recommendations can be served.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	st := h.engine.Status()

	status := "healthy"
	if !st.Ready {
		status = "starting"
	} else if st.LastError != "" {
		status = "degraded"
	}

	respondSuccess(w, http.StatusOK, models.HealthStatus{
		Status:         status,
		Version:        h.version,
		ModelLoaded:    st.Ready,
		Items:          st.Items,
		VocabularySize: st.VocabularySize,
		Dimension:      st.Dimension,
		SnapshotVer:    st.Version,
		Source:         st.Source,
		BuiltAt:        st.BuiltAt,
		LastError:      st.LastError,
		Uptime:         time.Since(h.startTime).Seconds(),
	}, start, st.Version)
}

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now(), 0)
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 OK only once a snapshot is published.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	st := h.engine.Status()

	checks := map[string]string{"snapshot": "ok"}
	if !st.Ready {
		checks["snapshot"] = "not loaded"
		w.Header().Set("Retry-After", strconv.Itoa(notReadyRetryAfter))
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status: models.StatusError,
			Data:   models.ReadinessStatus{Ready: false, Checks: checks},
			Metadata: models.Metadata{
				Timestamp: time.Now().UTC(),
			},
			Error: &models.APIError{
				Code:    codeNotReady,
				Message: "Recommendation index is still loading",
			},
		})
		return
	}

	respondSuccess(w, http.StatusOK, models.ReadinessStatus{Ready: true, Checks: checks}, start, st.Version)
}
