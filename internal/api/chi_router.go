// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/dramarec/internal/config"
	"github.com/tomtom215/dramarec/internal/middleware"
)

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	adminToken    string
}

// NewRouter creates a router using the security section for CORS, rate
// limiting and the admin token.
func NewRouter(handler *Handler, sec *config.SecurityConfig) *Router {
	r := &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFromSecurity(sec)),
	}
	if sec != nil {
		r.adminToken = sec.AdminToken
	}
	return r
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, codeRouteNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed", nil)
	})

	// ========================
	// Health Endpoints
	// ========================
	// Not rate limited so probes never see 429.
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	// ========================
	// Recommendations
	// ========================
	recommendRoutes := func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.Compression)
		r.Get("/", h.RecommendGet)
		r.Post("/", h.RecommendPost)
	}
	r.Route("/recommend", recommendRoutes)

	// ========================
	// Versioned API
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/recommend", recommendRoutes)

		r.Route("/catalog", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Get("/titles", h.CatalogTitles)
			r.Get("/status", h.CatalogStatus)
			r.With(middleware.AdminToken(router.adminToken, unauthorized)).
				Post("/reload", h.CatalogReload)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="dramarec"`)
	respondError(w, http.StatusUnauthorized, codeUnauthorized, "Missing or invalid admin token", nil)
}
