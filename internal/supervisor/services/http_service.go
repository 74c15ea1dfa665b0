// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const defaultDrainTimeout = 10 * time.Second

// APIServer is the part of *http.Server the API service drives.
type APIServer interface {
	Serve(ln net.Listener) error
	Shutdown(ctx context.Context) error
}

// APIService serves the recommendation API under the supervisor tree.
//
// Each run binds its own listener, so a port conflict fails the run
// immediately and the logged address is the one actually bound. On
// cancellation in-flight requests get drainTimeout to finish.
type APIService struct {
	addr         string
	server       APIServer
	drainTimeout time.Duration
	logger       zerolog.Logger
	bound        atomic.Pointer[string]
}

// NewAPIService creates the service for server listening on addr. A
// non-positive drainTimeout falls back to 10s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAPIService(addr string, server APIServer, drainTimeout time.Duration, logger zerolog.Logger) *APIService {
	if drainTimeout <= 0 {
		drainTimeout = defaultDrainTimeout
	}
	return &APIService{
		addr:         addr,
		server:       server,
		drainTimeout: drainTimeout,
		logger:       logger.With().Str("service", "api").Logger(),
	}
}

// Addr returns the bound address of the current run, or "" when the
// service is not listening.
func (s *APIService) Addr() string {
	if p := s.bound.Load(); p != nil {
		return *p
	}
	return ""
}

// Serve implements suture.Service.
func (s *APIService) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	addr := ln.Addr().String()
	s.bound.Store(&addr)
	defer s.bound.Store(nil)

	s.logger.Info().Str("addr", addr).Msg("HTTP server listening")

	served := make(chan error, 1)
	go func() {
		served <- s.server.Serve(ln)
	}()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server on %s: %w", addr, err)

	case <-ctx.Done():
	}

	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.drainTimeout)
	defer cancel()

	s.logger.Info().Dur("timeout", s.drainTimeout).Msg("Draining HTTP connections")
	shutdownErr := s.server.Shutdown(drainCtx)
	<-served
	if shutdownErr != nil {
		return fmt.Errorf("http server drain: %w", shutdownErr)
	}
	s.logger.Info().Msg("HTTP server stopped")
	return ctx.Err()
}

func (s *APIService) String() string {
	return "api-http"
}
