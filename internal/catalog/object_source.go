// Dramarec - Content-Based K-Drama Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dramarec

package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/dramarec/internal/logging"
	"github.com/tomtom215/dramarec/internal/metrics"
)

// objectFetcher opens a stored object for reading.
type objectFetcher interface {
	Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// minioFetcher adapts a minio client to objectFetcher.
type minioFetcher struct {
	client *minio.Client
}

func (m *minioFetcher) Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy; Stat surfaces missing objects and auth errors up front.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

// ObjectSource reads a JSON array of records from S3-compatible storage.
// Fetches run through a circuit breaker so an unavailable store fails fast
// during repeated reload attempts.
type ObjectSource struct {
	fetcher objectFetcher
	bucket  string
	key     string
	timeout time.Duration
	cb      *gobreaker.CircuitBreaker[[]DramaRecord]
	name    string
}

// NewObjectSource creates an ObjectSource backed by a minio client.
func NewObjectSource(cfg ObjectConfig) (*ObjectSource, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" || cfg.Key == "" {
		return nil, fmt.Errorf("s3 source requires endpoint, bucket and key")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}

	return newObjectSource(&minioFetcher{client: client}, cfg), nil
}

func newObjectSource(fetcher objectFetcher, cfg ObjectConfig) *ObjectSource {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 3
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = time.Minute
	}

	name := "catalog-object-store"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	failures := cfg.BreakerFailures
	cb := gobreaker.NewCircuitBreaker[[]DramaRecord](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= failures
			if trip {
				logging.Warn().Uint32("failures", counts.ConsecutiveFailures).Msg("[CIRCUIT BREAKER] Opening catalog object store circuit")
			}
			return trip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &ObjectSource{
		fetcher: fetcher,
		bucket:  cfg.Bucket,
		key:     cfg.Key,
		timeout: cfg.Timeout,
		cb:      cb,
		name:    name,
	}
}

// Name implements Source.
func (s *ObjectSource) Name() string {
	return "s3://" + s.bucket + "/" + s.key
}

// Load implements Source.
func (s *ObjectSource) Load(ctx context.Context) ([]DramaRecord, error) {
	records, err := s.cb.Execute(func() ([]DramaRecord, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		body, err := s.fetcher.Fetch(fetchCtx, s.bucket, s.key)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", s.Name(), err)
		}
		defer body.Close()

		records, err := DecodeRecords(body)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.Name(), err)
		}
		return records, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(s.name, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(s.name, "success").Inc()
	return records, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
