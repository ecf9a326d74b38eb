// Package worker drains the ingest queue, scores each record and stores the
// result.
package worker

import (
	"time"

	"github.com/okian/talentgrid/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithFailureHandler registers a callback for jobs that could not be scored
// or stored.
func WithFailureHandler(fn FailureHandler) Option {
	return func(w *InMemoryWorker) {
		w.onFailure = fn
	}
}

// PoolOption applies a configuration option to the Pool.
type PoolOption func(*Pool)

// WithPoolFailureHandler sets the failure handler of every worker in the pool.
func WithPoolFailureHandler(fn FailureHandler) PoolOption {
	return func(p *Pool) {
		p.onFailure = fn
	}
}

// WithMetricsInterval sets how often the pool publishes its gauges.
func WithMetricsInterval(d time.Duration) PoolOption {
	return func(p *Pool) {
		if d > 0 {
			p.metricsInterval = d
		}
	}
}
