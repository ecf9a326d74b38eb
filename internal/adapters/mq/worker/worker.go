package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/talentgrid/internal/adapters/mq/queue"
	"github.com/okian/talentgrid/internal/domain/model"
	"github.com/okian/talentgrid/pkg/logger"
	"github.com/okian/talentgrid/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	metricsUpdateInterval   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Store persists score results.
type Store interface {
	Put(ctx context.Context, result model.ScoreResult) (bool, error)
}

// Scorer computes a ScoreResult for a record.
type Scorer interface {
	Score(rec model.EmployeeRecord) (model.ScoreResult, error)
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(rec model.EmployeeRecord) (model.ScoreResult, error)

// Score calls f.
func (f ScorerFunc) Score(rec model.EmployeeRecord) (model.ScoreResult, error) { //nolint:gocritic // hugeParam: records are immutable values
	return f(rec)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// FailureHandler is told about a job that was dropped.
type FailureHandler func(ctx context.Context, job queue.Job, err error)

// Worker processes jobs and stores their score results.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue     Queue
	scorer    Scorer
	store     Store
	name      string
	onFailure FailureHandler

	// active and processed are shared with the owning pool when there is one.
	active    *atomic.Int64
	processed *atomic.Int64

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, scorer Scorer, store Store, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		scorer:    scorer,
		store:     store,
		name:      "worker",
		active:    new(atomic.Int64),
		processed: new(atomic.Int64),
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			w.active.Add(1)
			err := w.processJob(ctx, job)
			w.active.Add(-1)
			if err != nil {
				w.logger.Error(ctx, "error processing record", logger.Error(err))
				if w.onFailure != nil {
					w.onFailure(ctx, job, err)
				}
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Processed returns how many jobs this worker stored.
func (w *InMemoryWorker) Processed() int64 {
	return w.processed.Load()
}

func (w *InMemoryWorker) processJob(ctx context.Context, job queue.Job) error { //nolint:gocritic // hugeParam: jobs are passed by value through the channel
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	scoreStart := time.Now()
	result, err := w.scorer.Score(job.Record)
	metrics.RecordScoringLatency(float64(time.Since(scoreStart).Microseconds()) / 1000)
	if err != nil {
		metrics.RecordRecordInvalid()
		metrics.RecordErrorByComponent("worker", "scoring_error")
		return fmt.Errorf("failed to score %s: %w", job.Record.Key(), err)
	}

	if _, err := w.store.Put(ctx, result); err != nil {
		metrics.RecordErrorByComponent("worker", "store_error")
		return fmt.Errorf("failed to store %s: %w", job.Record.Key(), err)
	}

	metrics.RecordRecordScored()
	w.processed.Add(1)
	w.logger.Debug(ctx, "record scored",
		logger.String("employee_id", result.EmployeeID),
		logger.String("cycle", result.Cycle),
		logger.Float64("flight_risk", result.FlightRisk),
		logger.Duration("queued_for", start.Sub(job.EnqueuedAt)),
	)
	return nil
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers         []*InMemoryWorker
	queue           Queue
	onFailure       FailureHandler
	metricsInterval time.Duration

	active    atomic.Int64
	processed atomic.Int64

	shutdown chan struct{}

	logger logger.Logger
}

// NewPool creates a pool of workerCount workers. A non-positive count uses
// twice the number of CPUs.
func NewPool(workerCount int, q Queue, scorer Scorer, store Store, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers:         make([]*InMemoryWorker, workerCount),
		queue:           q,
		metricsInterval: metricsUpdateInterval,
		shutdown:        make(chan struct{}),
		logger:          logger.Get().Named("worker-pool"),
	}
	for _, opt := range opts {
		opt(p)
	}

	for i := 0; i < workerCount; i++ {
		w := NewInMemoryWorker(q, scorer, store,
			WithName("worker-"+strconv.Itoa(i)),
			WithFailureHandler(p.onFailure),
		)
		w.active = &p.active
		w.processed = &p.processed
		p.workers[i] = w
	}

	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(0)
	metrics.UpdateWorkerIdleCount(workerCount)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Processed returns how many jobs the pool has stored.
func (p *Pool) Processed() int64 { return p.processed.Load() }

// Active returns how many workers are currently busy.
func (p *Pool) Active() int { return int(p.active.Load()) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	go p.startMetricsUpdater(ctx)
}

func (p *Pool) startMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(p.metricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case <-ticker.C:
			active := p.Active()
			metrics.UpdateWorkerActiveCount(active)
			metrics.UpdateWorkerIdleCount(len(p.workers) - active)
		}
	}
}

// Shutdown closes the queue, lets workers drain what is left and waits for
// them until ctx or the pool timeout expires.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	select {
	case <-p.shutdown:
		return nil
	default:
		close(p.shutdown)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("pool shutdown: %w", shutdownCtx.Err())
		}
	}
	return nil
}
