// Package service wires the scoring engine, the ingest pipeline and the
// consultation gateway into the operations served by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/talentgrid/internal/adapters/mq/queue"
	"github.com/okian/talentgrid/internal/adapters/mq/worker"
	"github.com/okian/talentgrid/internal/adapters/repository"
	"github.com/okian/talentgrid/internal/domain/consult"
	"github.com/okian/talentgrid/internal/domain/dedupe"
	"github.com/okian/talentgrid/internal/domain/diversity"
	"github.com/okian/talentgrid/internal/domain/forecast"
	"github.com/okian/talentgrid/internal/domain/model"
	"github.com/okian/talentgrid/internal/domain/scoring"
	"github.com/okian/talentgrid/pkg/logger"
	"github.com/okian/talentgrid/pkg/metrics"
)

// RecordSource loads the employee records of one evaluation cycle.
type RecordSource interface {
	LoadCycle(ctx context.Context, cycle string) ([]model.EmployeeRecord, error)
}

// Service implements the API dependencies for talentgrid.
type Service struct {
	mu sync.RWMutex

	// engine is replaced wholesale on reload and never mutated.
	engine atomic.Pointer[scoring.Engine]

	store    *repository.TreapStore
	deduper  dedupe.Deduper
	queue    queue.Queue
	pool     *worker.Pool
	gateway  consult.Gateway
	planner  *forecast.Planner
	analyzer *diversity.Analyzer
	source   RecordSource
	sessions *sessions

	// Configuration
	workerCount        int
	queueSize          int
	dedupeSize         int
	batchConcurrency   int
	scoringConfig      scoring.Config
	rawGateway         consult.Gateway
	consultTimeout     time.Duration
	defaultAttrition   float64
	costPerHire        float64
	payEquityThreshold float64

	// State
	started   bool
	startedAt time.Time
	cancel    context.CancelFunc

	logger logger.Logger
}

// New constructs a Service. It fails when the scoring configuration is
// invalid.
func New(opts ...Option) (*Service, error) {
	s := &Service{
		workerCount:      runtime.NumCPU() * 2,
		queueSize:        10_000,
		dedupeSize:       50_000,
		batchConcurrency: runtime.NumCPU(),
		scoringConfig:    scoring.DefaultConfig(),
		rawGateway:       consult.Stub{},
		consultTimeout:   20 * time.Second,
		defaultAttrition: 15,
		costPerHire:      4000,
		sessions:         newSessions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}

	engine, err := scoring.NewEngine(s.scoringConfig, scoring.WithConcurrency(s.batchConcurrency))
	if err != nil {
		return nil, err
	}
	s.engine.Store(engine)
	s.gateway = consult.Bounded(s.rawGateway, s.consultTimeout)
	s.planner = forecast.NewPlanner(
		forecast.WithAttritionRate(s.defaultAttrition),
		forecast.WithCostPerHire(s.costPerHire),
	)
	s.analyzer = diversity.NewAnalyzer(diversity.WithSignificanceThreshold(s.payEquityThreshold))
	return s, nil
}

// Start creates the store, deduper, queue and worker pool and starts the
// workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting talentgrid service...")

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.store = repository.NewTreapStore(runCtx, repository.WithHighRiskLevels(model.HighRiskLevels...))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, worker.ScorerFunc(s.score), s.store,
		worker.WithPoolFailureHandler(s.onJobFailure))
	s.pool.Start(runCtx)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "talentgrid service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop drains the queue and stops the workers.
func (s *Service) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(ctx, "stopping talentgrid service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
	}
	_ = s.store.Close()
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "talentgrid service stopped")
}

// Engine returns the scoring engine currently in use.
func (s *Service) Engine() *scoring.Engine {
	return s.engine.Load()
}

// Reload swaps in an engine built from cfg. An invalid cfg is rejected and
// the running engine is kept. Results already stored are not rescored.
func (s *Service) Reload(ctx context.Context, cfg scoring.Config) error {
	engine, err := scoring.NewEngine(cfg, scoring.WithConcurrency(s.batchConcurrency))
	if err != nil {
		return err
	}
	s.engine.Store(engine)
	s.logger.Info(ctx, "scoring engine reloaded",
		logger.Float64("grid_low", cfg.Grid.Low),
		logger.Float64("grid_high", cfg.Grid.High),
	)
	return nil
}

func (s *Service) score(rec model.EmployeeRecord) (model.ScoreResult, error) { //nolint:gocritic // hugeParam: records are immutable values
	return s.engine.Load().Score(rec)
}

// onJobFailure forgets the dedupe key of a dropped job so it can be resent.
func (s *Service) onJobFailure(ctx context.Context, job queue.Job, err error) { //nolint:gocritic // hugeParam: jobs are values
	s.deduper.Unrecord(ctx, dedupe.Key(job.Record.Cycle, job.Record.ID))
	s.logger.Warn(ctx, "record dropped",
		logger.String("employee_id", job.Record.ID),
		logger.String("cycle", job.Record.Cycle),
		logger.String("source", job.Source),
		logger.Error(err),
	)
}

// Ingest validates rec and queues it for scoring. It reports duplicate when
// the (cycle, employee) pair was already accepted. Validation failures are
// *scoring.InvalidInputError; a full queue returns queue.ErrFull.
func (s *Service) Ingest(ctx context.Context, rec model.EmployeeRecord) (duplicate bool, err error) { //nolint:gocritic // hugeParam: records are immutable values
	return s.ingest(ctx, rec, "http")
}

func (s *Service) ingest(ctx context.Context, rec model.EmployeeRecord, source string) (bool, error) { //nolint:gocritic // hugeParam: records are immutable values
	if !s.isStarted() {
		return false, ErrNotStarted
	}
	if _, err := s.score(rec); err != nil {
		metrics.RecordRecordInvalid()
		return false, err
	}
	return s.enqueue(ctx, rec, source)
}

// enqueue queues an already validated record unless its (cycle, employee)
// pair was accepted before.
func (s *Service) enqueue(ctx context.Context, rec model.EmployeeRecord, source string) (bool, error) { //nolint:gocritic // hugeParam: records are immutable values
	if !s.isStarted() {
		return false, ErrNotStarted
	}

	key := dedupe.Key(rec.Cycle, rec.ID)
	if s.deduper.SeenAndRecord(ctx, key) {
		metrics.RecordRecordDuplicate()
		s.logger.Debug(ctx, "duplicate record, skipping",
			logger.String("employee_id", rec.ID),
			logger.String("cycle", rec.Cycle),
		)
		return true, nil
	}

	if err := s.queue.Enqueue(ctx, queue.Job{Record: rec, Source: source}); err != nil {
		s.deduper.Unrecord(ctx, key)
		return false, fmt.Errorf("enqueue %s: %w", rec.Key(), err)
	}
	metrics.RecordRecordIngested()
	return false, nil
}

// ScoreNow scores rec synchronously without storing it.
func (s *Service) ScoreNow(ctx context.Context, rec model.EmployeeRecord) (model.ScoreResult, error) { //nolint:gocritic // hugeParam: records are immutable values
	start := time.Now()
	result, err := s.score(rec)
	metrics.RecordScoringLatency(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		metrics.RecordRecordInvalid()
		return model.ScoreResult{}, err
	}
	return result, nil
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	cfg := s.engine.Load().Config()
	stats := map[string]any{
		"started":          s.started,
		"workerCount":      s.workerCount,
		"queueSize":        s.queueSize,
		"dedupeSize":       s.dedupeSize,
		"consultTimeoutMs": s.consultTimeout.Milliseconds(),
		"importsEnabled":   s.source != nil,
		"ratingScaleMax":   cfg.RatingScaleMax,
		"sessions":         s.sessions.len(),
	}

	if s.started {
		queueLen := s.queue.Len()
		scored := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["scoredEmployees"] = scored
		stats["dedupeEntries"] = s.deduper.Size()
		stats["processed"] = s.pool.Processed()
		stats["activeWorkers"] = s.pool.Active()
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateScoredEmployees(scored)
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	metrics.UpdateSystemMemoryUsage(mem.HeapInuse)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	return stats
}
