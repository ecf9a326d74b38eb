package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/okian/talentgrid/internal/adapters/mq/queue"
	"github.com/okian/talentgrid/internal/domain/scoring"
	"github.com/okian/talentgrid/pkg/logger"
	"github.com/okian/talentgrid/pkg/metrics"
)

// ImportResult reports what happened to each record of an imported cycle.
type ImportResult struct {
	JobID      string                 `json:"job_id"`
	Cycle      string                 `json:"cycle"`
	Loaded     int                    `json:"loaded"`
	Accepted   int                    `json:"accepted"`
	Duplicates int                    `json:"duplicates"`
	Rejected   int                    `json:"rejected"` // dropped by backpressure
	Invalid    []scoring.BatchFailure `json:"invalid,omitempty"`
	Duration   string                 `json:"duration"`
}

// Import loads cycle from the record source, validates it in parallel and
// queues every valid record. Records rejected by a full queue are counted
// and can be imported again later.
func (s *Service) Import(ctx context.Context, cycle string) (ImportResult, error) {
	cycle = strings.TrimSpace(cycle)
	if cycle == "" {
		return ImportResult{}, goerr.Wrap(ErrInvalidRequest, "cycle is required")
	}
	if s.source == nil {
		metrics.RecordImport("unavailable")
		return ImportResult{}, ErrImportUnavailable
	}
	if !s.isStarted() {
		return ImportResult{}, ErrNotStarted
	}

	start := time.Now()
	res := ImportResult{JobID: uuid.NewString(), Cycle: cycle}
	log := s.logger.Named("import")

	records, err := s.source.LoadCycle(ctx, cycle)
	if err != nil {
		metrics.RecordImport("failed")
		return res, goerr.Wrap(err, "failed to load cycle", goerr.V("cycle", cycle), goerr.V("job_id", res.JobID))
	}
	res.Loaded = len(records)

	_, failures, err := s.engine.Load().ScoreAll(ctx, records)
	if err != nil {
		metrics.RecordImport("canceled")
		return res, goerr.Wrap(err, "import interrupted", goerr.V("cycle", cycle), goerr.V("job_id", res.JobID))
	}
	res.Invalid = failures
	invalid := make(map[int]struct{}, len(failures))
	for _, f := range failures {
		invalid[f.Index] = struct{}{}
		metrics.RecordRecordInvalid()
	}

	for i := range records {
		if _, bad := invalid[i]; bad {
			continue
		}
		dup, err := s.enqueue(ctx, records[i], "import")
		switch {
		case err == nil && dup:
			res.Duplicates++
		case err == nil:
			res.Accepted++
		case errors.Is(err, queue.ErrFull):
			res.Rejected++
		default:
			metrics.RecordImport("failed")
			return res, goerr.Wrap(err, "failed to queue record", goerr.V("employee_id", records[i].ID), goerr.V("job_id", res.JobID))
		}
	}

	res.Duration = time.Since(start).String()
	status := "ok"
	if res.Rejected > 0 {
		status = "partial"
	}
	metrics.RecordImport(status)
	log.Info(ctx, "cycle imported",
		logger.String("job_id", res.JobID),
		logger.String("cycle", cycle),
		logger.Int("loaded", res.Loaded),
		logger.Int("accepted", res.Accepted),
		logger.Int("duplicates", res.Duplicates),
		logger.Int("invalid", len(res.Invalid)),
		logger.Int("rejected", res.Rejected),
	)
	return res, nil
}
