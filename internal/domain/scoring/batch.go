package scoring

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/okian/talentgrid/internal/domain/model"
)

// BatchFailure records one record that could not be scored.
type BatchFailure struct {
	Index      int    `json:"index"`
	EmployeeID string `json:"employee_id"`
	Err        error  `json:"-"`
	Message    string `json:"message"`
}

// ScoreAll scores records in parallel. Results keep input order and skip
// failed records; invalid records are reported in failures without aborting
// the batch. Only context cancellation returns an error.
func (e *Engine) ScoreAll(ctx context.Context, records []model.EmployeeRecord) ([]model.ScoreResult, []BatchFailure, error) {
	results := make([]model.ScoreResult, len(records))
	errs := make([]error, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], errs[i] = e.Score(records[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("score batch: %w", err)
	}

	out := make([]model.ScoreResult, 0, len(records))
	var failures []BatchFailure
	for i, err := range errs {
		if err != nil {
			failures = append(failures, BatchFailure{
				Index:      i,
				EmployeeID: records[i].ID,
				Err:        err,
				Message:    err.Error(),
			})
			continue
		}
		out = append(out, results[i])
	}
	return out, failures, nil
}
