// Package repository stores score results and serves the flight-risk ranking.
package repository

import (
	"context"

	"github.com/okian/talentgrid/internal/domain/model"
	"github.com/okian/talentgrid/internal/domain/types"
)

// Store provides read/write access to scored employees.
// Results are keyed by (cycle, employee ID).
type Store interface {
	// Put stores result, replacing any earlier result for the same
	// (cycle, employee). It reports whether a result was replaced.
	Put(ctx context.Context, result model.ScoreResult) (bool, error)

	// Get returns the stored result for an employee. An empty cycle selects
	// the latest cycle stored for that employee.
	// Returns ErrNotFound if nothing is stored.
	Get(ctx context.Context, cycle, employeeID string) (model.ScoreResult, error)

	// List returns every result inside scope, ordered by flight risk desc.
	// An empty cycle selects each employee's latest cycle, as Get does.
	List(ctx context.Context, cycle string, scope model.Scope) []model.ScoreResult

	// TopAtRisk returns the n employees most likely to leave, ordered by
	// flight risk desc then employee ID asc. An empty cycle selects each
	// employee's latest cycle.
	TopAtRisk(ctx context.Context, cycle string, n int) ([]types.RiskEntry, error)

	// Count returns the number of stored results.
	Count(ctx context.Context) int
}
