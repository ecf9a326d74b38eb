package scoring

import (
	"errors"
	"fmt"

	"github.com/okian/talentgrid/internal/domain/model"
)

// Sentinel kinds for scoring errors. Typed errors below match them with errors.Is.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyScope    = errors.New("empty scope")
	ErrInvalidConfig = errors.New("invalid scoring config")
)

// InvalidInputError reports a missing or out-of-range employee field.
// It is returned to the caller and never retried.
type InvalidInputError struct {
	EmployeeID string
	Field      string
	Reason     string
}

func (e *InvalidInputError) Error() string {
	if e.EmployeeID == "" {
		return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid input for %s: %s: %s", e.EmployeeID, e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// EmptyScopeError reports an aggregation over a scope with no results.
type EmptyScopeError struct {
	Scope model.Scope
}

func (e *EmptyScopeError) Error() string {
	return "empty scope: no score results match " + e.Scope.String()
}

// Is lets errors.Is(err, ErrEmptyScope) match.
func (e *EmptyScopeError) Is(target error) bool { return target == ErrEmptyScope }
