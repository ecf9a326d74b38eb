package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/talentgrid/internal/domain/forecast"
	"github.com/okian/talentgrid/internal/domain/model"
	"github.com/okian/talentgrid/internal/domain/scoring"
	"github.com/okian/talentgrid/internal/domain/succession"
	"github.com/okian/talentgrid/internal/domain/types"
)

// GetScore returns the stored result for an employee. An empty cycle selects
// the latest cycle.
func (s *Service) GetScore(ctx context.Context, cycle, employeeID string) (model.ScoreResult, error) {
	if !s.isStarted() {
		return model.ScoreResult{}, ErrNotStarted
	}
	return s.store.Get(ctx, cycle, employeeID)
}

// Summary aggregates the stored results inside scope. An empty cycle counts
// each employee once, at their latest cycle. It returns
// *scoring.EmptyScopeError when nothing matches.
func (s *Service) Summary(ctx context.Context, cycle string, scope model.Scope) (model.AggregateSummary, error) {
	if !s.isStarted() {
		return model.AggregateSummary{}, ErrNotStarted
	}
	return scoring.Aggregate(s.store.List(ctx, cycle, scope), scope)
}

// AtRisk returns the n employees most likely to leave. An empty cycle ranks
// each employee's latest result.
func (s *Service) AtRisk(ctx context.Context, cycle string, n int) ([]types.RiskEntry, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.store.TopAtRisk(ctx, cycle, n)
}

// SuccessionRequest names the critical roles to plan for.
type SuccessionRequest struct {
	Cycle string                    `json:"cycle,omitempty"`
	Roles []succession.CriticalRole `json:"roles"`
}

// SuccessionPlan builds the successor bench of each role from stored scores.
// An employee is a successor when their target role matches the role ID or
// title. Incumbents are never their own successor.
func (s *Service) SuccessionPlan(ctx context.Context, req SuccessionRequest) (succession.Plan, error) {
	if !s.isStarted() {
		return succession.Plan{}, ErrNotStarted
	}
	for i, r := range req.Roles {
		if strings.TrimSpace(r.RoleID) == "" {
			return succession.Plan{}, fmt.Errorf("%w: roles[%d] has no role_id", ErrInvalidRequest, i)
		}
	}

	results := s.store.List(ctx, req.Cycle, model.Scope{})
	benches := make(map[string][]succession.Successor, len(req.Roles))
	for _, role := range req.Roles {
		var bench []succession.Successor
		for _, r := range results {
			if r.TargetRole == "" || r.EmployeeID == role.IncumbentID {
				continue
			}
			if !strings.EqualFold(r.TargetRole, role.RoleID) && !strings.EqualFold(r.TargetRole, role.Title) {
				continue
			}
			bench = append(bench, succession.Successor{
				EmployeeID: r.EmployeeID,
				Readiness:  r.Readiness,
				FlightRisk: r.FlightRisk,
			})
		}
		slices.SortFunc(bench, func(a, b succession.Successor) int {
			if d := readinessRank(a.Readiness) - readinessRank(b.Readiness); d != 0 {
				return d
			}
			if a.FlightRisk != b.FlightRisk {
				if a.FlightRisk < b.FlightRisk {
					return -1
				}
				return 1
			}
			return strings.Compare(a.EmployeeID, b.EmployeeID)
		})
		benches[role.RoleID] = bench
	}
	return succession.BuildPlan(req.Roles, benches), nil
}

func readinessRank(l model.ReadinessLevel) int {
	if i := slices.Index(model.ReadinessLevels, l); i >= 0 {
		return i
	}
	return len(model.ReadinessLevels)
}

// Forecast projects headcount for req. When req has no attrition rate, the
// average flight risk of the organization's stored scores is used as the
// annual attrition percentage, falling back to the configured default.
func (s *Service) Forecast(ctx context.Context, req forecast.Request) (forecast.Plan, error) {
	if req.AttritionRate <= 0 && s.isStarted() {
		if rate, ok := s.observedAttrition(ctx, req.Organization); ok {
			req.AttritionRate = rate
		}
	}
	return s.planner.Plan(req)
}

func (s *Service) observedAttrition(ctx context.Context, organization string) (float64, bool) {
	summary, err := scoring.Aggregate(s.store.List(ctx, "", model.Scope{Organization: organization}),
		model.Scope{Organization: organization})
	if err != nil || summary.AverageFlightRisk <= 0 {
		return 0, false
	}
	return summary.AverageFlightRisk * 100, true
}
