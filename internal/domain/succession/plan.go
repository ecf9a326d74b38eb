package succession

import (
	"fmt"
	"strings"

	"github.com/okian/talentgrid/internal/domain/model"
)

const (
	vacancyRiskCutoff      = 70.0
	maxHighRiskRoles       = 10
	maxRecommendations     = 5
	coverageRecommendation = 80.0
)

// Bench strength labels.
const (
	BenchStrong   = "Strong - Well-prepared succession pipeline"
	BenchGood     = "Good - Most roles covered, some development needed"
	BenchModerate = "Moderate - Gaps exist, accelerate development"
	BenchWeak     = "Weak - Significant succession risk, immediate action needed"
)

// CriticalRole is a role whose vacancy would materially hurt the business.
type CriticalRole struct {
	RoleID      string  `json:"role_id"`
	Title       string  `json:"title"`
	Department  string  `json:"department,omitempty"`
	IncumbentID string  `json:"incumbent_id,omitempty"`
	VacancyRisk float64 `json:"vacancy_risk"` // 0-100
}

// Successor is a scored candidate for a critical role.
type Successor struct {
	EmployeeID string               `json:"employee_id"`
	Readiness  model.ReadinessLevel `json:"readiness"`
	FlightRisk float64              `json:"flight_risk"`
}

// RoleCoverage summarizes the successor bench for one role.
type RoleCoverage struct {
	RoleID     string      `json:"role_id"`
	Title      string      `json:"title"`
	Successors []Successor `json:"successors"`
	ReadyNow   int         `json:"ready_now"`
	HighRisk   bool        `json:"high_risk"`
}

// Plan is a succession plan over a set of critical roles.
type Plan struct {
	Roles            []RoleCoverage `json:"roles"`
	Coverage         float64        `json:"coverage"`
	ReadyNowCoverage float64        `json:"ready_now_coverage"`
	HighRiskRoles    []string       `json:"high_risk_roles"`
	BenchStrength    string         `json:"bench_strength"`
	Recommendations  []string       `json:"recommendations"`
}

// BuildPlan computes coverage, bench strength and high-risk roles. successors
// is keyed by role ID.
func BuildPlan(roles []CriticalRole, successors map[string][]Successor) Plan {
	plan := Plan{Roles: make([]RoleCoverage, 0, len(roles))}
	if len(roles) == 0 {
		plan.BenchStrength = BenchStrength(0, 0)
		plan.Recommendations = recommendations(plan, 0)
		return plan
	}

	covered, readyNowRoles, singles := 0, 0, 0
	for _, role := range roles {
		bench := successors[role.RoleID]
		rc := RoleCoverage{RoleID: role.RoleID, Title: role.Title, Successors: bench}
		nearTerm := false
		for _, s := range bench {
			switch s.Readiness {
			case model.ReadyNow:
				rc.ReadyNow++
				nearTerm = true
			case model.Ready1Year:
				nearTerm = true
			}
		}
		if len(bench) > 0 {
			covered++
		}
		if len(bench) == 1 {
			singles++
		}
		if rc.ReadyNow > 0 {
			readyNowRoles++
		}
		rc.HighRisk = len(bench) == 0 || role.VacancyRisk > vacancyRiskCutoff || !nearTerm
		if rc.HighRisk && len(plan.HighRiskRoles) < maxHighRiskRoles {
			plan.HighRiskRoles = append(plan.HighRiskRoles, role.Title)
		}
		plan.Roles = append(plan.Roles, rc)
	}

	n := float64(len(roles))
	plan.Coverage = float64(covered) / n * 100
	plan.ReadyNowCoverage = float64(readyNowRoles) / n * 100
	plan.BenchStrength = BenchStrength(plan.Coverage, plan.ReadyNowCoverage)
	plan.Recommendations = recommendations(plan, singles)
	return plan
}

// BenchStrength labels a pipeline from its coverage percentages.
func BenchStrength(coverage, readyNow float64) string {
	switch {
	case coverage >= 90 && readyNow >= 70:
		return BenchStrong
	case coverage >= 75 && readyNow >= 50:
		return BenchGood
	case coverage >= 50:
		return BenchModerate
	default:
		return BenchWeak
	}
}

func recommendations(plan Plan, singles int) []string {
	var out []string
	if len(plan.HighRiskRoles) > 0 {
		out = append(out, fmt.Sprintf("Address %d high-risk roles: %s",
			len(plan.HighRiskRoles), strings.Join(first(plan.HighRiskRoles, 3), ", ")))
	}
	if plan.Coverage < coverageRecommendation {
		out = append(out, "Identify additional succession candidates for coverage")
	}
	if singles > 0 {
		out = append(out, fmt.Sprintf("Develop backup successors for %d roles", singles))
	}
	out = append(out, "Conduct annual succession review with leadership")
	return first(out, maxRecommendations)
}
