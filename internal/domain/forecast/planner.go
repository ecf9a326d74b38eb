// Package forecast projects headcount, hiring need and recruiting cost over a
// monthly planning horizon under a named scenario.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidRequest is returned for requests the planner cannot project.
var ErrInvalidRequest = errors.New("invalid forecast request")

// Scenario names a planning scenario.
type Scenario string

// Planning scenarios.
const (
	Baseline     Scenario = "Baseline"
	Growth       Scenario = "Growth"
	Conservative Scenario = "Conservative"
	Aggressive   Scenario = "Aggressive"
	Recession    Scenario = "Recession"
)

type modifier struct {
	growth    float64
	attrition float64
}

var modifiers = map[Scenario]modifier{
	Baseline:     {growth: 1.0, attrition: 1.0},
	Growth:       {growth: 1.2, attrition: 0.9},
	Conservative: {growth: 0.8, attrition: 1.1},
	Aggressive:   {growth: 1.5, attrition: 0.85},
	Recession:    {growth: 0.5, attrition: 1.3},
}

// ParseScenario matches a scenario name case-insensitively. Empty means Baseline.
func ParseScenario(s string) (Scenario, error) {
	if strings.TrimSpace(s) == "" {
		return Baseline, nil
	}
	for sc := range modifiers {
		if strings.EqualFold(string(sc), strings.TrimSpace(s)) {
			return sc, nil
		}
	}
	return "", fmt.Errorf("%w: unknown scenario %q", ErrInvalidRequest, s)
}

// Gap risk levels for a forecast period.
const (
	GapCritical = "Critical"
	GapHigh     = "High"
	GapMedium   = "Medium"
	GapLow      = "Low"
	GapNone     = "None"
)

const (
	defaultHorizon     = 12
	maxHorizon         = 60
	hireFillRate       = 0.7
	minMonthlyHires    = 3
	budgetCallout      = 100_000
	maxRecommendations = 5
)

// Department is a department-level planning input.
type Department struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	CurrentHeadcount int     `json:"current_headcount"`
	TargetHeadcount  int     `json:"target_headcount"`
	AttritionRate    float64 `json:"attrition_rate"` // annual %
	CostPerHire      float64 `json:"cost_per_hire"`
	OpenPositions    int     `json:"open_positions"`
}

// Request is the input to Planner.Plan.
type Request struct {
	Organization     string       `json:"organization"`
	CurrentHeadcount int          `json:"current_headcount"`
	TargetHeadcount  int          `json:"target_headcount"`
	Scenario         Scenario     `json:"scenario"`
	HorizonMonths    int          `json:"horizon_months"`
	GrowthRate       float64      `json:"growth_rate"` // monthly % applied to the target
	AttritionRate    float64      `json:"attrition_rate,omitempty"`
	Departments      []Department `json:"departments,omitempty"`

	// Skill capacity by skill name, in number of people.
	RequiredSkills map[string]int `json:"required_skills,omitempty"`
	CurrentSkills  map[string]int `json:"current_skills,omitempty"`
}

// Period is the projection for one month.
type Period struct {
	Name               string  `json:"period"`
	StartingHeadcount  int     `json:"starting_headcount"`
	ProjectedAttrition int     `json:"projected_attrition"`
	ProjectedHires     int     `json:"projected_hires"`
	EndingHeadcount    int     `json:"ending_headcount"`
	TargetHeadcount    int     `json:"target_headcount"`
	Gap                int     `json:"gap"`
	GapPercentage      float64 `json:"gap_percentage"`
	HiringNeed         int     `json:"hiring_need"`
	CostProjection     float64 `json:"cost_projection"`
	RiskLevel          string  `json:"risk_level"`
}

// Plan is a complete workforce forecast.
type Plan struct {
	Organization        string              `json:"organization,omitempty"`
	Scenario            Scenario            `json:"scenario"`
	HorizonMonths       int                 `json:"horizon_months"`
	AttritionRate       float64             `json:"attrition_rate"`
	Periods             []Period            `json:"periods"`
	Departments         map[string][]Period `json:"departments,omitempty"`
	TotalHiringNeed     int                 `json:"total_hiring_need"`
	TotalCostProjection float64             `json:"total_cost_projection"`
	SkillGaps           []SkillGap          `json:"skill_gaps,omitempty"`
	RiskAssessment      string              `json:"risk_assessment"`
	Recommendations     []string            `json:"recommendations"`
}

// Planner holds the defaults applied when a request leaves them out.
type Planner struct {
	attritionRate float64
	costPerHire   float64
}

// Option configures a Planner.
type Option func(*Planner)

// WithAttritionRate sets the default annual attrition percentage.
func WithAttritionRate(pct float64) Option {
	return func(p *Planner) {
		if pct >= 0 {
			p.attritionRate = pct
		}
	}
}

// WithCostPerHire sets the default recruiting cost per hire.
func WithCostPerHire(cost float64) Option {
	return func(p *Planner) {
		if cost >= 0 {
			p.costPerHire = cost
		}
	}
}

// NewPlanner returns a planner with 15% annual attrition and 4000 per hire
// unless overridden.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{attritionRate: 15, costPerHire: 4000}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan projects the request month by month.
func (p *Planner) Plan(req Request) (Plan, error) {
	if req.CurrentHeadcount < 0 || req.TargetHeadcount < 0 {
		return Plan{}, fmt.Errorf("%w: headcounts must not be negative", ErrInvalidRequest)
	}
	if req.HorizonMonths == 0 {
		req.HorizonMonths = defaultHorizon
	}
	if req.HorizonMonths < 0 || req.HorizonMonths > maxHorizon {
		return Plan{}, fmt.Errorf("%w: horizon_months must be within 1..%d", ErrInvalidRequest, maxHorizon)
	}
	scenario, err := ParseScenario(string(req.Scenario))
	if err != nil {
		return Plan{}, err
	}
	req.Scenario = scenario
	mod := modifiers[scenario]
	attrition := req.AttritionRate
	if attrition <= 0 {
		attrition = p.attritionRate
	}

	plan := Plan{
		Organization:  req.Organization,
		Scenario:      req.Scenario,
		HorizonMonths: req.HorizonMonths,
		AttritionRate: attrition,
		Periods: project(req.CurrentHeadcount, req.TargetHeadcount,
			attrition*mod.attrition, req.GrowthRate*mod.growth, p.costPerHire, req.HorizonMonths),
	}

	if len(req.Departments) > 0 {
		plan.Departments = make(map[string][]Period, len(req.Departments))
		for _, d := range req.Departments {
			rate := d.AttritionRate
			if rate <= 0 {
				rate = attrition
			}
			cost := d.CostPerHire
			if cost <= 0 {
				cost = p.costPerHire
			}
			plan.Departments[d.ID] = project(d.CurrentHeadcount, d.TargetHeadcount,
				rate*mod.attrition, req.GrowthRate*mod.growth, cost, req.HorizonMonths)
		}
	}

	for _, per := range plan.Periods {
		plan.TotalHiringNeed += per.HiringNeed
		plan.TotalCostProjection += per.CostProjection
	}
	plan.SkillGaps = AnalyzeSkillGaps(req.RequiredSkills, req.CurrentSkills)
	plan.RiskAssessment = assessRisk(plan.Periods, plan.SkillGaps, req.Departments)
	plan.Recommendations = recommend(&plan, req.Departments)
	return plan, nil
}

func project(headcount, target int, annualAttrition, growth, costPerHire float64, months int) []Period {
	out := make([]Period, 0, months)
	monthly := annualAttrition / 12 / 100
	for i := 0; i < months; i++ {
		attr := max(1, int(float64(headcount)*monthly))
		periodTarget := int(float64(target) * (1 + growth*float64(i+1)/100))
		afterAttrition := headcount - attr
		need := max(0, periodTarget-afterAttrition)
		hires := min(need, max(minMonthlyHires, int(float64(need)*hireFillRate)))
		ending := afterAttrition + hires
		gap := ending - periodTarget

		var gapPct float64
		if periodTarget > 0 {
			gapPct = float64(gap) / float64(periodTarget) * 100
		}

		out = append(out, Period{
			Name:               fmt.Sprintf("Month %d", i+1),
			StartingHeadcount:  headcount,
			ProjectedAttrition: attr,
			ProjectedHires:     hires,
			EndingHeadcount:    ending,
			TargetHeadcount:    periodTarget,
			Gap:                gap,
			GapPercentage:      math.Round(gapPct*10) / 10,
			HiringNeed:         need,
			CostProjection:     float64(hires) * costPerHire,
			RiskLevel:          gapRisk(gapPct),
		})
		headcount = ending
	}
	return out
}

func gapRisk(pct float64) string {
	switch {
	case pct < -15:
		return GapCritical
	case pct < -10:
		return GapHigh
	case pct < -5:
		return GapMedium
	case pct < 0:
		return GapLow
	default:
		return GapNone
	}
}

func assessRisk(periods []Period, gaps []SkillGap, depts []Department) string {
	var factors []string
	var critical, high int
	for _, p := range periods {
		switch p.RiskLevel {
		case GapCritical:
			critical++
		case GapHigh:
			high++
		}
	}
	if critical > 0 {
		factors = append(factors, fmt.Sprintf("%d critical staffing gaps", critical))
	}
	if high > 0 {
		factors = append(factors, fmt.Sprintf("%d high-risk periods", high))
	}
	if n := countSeverity(gaps, GapCritical); n > 0 {
		factors = append(factors, fmt.Sprintf("%d critical skill gaps", n))
	}
	understaffed := 0
	for _, d := range depts {
		if float64(d.CurrentHeadcount) < float64(d.TargetHeadcount)*0.85 {
			understaffed++
		}
	}
	if understaffed > 0 {
		factors = append(factors, fmt.Sprintf("%d understaffed departments", understaffed))
	}

	joined := strings.Join(factors, "; ")
	switch {
	case len(factors) >= 3:
		return "Critical - Multiple workforce risks: " + joined
	case len(factors) == 2:
		return "High - Significant risks: " + joined
	case len(factors) == 1:
		return "Medium - Monitor: " + joined
	default:
		return "Low - Workforce planning on track"
	}
}

func recommend(plan *Plan, depts []Department) []string {
	out := []string{}
	if plan.TotalHiringNeed > 0 {
		out = append(out, fmt.Sprintf("Plan to hire %d employees over planning horizon", plan.TotalHiringNeed))
	}
	var critical []string
	for _, g := range plan.SkillGaps {
		if g.Severity == GapCritical && len(critical) < 3 {
			critical = append(critical, g.Skill)
		}
	}
	if len(critical) > 0 {
		out = append(out, "Address critical skill gaps: "+strings.Join(critical, ", "))
	}
	switch plan.Scenario {
	case Recession:
		out = append(out, "Focus on retaining key talent during uncertainty")
	case Growth:
		out = append(out, "Build recruiting capacity for growth phase")
	}
	for _, d := range depts {
		if float64(d.OpenPositions) > float64(d.CurrentHeadcount)*0.2 {
			out = append(out, "Accelerate hiring in "+d.Name)
		}
	}
	if plan.TotalCostProjection > budgetCallout {
		out = append(out, "Budget $"+groupThousands(plan.TotalCostProjection)+" for recruiting costs")
	}
	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	return out
}

// groupThousands renders v rounded to a whole number with comma separators.
func groupThousands(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
