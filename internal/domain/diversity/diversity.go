// Package diversity measures workforce representation against targets and
// compares average pay between demographic groups.
package diversity

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidRequest is returned for demographics that cannot be analyzed.
var ErrInvalidRequest = errors.New("invalid diversity request")

// Status places a representation percentage relative to its target.
type Status string

// Representation statuses.
const (
	Exceeds            Status = "Exceeds Target"
	Meets              Status = "Meets Target"
	Approaching        Status = "Approaching Target"
	Below              Status = "Below Target"
	SignificantlyBelow Status = "Significantly Below"
)

// Trends compare the current percentage with the previous one.
const (
	TrendImproving = "Improving"
	TrendStable    = "Stable"
	TrendDeclining = "Declining"
	TrendUnknown   = "Unknown"
)

// Group names used by Report.
const (
	GroupWomen             = "Women"
	GroupMinority          = "Underrepresented Minorities"
	WomenInLeadership      = "women_in_leadership"
	MinoritiesInLeadership = "minorities_in_leadership"
)

const (
	defaultTarget       = 30.0
	defaultSignificance = 0.03
	affectedShare       = 0.3
	leadershipPipeline  = 0.7
	maxGroupAdvice      = 3
	maxRecommendations  = 5
)

// DefaultTargets are the representation targets in percent, keyed by
// lower-case group name.
var DefaultTargets = map[string]float64{
	"women":                       50,
	"underrepresented minorities": 30,
	"veterans":                    5,
	"disabilities":                7,
	"lgbtq":                       5,
}

// leadershipTargets is ordered so scores and advice are deterministic.
var leadershipTargets = []struct {
	metric string
	target float64
}{
	{WomenInLeadership, 40},
	{MinoritiesInLeadership, 25},
}

var statusScore = map[Status]float64{
	Exceeds:            100,
	Meets:              85,
	Approaching:        70,
	Below:              50,
	SignificantlyBelow: 25,
}

// Breakdown counts a population by demographic attribute.
type Breakdown struct {
	Total        int            `json:"total"`
	Gender       map[string]int `json:"gender,omitempty"`
	Ethnicity    map[string]int `json:"ethnicity,omitempty"`
	AgeGroups    map[string]int `json:"age_groups,omitempty"`
	TenureGroups map[string]int `json:"tenure_groups,omitempty"`
}

// Women counts "Female" and "Woman" entries.
func (b Breakdown) Women() int {
	return b.Gender["Female"] + b.Gender["Woman"]
}

// Minorities counts every ethnicity other than white or caucasian.
func (b Breakdown) Minorities() int {
	n := 0
	for eth, c := range b.Ethnicity {
		switch strings.ToLower(strings.TrimSpace(eth)) {
		case "white", "caucasian":
		default:
			n += c
		}
	}
	return n
}

func (b Breakdown) validate(name string) error {
	if b.Total < 0 {
		return fmt.Errorf("%w: %s total is negative", ErrInvalidRequest, name)
	}
	for _, m := range []map[string]int{b.Gender, b.Ethnicity, b.AgeGroups, b.TenureGroups} {
		sum := 0
		for k, c := range m {
			if c < 0 {
				return fmt.Errorf("%w: %s count for %q is negative", ErrInvalidRequest, name, k)
			}
			sum += c
		}
		if sum > b.Total {
			return fmt.Errorf("%w: %s counts exceed total %d", ErrInvalidRequest, name, b.Total)
		}
	}
	return nil
}

// Representation is one group's share of the workforce against its target.
type Representation struct {
	Group              string   `json:"group_name"`
	CurrentPercentage  float64  `json:"current_percentage"`
	TargetPercentage   float64  `json:"target_percentage"`
	Gap                float64  `json:"gap"`
	Status             Status   `json:"status"`
	Trend              string   `json:"trend"`
	YearOverYearChange float64  `json:"year_over_year_change"`
	Recommendations    []string `json:"recommendations"`
}

// PayEquity compares the average pay of a group with a reference group.
type PayEquity struct {
	Comparison        string   `json:"group_comparison"`
	AveragePayGap     float64  `json:"avg_pay_gap"`
	GapPercentage     float64  `json:"gap_percentage"`
	Significant       bool     `json:"statistical_significance"`
	AffectedEmployees int      `json:"affected_employees"`
	RemediationCost   float64  `json:"remediation_cost"`
	Recommendations   []string `json:"recommendations"`
}

// PayGroup is the average pay of one gender.
type PayGroup struct {
	Average float64 `json:"avg"`
}

// Request is the input of Report.
type Request struct {
	ID           string             `json:"report_id,omitempty"`
	Organization string             `json:"organization,omitempty"`
	Workforce    Breakdown          `json:"workforce"`
	Leadership   *Breakdown         `json:"leadership,omitempty"`
	Hiring       map[string]float64 `json:"hiring,omitempty"`
	// Pay is keyed by "male" and "female".
	Pay map[string]PayGroup `json:"pay,omitempty"`
	// Previous holds last period's percentage per group name.
	Previous map[string]float64 `json:"previous,omitempty"`
}

// Report is a complete diversity analysis.
type Report struct {
	ID               string             `json:"report_id"`
	Organization     string             `json:"organization,omitempty"`
	Score            float64            `json:"overall_diversity_score"`
	Representation   []Representation   `json:"representation_metrics"`
	Leadership       map[string]float64 `json:"leadership_diversity"`
	PayEquity        []PayEquity        `json:"pay_equity"`
	Hiring           map[string]float64 `json:"hiring_diversity,omitempty"`
	Strengths        []string           `json:"strengths"`
	ImprovementAreas []string           `json:"improvement_areas"`
	Recommendations  []string           `json:"recommendations"`
}

// Analyzer scores representation and pay equity.
type Analyzer struct {
	targets      map[string]float64
	significance float64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTargets overrides representation targets by group name.
func WithTargets(targets map[string]float64) Option {
	return func(a *Analyzer) {
		for k, v := range targets {
			if v > 0 {
				a.targets[strings.ToLower(k)] = v
			}
		}
	}
}

// WithSignificanceThreshold sets the relative pay gap above which a gap is
// significant. Non-positive values keep the default of 3%.
func WithSignificanceThreshold(t float64) Option {
	return func(a *Analyzer) {
		if t > 0 {
			a.significance = t
		}
	}
}

// NewAnalyzer creates an Analyzer over DefaultTargets.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		targets:      make(map[string]float64, len(DefaultTargets)),
		significance: defaultSignificance,
	}
	for k, v := range DefaultTargets {
		a.targets[k] = v
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Target returns the representation target for group.
func (a *Analyzer) Target(group string) float64 {
	if t, ok := a.targets[strings.ToLower(group)]; ok {
		return t
	}
	return defaultTarget
}

// StatusFor maps a gap in percentage points to a status.
func StatusFor(gap float64) Status {
	switch {
	case gap >= 5:
		return Exceeds
	case gap >= 0:
		return Meets
	case gap >= -5:
		return Approaching
	case gap >= -15:
		return Below
	default:
		return SignificantlyBelow
	}
}

// Representation measures count out of total against group's target. A
// non-positive target uses the configured one; a nil previous leaves the
// trend unknown.
func (a *Analyzer) Representation(group string, count, total int, target float64, previous *float64) Representation {
	if target <= 0 {
		target = a.Target(group)
	}
	if total <= 0 {
		return Representation{
			Group:            group,
			TargetPercentage: target,
			Status:           SignificantlyBelow,
			Trend:            TrendUnknown,
			Recommendations:  []string{"Insufficient data for analysis"},
		}
	}

	current := float64(count) / float64(total) * 100
	gap := current - target
	status := StatusFor(gap)

	trend, yoy := TrendUnknown, 0.0
	if previous != nil {
		yoy = current - *previous
		switch {
		case yoy > 1:
			trend = TrendImproving
		case yoy < -1:
			trend = TrendDeclining
		default:
			trend = TrendStable
		}
	}

	return Representation{
		Group:              group,
		CurrentPercentage:  round(current, 1),
		TargetPercentage:   target,
		Gap:                round(gap, 1),
		Status:             status,
		Trend:              trend,
		YearOverYearChange: round(yoy, 1),
		Recommendations:    groupAdvice(group, status),
	}
}

func groupAdvice(group string, status Status) []string {
	if status == Exceeds || status == Meets {
		return []string{fmt.Sprintf("Maintain current %s representation", group), "Share best practices"}
	}
	var recs []string
	if status == SignificantlyBelow {
		recs = append(recs,
			fmt.Sprintf("Develop targeted %s recruitment strategy", group),
			fmt.Sprintf("Partner with %s-focused organizations", group),
		)
	}
	recs = append(recs,
		fmt.Sprintf("Review hiring funnel for %s candidates", group),
		fmt.Sprintf("Establish %s employee resource group", group),
	)
	return recs[:min(len(recs), maxGroupAdvice)]
}

// PayEquity compares group's average pay with reference's. The gap is
// significant when it exceeds the threshold as a share of reference pay.
// Remediation assumes the whole gap is paid to a third of the group.
func (a *Analyzer) PayEquity(reference, group string, referenceAvg, groupAvg float64, groupCount int) PayEquity {
	comparison := group + " vs " + reference
	if referenceAvg == 0 {
		return PayEquity{Comparison: comparison, Recommendations: []string{"Insufficient data"}}
	}

	gap := referenceAvg - groupAvg
	ratio := gap / referenceAvg
	significant := math.Abs(ratio) > a.significance

	pe := PayEquity{
		Comparison:    comparison,
		AveragePayGap: round(gap, 2),
		GapPercentage: round(ratio*100, 1),
		Significant:   significant,
	}
	if significant && gap > 0 {
		pe.RemediationCost = round(gap*float64(groupCount), 2)
		pe.AffectedEmployees = int(float64(groupCount) * affectedShare)
		pe.Recommendations = []string{
			"Conduct detailed pay equity analysis for " + group,
			"Review compensation policies and practices",
			"Consider pay adjustments for affected employees",
		}
		return pe
	}
	pe.Recommendations = []string{"Continue monitoring pay equity metrics"}
	return pe
}

// Report analyzes the workforce, its leadership and pay.
func (a *Analyzer) Report(req Request) (Report, error) {
	if err := req.Workforce.validate("workforce"); err != nil {
		return Report{}, err
	}
	if req.Leadership != nil {
		if err := req.Leadership.validate("leadership"); err != nil {
			return Report{}, err
		}
	}

	wf := req.Workforce
	reps := []Representation{
		a.Representation(GroupWomen, wf.Women(), wf.Total, 0, previousShare(req.Previous, GroupWomen)),
		a.Representation(GroupMinority, wf.Minorities(), wf.Total, 0, previousShare(req.Previous, GroupMinority)),
	}

	leadership := map[string]float64{}
	if l := req.Leadership; l != nil {
		leadership[WomenInLeadership] = share(l.Women(), l.Total)
		leadership[MinoritiesInLeadership] = share(l.Minorities(), l.Total)
	}

	var pay []PayEquity
	male, female := req.Pay["male"].Average, req.Pay["female"].Average
	if male > 0 && female > 0 {
		pay = append(pay, a.PayEquity("Men", GroupWomen, male, female, wf.Women()))
	}

	r := Report{
		ID:               req.ID,
		Organization:     req.Organization,
		Score:            round(score(reps, leadership), 1),
		Representation:   reps,
		Leadership:       make(map[string]float64, len(leadership)),
		PayEquity:        pay,
		Hiring:           req.Hiring,
		Strengths:        []string{},
		ImprovementAreas: []string{},
		Recommendations:  recommendations(reps, leadership, pay),
	}
	for k, v := range leadership {
		r.Leadership[k] = round(v, 1)
	}
	for _, m := range reps {
		switch m.Status {
		case Exceeds, Meets:
			r.Strengths = append(r.Strengths, m.Group)
		case Below, SignificantlyBelow:
			r.ImprovementAreas = append(r.ImprovementAreas, m.Group)
		}
	}
	return r, nil
}

// score averages status scores. With leadership data it blends in how close
// leadership is to its targets at 30%.
func score(reps []Representation, leadership map[string]float64) float64 {
	if len(reps) == 0 {
		return 0
	}
	var rep float64
	for _, m := range reps {
		rep += statusScore[m.Status]
	}
	rep /= float64(len(reps))
	if len(leadership) == 0 {
		return rep
	}

	var lead float64
	n := 0
	for _, lt := range leadershipTargets {
		v, ok := leadership[lt.metric]
		if !ok {
			continue
		}
		lead += math.Min(100, v/lt.target*100)
		n++
	}
	if n == 0 {
		return rep
	}
	return rep*0.7 + lead/float64(n)*0.3
}

func recommendations(reps []Representation, leadership map[string]float64, pay []PayEquity) []string {
	var recs []string

	var low []string
	for _, m := range reps {
		if m.Status == Below || m.Status == SignificantlyBelow {
			low = append(low, m.Group)
		}
	}
	if len(low) > 0 {
		recs = append(recs, "Focus on improving representation: "+strings.Join(low[:min(len(low), 2)], ", "))
	}

	for _, lt := range leadershipTargets {
		if leadership[lt.metric] < lt.target*leadershipPipeline {
			recs = append(recs, "Develop pipeline for "+strings.ReplaceAll(lt.metric, "_", " "))
		}
	}

	for _, p := range pay {
		if p.Significant && p.GapPercentage > 3 {
			recs = append(recs, "Address pay equity gaps identified in analysis")
			break
		}
	}

	recs = append(recs, "Implement inclusive hiring practices", "Conduct regular diversity training")
	return recs[:min(len(recs), maxRecommendations)]
}

func previousShare(m map[string]float64, group string) *float64 {
	v, ok := m[group]
	if !ok {
		return nil
	}
	return &v
}

func share(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
