package scoring

import (
	"math"

	"github.com/okian/talentgrid/internal/domain/model"
)

// riskScale converts flight risk to integer micro-units so the sum, and
// therefore the average, does not depend on input order.
const riskScale = 1_000_000

// Aggregate reduces the results that fall inside scope into a summary.
// It is pure and order-independent, and returns *EmptyScopeError when no
// result matches.
func Aggregate(scores []model.ScoreResult, scope model.Scope) (model.AggregateSummary, error) {
	sum := newSummary(scope)

	var riskMicros int64
	for i := range scores {
		s := &scores[i]
		if !scope.Matches(s.Organization, s.Department) {
			continue
		}
		sum.Total++
		if validLevel(s.Cell.Performance) && validLevel(s.Cell.Potential) {
			sum.Grid[s.Cell.Performance][s.Cell.Potential]++
		}
		if s.RiskLevel != "" {
			sum.RiskBuckets[s.RiskLevel]++
		}
		if s.RiskLevel.IsHigh() {
			sum.HighRiskCount++
		}
		if s.Category != "" {
			sum.Categories[s.Category]++
		}
		if s.Readiness != "" {
			sum.Pipeline[s.Readiness]++
		}
		riskMicros += int64(math.Round(s.FlightRisk * riskScale))
	}

	if sum.Total == 0 {
		return model.AggregateSummary{}, &EmptyScopeError{Scope: scope}
	}
	sum.AverageFlightRisk = float64(riskMicros) / float64(sum.Total) / riskScale
	return sum, nil
}

func newSummary(scope model.Scope) model.AggregateSummary {
	s := model.AggregateSummary{
		Scope:       scope,
		RiskBuckets: make(map[model.RiskLevel]int, len(model.RiskLevels)),
		Categories:  make(map[model.TalentCategory]int),
		Pipeline:    make(map[model.ReadinessLevel]int, len(model.ReadinessLevels)),
	}
	for _, l := range model.RiskLevels {
		s.RiskBuckets[l] = 0
	}
	for _, l := range model.ReadinessLevels {
		s.Pipeline[l] = 0
	}
	return s
}

func validLevel(l model.Level) bool {
	return l >= model.LevelLow && l <= model.LevelHigh
}
