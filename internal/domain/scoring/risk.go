package scoring

import (
	"math"
	"sort"

	"github.com/okian/talentgrid/internal/domain/model"
)

// Factor names as they appear in ScoreResult.Factors.
const (
	FactorTenure       = "tenure"
	FactorCompensation = "compensation"
	FactorEngagement   = "engagement"
)

const (
	maxRecommendations = 5
	factorConcern      = 0.4
	factorSevere       = 0.6
)

var urgency = map[model.RiskLevel]string{
	model.RiskCritical: "Immediate action required",
	model.RiskHigh:     "Action needed within 2 weeks",
	model.RiskMedium:   "Monitor closely, plan intervention",
	model.RiskLow:      "Regular check-ins sufficient",
	model.RiskVeryLow:  "No immediate concern",
}

var timeToDeparture = map[model.RiskLevel]string{
	model.RiskCritical: "0-3 months",
	model.RiskHigh:     "3-6 months",
	model.RiskMedium:   "6-12 months",
	model.RiskLow:      "12+ months",
	model.RiskVeryLow:  "Not anticipated",
}

// Urgency returns the recommended response time for a risk level.
func Urgency(level model.RiskLevel) string { return urgency[level] }

// TimeToDeparture returns the expected departure window for a risk level.
func TimeToDeparture(level model.RiskLevel) string { return timeToDeparture[level] }

func tenureRisk(years, decay float64) float64 {
	return math.Exp(-years / decay)
}

func compensationRisk(ratio, target, span float64) float64 {
	return clamp01((target - ratio) / span)
}

func engagementRisk(engagement float64) float64 {
	return clamp01(1 - engagement)
}

// FlightProbability converts a risk index in [0,1] into a departure
// probability in [0,0.95] using a piecewise curve that is flat at the low end
// and steep through the middle bands.
func FlightProbability(index float64) float64 {
	x := clamp01(index) * 100
	var pct float64
	switch {
	case x <= 20:
		pct = x * 0.5
	case x <= 40:
		pct = 10 + (x - 20)
	case x <= 60:
		pct = 30 + (x-40)*1.5
	case x <= 80:
		pct = 60 + (x-60)*1.5
	default:
		pct = math.Min(95, 90+(x-80)*0.25)
	}
	return pct / 100
}

// LevelFor buckets a risk index using b.
func LevelFor(index float64, b RiskBuckets) model.RiskLevel {
	switch {
	case index >= b.Critical:
		return model.RiskCritical
	case index >= b.High:
		return model.RiskHigh
	case index >= b.Medium:
		return model.RiskMedium
	case index >= b.Low:
		return model.RiskLow
	default:
		return model.RiskVeryLow
	}
}

// recommend lists retention actions, most urgent first.
func recommend(level model.RiskLevel, factors []model.Factor) []string {
	var out []string
	switch level {
	case model.RiskCritical:
		out = append(out, "Schedule immediate stay interview")
	case model.RiskHigh:
		out = append(out, "Conduct stay conversation within 1 week")
	}

	ranked := make([]model.Factor, len(factors))
	copy(ranked, factors)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Contribution != ranked[j].Contribution {
			return ranked[i].Contribution > ranked[j].Contribution
		}
		return ranked[i].Name < ranked[j].Name
	})

	for _, f := range ranked {
		if f.Value < factorConcern {
			continue
		}
		switch f.Name {
		case FactorCompensation:
			out = append(out, "Review compensation against market rates")
			if f.Value >= factorSevere {
				out = append(out, "Consider retention bonus or salary adjustment")
			}
		case FactorEngagement:
			out = append(out, "Increase meaningful work and autonomy", "Strengthen team connections")
		case FactorTenure:
			out = append(out, "Hold regular career conversations through the early-tenure window")
		}
	}

	if len(out) > maxRecommendations {
		out = out[:maxRecommendations]
	}
	return out
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
