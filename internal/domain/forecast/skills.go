package forecast

import (
	"fmt"
	"sort"
)

// SkillGap is a shortfall in people holding a skill.
type SkillGap struct {
	Skill           string   `json:"skill"`
	Current         int      `json:"current_capacity"`
	Required        int      `json:"required_capacity"`
	Gap             int      `json:"gap"`
	Severity        string   `json:"severity"`
	Recommendations []string `json:"recommendations"`
}

var severityRank = map[string]int{
	GapCritical: 0,
	GapHigh:     1,
	GapMedium:   2,
	GapLow:      3,
	GapNone:     4,
}

// AnalyzeSkillGaps compares required against current capacity per skill and
// returns the shortfalls, most severe first and then by skill name.
func AnalyzeSkillGaps(required, current map[string]int) []SkillGap {
	if len(required) == 0 {
		return nil
	}
	var gaps []SkillGap
	for skill, need := range required {
		have := current[skill]
		gap := need - have
		if gap <= 0 {
			continue
		}
		ratio := 1.0
		if need > 0 {
			ratio = float64(gap) / float64(need)
		}
		sev := skillSeverity(ratio)
		gaps = append(gaps, SkillGap{
			Skill:           skill,
			Current:         have,
			Required:        need,
			Gap:             gap,
			Severity:        sev,
			Recommendations: skillRecommendations(skill, gap, sev),
		})
	}
	sort.Slice(gaps, func(i, j int) bool {
		ri, rj := severityRank[gaps[i].Severity], severityRank[gaps[j].Severity]
		if ri != rj {
			return ri < rj
		}
		return gaps[i].Skill < gaps[j].Skill
	})
	return gaps
}

func skillSeverity(ratio float64) string {
	switch {
	case ratio >= 0.5:
		return GapCritical
	case ratio >= 0.3:
		return GapHigh
	case ratio >= 0.15:
		return GapMedium
	default:
		return GapLow
	}
}

func skillRecommendations(skill string, gap int, severity string) []string {
	var out []string
	if severity == GapCritical || severity == GapHigh {
		out = append(out,
			fmt.Sprintf("Prioritize hiring for %s (%d positions)", skill, gap),
			"Consider contractors or consultants for immediate "+skill+" needs")
	}
	out = append(out, "Develop internal training program for "+skill)
	if gap > 3 {
		out = append(out, "Create "+skill+" career path to attract talent")
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

func countSeverity(gaps []SkillGap, severity string) int {
	n := 0
	for _, g := range gaps {
		if g.Severity == severity {
			n++
		}
	}
	return n
}

// AttritionImpact is the projected effect of attrition alone.
type AttritionImpact struct {
	CurrentHeadcount    int     `json:"current_headcount"`
	AttritionRate       float64 `json:"attrition_rate"`
	Months              int     `json:"months"`
	ProjectedDepartures int     `json:"projected_departures"`
	EndingHeadcount     int     `json:"ending_headcount"`
	MonthlyLosses       []int   `json:"monthly_losses"`
	ReplacementCost     float64 `json:"replacement_cost"`
	// ProductivityLoss is in person-months, assuming a quarter of output is
	// lost over a three month ramp for each replacement.
	ProductivityLoss float64 `json:"productivity_loss"`
}

// AttritionImpact projects departures with no backfill.
func (p *Planner) AttritionImpact(headcount int, annualRate float64, months int) AttritionImpact {
	if months <= 0 {
		months = defaultHorizon
	}
	monthly := annualRate / 12 / 100
	remaining := headcount
	losses := make([]int, 0, months)
	for i := 0; i < months; i++ {
		loss := int(float64(remaining) * monthly)
		losses = append(losses, loss)
		remaining -= loss
	}
	departed := headcount - remaining
	return AttritionImpact{
		CurrentHeadcount:    headcount,
		AttritionRate:       annualRate,
		Months:              months,
		ProjectedDepartures: departed,
		EndingHeadcount:     remaining,
		MonthlyLosses:       losses,
		ReplacementCost:     float64(departed) * p.costPerHire,
		ProductivityLoss:    float64(departed) * 0.25 * 3,
	}
}
