package consult

import (
	"fmt"
	"strings"

	"github.com/okian/talentgrid/internal/domain/model"
)

// maxContextAtRisk bounds how many at-risk employees are listed in a prompt.
const maxContextAtRisk = 10

var categoryOrder = []model.TalentCategory{
	model.CategoryStar,
	model.CategoryHighPerformer,
	model.CategoryHighPotential,
	model.CategoryCoreContributor,
	model.CategoryDeveloping,
	model.CategoryUnderperformer,
}

// BuildContextPrompt renders the scored data in pc as a plain text block to
// append to the system prompt. It returns "" when pc carries no data.
func BuildContextPrompt(pc *PromptContext) string {
	if pc.Summary == nil && len(pc.AtRisk) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\n--- HR CONTEXT ---\n")

	if s := pc.Summary; s != nil {
		fmt.Fprintf(&b, "\nOrganization: %s\n", s.Scope.String())
		fmt.Fprintf(&b, "Headcount: %d\n", s.Total)
		fmt.Fprintf(&b, "\nTalent Distribution: %s\n", talentDistribution(s))
		fmt.Fprintf(&b, "\n9-Box Grid (performance x potential): %s\n", gridLine(s))
		fmt.Fprintf(&b, "\nFlight Risk Summary: %s\n", flightRiskLine(s))
		fmt.Fprintf(&b, "\nSuccession Pipeline: %s\n", pipelineLine(s))
	}

	if len(pc.AtRisk) > 0 {
		b.WriteString("\nHighest Flight Risk:\n")
		for i, r := range pc.AtRisk {
			if i == maxContextAtRisk {
				break
			}
			fmt.Fprintf(&b, "  - %s (%s): %s risk, %.0f%% flight probability, %s\n",
				r.EmployeeID, r.Department, r.RiskLevel, r.FlightRisk*100, r.CellLabel)
		}
	}

	b.WriteString("\n--- END CONTEXT ---\n")
	return b.String()
}

// SystemInstruction is the mode persona followed by the context block.
func SystemInstruction(pc *PromptContext) string {
	return SystemPrompt(pc.Mode) + BuildContextPrompt(pc)
}

func talentDistribution(s *model.AggregateSummary) string {
	parts := make([]string, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		if n := s.Categories[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", c, n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func gridLine(s *model.AggregateSummary) string {
	parts := make([]string, 0, 9)
	for p := model.LevelHigh; p >= model.LevelLow; p-- {
		for q := model.LevelHigh; q >= model.LevelLow; q-- {
			c := model.Cell{Performance: p, Potential: q}
			parts = append(parts, fmt.Sprintf("%s/%s=%d", p, q, s.CellCount(c)))
		}
	}
	return strings.Join(parts, ", ")
}

func flightRiskLine(s *model.AggregateSummary) string {
	parts := make([]string, 0, len(model.RiskLevels)+2)
	for _, l := range model.RiskLevels {
		parts = append(parts, fmt.Sprintf("%s=%d", l, s.RiskBuckets[l]))
	}
	parts = append(parts,
		fmt.Sprintf("average=%.1f%%", s.AverageFlightRisk*100),
		fmt.Sprintf("high-risk=%d", s.HighRiskCount))
	return strings.Join(parts, ", ")
}

func pipelineLine(s *model.AggregateSummary) string {
	parts := make([]string, 0, len(model.ReadinessLevels))
	for _, l := range model.ReadinessLevels {
		parts = append(parts, fmt.Sprintf("%s=%d", l, s.Pipeline[l]))
	}
	return strings.Join(parts, ", ")
}
