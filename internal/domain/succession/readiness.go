// Package succession assesses successor readiness and the bench strength of
// critical roles.
package succession

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/talentgrid/internal/domain/model"
)

const (
	competencyWeight     = 0.7
	experienceWeight     = 0.3
	neutralCompetency    = 50.0
	lowCompetencyCutoff  = 70.0
	maxListedGaps        = 3
	maxDevelopmentAction = 4
)

// readinessThresholds are ordered from most to least ready.
var readinessThresholds = []struct {
	min   float64
	level model.ReadinessLevel
}{
	{90, model.ReadyNow},
	{75, model.Ready1Year},
	{60, model.Ready2Years},
	{40, model.ReadyDeveloping},
}

// Candidate is the input to a readiness assessment.
type Candidate struct {
	EmployeeID      string
	TargetRole      string
	Competencies    map[string]float64
	ExperienceYears float64
}

// Assessment is the readiness of one candidate for a target role.
type Assessment struct {
	EmployeeID         string               `json:"employee_id"`
	TargetRole         string               `json:"target_role,omitempty"`
	OverallReadiness   float64              `json:"overall_readiness"`
	Level              model.ReadinessLevel `json:"level"`
	Gaps               []string             `json:"gaps,omitempty"`
	DevelopmentPlan    []string             `json:"development_plan"`
	EstimatedReadyDate string               `json:"estimated_ready_date"`
}

// Assess scores readiness as 0.7*average competency + 0.3*experience score,
// where experience is measured against requiredExperience years and capped at 100.
func Assess(c Candidate, requiredExperience float64) Assessment {
	avg := neutralCompetency
	if len(c.Competencies) > 0 {
		sum := 0.0
		for _, name := range sortedKeys(c.Competencies) {
			sum += c.Competencies[name]
		}
		avg = sum / float64(len(c.Competencies))
	}

	experience := 100.0
	if requiredExperience > 0 {
		experience = min(100, c.ExperienceYears/requiredExperience*100)
	}
	overall := avg*competencyWeight + experience*experienceWeight
	level := LevelFor(overall)

	var gaps []string
	if c.ExperienceYears < requiredExperience {
		gaps = append(gaps, fmt.Sprintf("Need %.1f more years experience", requiredExperience-c.ExperienceYears))
	}
	low := lowCompetencies(c.Competencies)
	for i, name := range low {
		if i == maxListedGaps {
			break
		}
		gaps = append(gaps, "Develop "+name)
	}

	return Assessment{
		EmployeeID:         c.EmployeeID,
		TargetRole:         c.TargetRole,
		OverallReadiness:   overall,
		Level:              level,
		Gaps:               gaps,
		DevelopmentPlan:    developmentPlan(level, low),
		EstimatedReadyDate: readyDate(level),
	}
}

// LevelFor maps an overall readiness score (0-100) to a level.
func LevelFor(score float64) model.ReadinessLevel {
	for _, t := range readinessThresholds {
		if score >= t.min {
			return t.level
		}
	}
	return model.NotReady
}

func readyDate(level model.ReadinessLevel) string {
	switch level {
	case model.ReadyNow:
		return "Now"
	case model.Ready1Year:
		return "Within 12 months"
	case model.Ready2Years:
		return "12-24 months"
	default:
		return "24+ months"
	}
}

func developmentPlan(level model.ReadinessLevel, low []string) []string {
	var plan []string
	switch level {
	case model.ReadyNow:
		plan = append(plan,
			"Provide stretch assignments to maintain engagement",
			"Include in leadership meetings and strategic discussions")
	case model.Ready1Year:
		plan = append(plan, "Assign to high-visibility project")
		if len(low) > 0 {
			plan = append(plan, "Focus development on: "+strings.Join(first(low, 2), ", "))
		}
	case model.Ready2Years:
		plan = append(plan, "Create structured development plan", "Assign executive mentor")
		if len(low) > 0 {
			plan = append(plan, "Training needed: "+strings.Join(first(low, 3), ", "))
		}
	default:
		plan = append(plan, "Assess long-term potential", "Consider alternative career paths")
	}
	return first(plan, maxDevelopmentAction)
}

// lowCompetencies returns competency names scoring below the cutoff, sorted by name.
func lowCompetencies(scores map[string]float64) []string {
	var out []string
	for _, name := range sortedKeys(scores) {
		if scores[name] < lowCompetencyCutoff {
			out = append(out, name)
		}
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func first(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
