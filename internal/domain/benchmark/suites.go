package benchmark

import (
	"fmt"
	"strings"
)

// Suite names a preset set of KPIs.
type Suite string

// Preset suites.
const (
	SuiteHR          Suite = "hr"
	SuiteEngagement  Suite = "engagement"
	SuiteRecruitment Suite = "recruitment"
)

// ParseSuite matches a suite name case-insensitively. Empty means SuiteHR.
func ParseSuite(s string) (Suite, error) {
	switch Suite(strings.ToLower(strings.TrimSpace(s))) {
	case "", SuiteHR:
		return SuiteHR, nil
	case SuiteEngagement:
		return SuiteEngagement, nil
	case SuiteRecruitment:
		return SuiteRecruitment, nil
	default:
		return "", fmt.Errorf("%w: unknown suite %q", ErrInvalidRequest, s)
	}
}

// NewSuite builds the engine for a preset suite.
func NewSuite(s Suite) (*Engine, error) {
	switch s {
	case SuiteHR:
		return NewEngine(hrKPIs, WithCategoryWeights(map[Category]float64{
			Retention:    1.2,
			Engagement:   1.2,
			Recruitment:  1.0,
			Performance:  1.0,
			Development:  1.0,
			Compensation: 0.9,
			Diversity:    0.9,
		})), nil
	case SuiteEngagement:
		return NewEngine(engagementKPIs), nil
	case SuiteRecruitment:
		return NewEngine(recruitmentKPIs), nil
	default:
		return nil, fmt.Errorf("%w: unknown suite %q", ErrInvalidRequest, s)
	}
}

func kpi(id, name string, benchmark float64, dir Direction, cat Category, unit, desc string) KPI {
	return KPI{ID: id, Name: name, Benchmark: benchmark, Direction: dir, Category: cat, Unit: unit, Description: desc, Weight: 1}
}

var hrKPIs = []KPI{
	kpi("turnover_rate", "Annual Turnover Rate", 15, LowerIsBetter, Retention, "%", "Total employee turnover"),
	kpi("voluntary_turnover", "Voluntary Turnover Rate", 10, LowerIsBetter, Retention, "%", "Employee-initiated departures"),
	kpi("high_performer_retention", "High Performer Retention", 90, HigherIsBetter, Retention, "%", "Retention of top performers"),
	kpi("first_year_turnover", "First Year Turnover", 20, LowerIsBetter, Retention, "%", "New hire turnover in first year"),

	kpi("time_to_fill", "Time to Fill", 45, LowerIsBetter, Recruitment, "days", "Average days to fill position"),
	kpi("cost_per_hire", "Cost per Hire", 4000, LowerIsBetter, Recruitment, "$", "Average recruiting cost"),
	kpi("offer_acceptance_rate", "Offer Acceptance Rate", 85, HigherIsBetter, Recruitment, "%", "Accepted offers / total offers"),
	kpi("quality_of_hire", "Quality of Hire", 80, HigherIsBetter, Recruitment, "%", "New hire performance rating"),

	kpi("engagement_score", "Employee Engagement Score", 75, HigherIsBetter, Engagement, "%", "Overall engagement"),
	kpi("enps", "Employee Net Promoter Score", 30, HigherIsBetter, Engagement, "", "eNPS score"),
	kpi("survey_participation", "Survey Participation Rate", 80, HigherIsBetter, Engagement, "%", "Engagement survey response rate"),

	kpi("performance_review_completion", "Review Completion Rate", 95, HigherIsBetter, Performance, "%", "On-time review completion"),
	kpi("goal_achievement", "Goal Achievement Rate", 80, HigherIsBetter, Performance, "%", "Goals met or exceeded"),
	kpi("pip_success_rate", "PIP Success Rate", 50, HigherIsBetter, Performance, "%", "PIP employees improved"),

	kpi("compa_ratio", "Compa-Ratio", 100, HigherIsBetter, Compensation, "%", "Salary vs. market midpoint"),
	kpi("pay_equity_gap", "Pay Equity Gap", 3, LowerIsBetter, Compensation, "%", "Gender/race pay gap"),

	kpi("training_hours", "Training Hours per Employee", 40, HigherIsBetter, Development, "hrs", "Annual training hours"),
	kpi("internal_promotion_rate", "Internal Promotion Rate", 60, HigherIsBetter, Development, "%", "Positions filled internally"),
	kpi("succession_coverage", "Succession Coverage", 80, HigherIsBetter, Development, "%", "Critical roles with successors"),

	kpi("diversity_representation", "Diversity Representation", 40, HigherIsBetter, Diversity, "%", "Underrepresented groups"),
	kpi("diversity_leadership", "Diversity in Leadership", 30, HigherIsBetter, Diversity, "%", "Diverse leaders"),
}

var engagementKPIs = []KPI{
	kpi("overall_engagement", "Overall Engagement", 75, HigherIsBetter, Engagement, "%", ""),
	kpi("job_satisfaction", "Job Satisfaction", 80, HigherIsBetter, Engagement, "%", ""),
	kpi("manager_effectiveness", "Manager Effectiveness", 75, HigherIsBetter, Engagement, "%", ""),
	kpi("career_development", "Career Development Satisfaction", 70, HigherIsBetter, Development, "%", ""),
	kpi("work_life_balance", "Work-Life Balance", 70, HigherIsBetter, Engagement, "%", ""),
	kpi("recognition", "Recognition & Appreciation", 75, HigherIsBetter, Engagement, "%", ""),
	kpi("company_confidence", "Confidence in Company", 80, HigherIsBetter, Engagement, "%", ""),
	kpi("team_collaboration", "Team Collaboration", 80, HigherIsBetter, Engagement, "%", ""),
	kpi("communication", "Communication Effectiveness", 70, HigherIsBetter, Engagement, "%", ""),
	kpi("resources_tools", "Resources & Tools", 75, HigherIsBetter, Productivity, "%", ""),
}

var recruitmentKPIs = []KPI{
	kpi("time_to_fill", "Time to Fill", 45, LowerIsBetter, Recruitment, "days", ""),
	kpi("time_to_hire", "Time to Hire", 30, LowerIsBetter, Recruitment, "days", ""),
	kpi("cost_per_hire", "Cost per Hire", 4000, LowerIsBetter, Recruitment, "$", ""),
	kpi("source_of_hire", "Internal Source Rate", 30, HigherIsBetter, Recruitment, "%", ""),
	kpi("applicants_per_opening", "Applicants per Opening", 50, HigherIsBetter, Recruitment, "", ""),
	kpi("offer_acceptance", "Offer Acceptance Rate", 85, HigherIsBetter, Recruitment, "%", ""),
	kpi("quality_of_hire", "Quality of Hire Score", 80, HigherIsBetter, Recruitment, "%", ""),
	kpi("hiring_manager_satisfaction", "Hiring Manager Satisfaction", 85, HigherIsBetter, Recruitment, "%", ""),
	kpi("candidate_experience", "Candidate Experience Score", 80, HigherIsBetter, Recruitment, "%", ""),
	kpi("diversity_of_hires", "Diversity of Hires", 40, HigherIsBetter, Diversity, "%", ""),
}
