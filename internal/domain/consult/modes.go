package consult

import "strings"

// Mode focuses the consultation on one HR discipline.
type Mode string

// Conversation modes.
const (
	ModeGeneral      Mode = "general"
	ModeTalentReview Mode = "talent_review"
	ModeRetention    Mode = "retention_analysis"
	ModeWorkforce    Mode = "workforce_planning"
	ModeSuccession   Mode = "succession_planning"
	ModeDiversity    Mode = "diversity_inclusion"
	ModeEngagement   Mode = "engagement_analysis"
	ModeCompensation Mode = "compensation_review"
)

// Modes lists every mode in detection priority order.
var Modes = []Mode{
	ModeGeneral,
	ModeTalentReview,
	ModeRetention,
	ModeWorkforce,
	ModeSuccession,
	ModeDiversity,
	ModeEngagement,
	ModeCompensation,
}

type modeSpec struct {
	keywords  []string
	prompt    string
	suggested []string
}

var modeSpecs = map[Mode]modeSpec{
	ModeGeneral: {
		prompt: `You are an AI-powered Chief Human Resources Officer (CHRO) consultant.
You help organizations optimize their talent strategy, improve retention, build strong teams, and create great workplaces.
Your expertise includes: talent management, workforce planning, employee engagement, retention strategies,
succession planning, diversity & inclusion, compensation, performance management, and organizational development.
Provide practical, data-driven HR advice.`,
		suggested: []string{
			"What are our biggest HR challenges?",
			"How can we improve employee retention?",
			"Where should we focus our talent efforts?",
		},
	},
	ModeTalentReview: {
		keywords: []string{"talent", "performance", "potential", "9-box", "high performer"},
		prompt: `You are a talent management expert helping with:
- Performance assessments and 9-box talent grids
- High-potential identification
- Development planning
- Career pathing
Focus on actionable talent insights and development recommendations.`,
		suggested: []string{
			"Review our talent distribution",
			"Who are our high-potentials?",
			"What development do our leaders need?",
		},
	},
	ModeRetention: {
		keywords: []string{"retention", "turnover", "flight risk", "leaving", "quit"},
		prompt: `You are an employee retention specialist focused on:
- Flight risk identification and analysis
- Retention strategy development
- Stay interviews and engagement
- Turnover cost analysis
Provide data-driven retention recommendations.`,
		suggested: []string{
			"Who is at risk of leaving?",
			"What's driving turnover?",
			"How do we retain key talent?",
		},
	},
	ModeWorkforce: {
		keywords: []string{"headcount", "hire", "workforce", "planning", "skill gap"},
		prompt: `You are a workforce planning expert helping with:
- Headcount forecasting and planning
- Skill gap analysis
- Hiring strategy development
- Organizational design
Focus on aligning workforce with business needs.`,
		suggested: []string{
			"Do we have the right headcount?",
			"What skills do we need?",
			"How should we plan for growth?",
		},
	},
	ModeSuccession: {
		keywords: []string{"succession", "bench", "successor", "critical role"},
		prompt: `You are a succession planning specialist focused on:
- Critical role identification
- Successor readiness assessment
- Leadership pipeline development
- Bench strength analysis
Help build organizational resilience through succession planning.`,
		suggested: []string{
			"Who can replace key leaders?",
			"How strong is our bench?",
			"What roles need successors?",
		},
	},
	ModeDiversity: {
		keywords: []string{"diversity", "inclusion", "equity", "representation", "dei"},
		prompt: `You are a diversity and inclusion expert helping with:
- Representation analysis and goal-setting
- Pay equity assessment
- Inclusive hiring practices
- ERG development
Focus on building diverse, equitable, and inclusive workplaces.`,
		suggested: []string{
			"How diverse is our workforce?",
			"Do we have pay equity?",
			"How can we improve representation?",
		},
	},
	ModeEngagement: {
		keywords: []string{"engagement", "survey", "culture", "satisfaction"},
		prompt: `You are an employee engagement specialist focused on:
- Engagement survey analysis
- Driver identification
- Action planning
- Culture improvement
Help improve employee experience and engagement.`,
		suggested: []string{
			"How engaged are our employees?",
			"What's driving engagement?",
			"How do we improve culture?",
		},
	},
	ModeCompensation: {
		keywords: []string{"compensation", "salary", "pay", "bonus", "compa"},
		prompt: `You are a compensation expert helping with:
- Market benchmarking
- Pay structure design
- Pay equity analysis
- Total rewards strategy
Provide data-driven compensation recommendations.`,
		suggested: []string{
			"Are we paying competitively?",
			"How is our pay equity?",
			"How should we structure compensation?",
		},
	},
}

// DetectMode picks the first mode whose keywords appear in the question,
// falling back to ModeGeneral. Matching is a case-insensitive substring test.
func DetectMode(question string) Mode {
	q := strings.ToLower(question)
	for _, m := range Modes {
		for _, kw := range modeSpecs[m].keywords {
			if strings.Contains(q, kw) {
				return m
			}
		}
	}
	return ModeGeneral
}

// ParseMode returns the mode named s, or false when s names none.
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	_, ok := modeSpecs[m]
	return m, ok
}

// SystemPrompt returns the persona prompt for m.
func SystemPrompt(m Mode) string {
	if spec, ok := modeSpecs[m]; ok {
		return spec.prompt
	}
	return modeSpecs[ModeGeneral].prompt
}

// SuggestedPrompts returns starter questions for m. The slice is a copy.
func SuggestedPrompts(m Mode) []string {
	spec, ok := modeSpecs[m]
	if !ok {
		spec = modeSpecs[ModeGeneral]
	}
	return append([]string(nil), spec.suggested...)
}
