package model

// Level is one axis position on the 9-box grid.
type Level int

// Grid levels, ordered low to high.
const (
	LevelLow Level = iota
	LevelMedium
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	case LevelHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Cell is a 9-box grid position: performance row by potential column.
type Cell struct {
	Performance Level `json:"performance"`
	Potential   Level `json:"potential"`
}

// Index returns the cell number in 0..8, row-major by performance.
func (c Cell) Index() int {
	return int(c.Performance)*3 + int(c.Potential)
}

// Label renders the cell, e.g. "high-performance/high-potential".
func (c Cell) Label() string {
	return c.Performance.String() + "-performance/" + c.Potential.String() + "-potential"
}

// TalentCategory is the named talent segment derived from the grid scores.
type TalentCategory string

// Talent categories.
const (
	CategoryStar            TalentCategory = "Star"
	CategoryHighPerformer   TalentCategory = "High Performer"
	CategoryHighPotential   TalentCategory = "High Potential"
	CategoryCoreContributor TalentCategory = "Core Contributor"
	CategoryDeveloping      TalentCategory = "Developing"
	CategoryUnderperformer  TalentCategory = "Underperformer"
)

// RiskLevel buckets the flight-risk index.
type RiskLevel string

// Risk levels, most severe first.
const (
	RiskCritical RiskLevel = "Critical"
	RiskHigh     RiskLevel = "High"
	RiskMedium   RiskLevel = "Medium"
	RiskLow      RiskLevel = "Low"
	RiskVeryLow  RiskLevel = "Very Low"
)

// RiskLevels lists every level, most severe first.
var RiskLevels = []RiskLevel{RiskCritical, RiskHigh, RiskMedium, RiskLow, RiskVeryLow}

// HighRiskLevels are the levels counted as high risk in summaries.
var HighRiskLevels = []RiskLevel{RiskCritical, RiskHigh}

// IsHigh reports whether l is one of HighRiskLevels.
func (l RiskLevel) IsHigh() bool {
	return l == RiskCritical || l == RiskHigh
}

// ReadinessLevel is a successor's readiness for a target role.
type ReadinessLevel string

// Readiness levels, most ready first.
const (
	ReadyNow        ReadinessLevel = "Ready Now"
	Ready1Year      ReadinessLevel = "Ready in 1 Year"
	Ready2Years     ReadinessLevel = "Ready in 2+ Years"
	ReadyDeveloping ReadinessLevel = "Developing"
	NotReady        ReadinessLevel = "Not Ready"
)

// Factor is one weighted input of the flight-risk index.
type Factor struct {
	Name         string  `json:"name"`
	Weight       float64 `json:"weight"`       // normalized, weights sum to 1
	Value        float64 `json:"value"`        // factor risk in [0,1]
	Contribution float64 `json:"contribution"` // Weight * Value
}

// ScoreResult is derived from exactly one EmployeeRecord. It is recomputed on
// demand and never mutated in place.
type ScoreResult struct {
	EmployeeID   string `json:"employee_id"`
	Organization string `json:"organization"`
	Department   string `json:"department"`
	Cycle        string `json:"cycle"`

	Cell      Cell           `json:"cell"`
	CellIndex int            `json:"cell_index"`
	CellLabel string         `json:"cell_label"`
	Category  TalentCategory `json:"category"`

	RiskIndex       float64   `json:"risk_index"`
	FlightRisk      float64   `json:"flight_risk"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Urgency         string    `json:"urgency"`
	TimeToDeparture string    `json:"time_to_departure"`
	Factors         []Factor  `json:"factors"`

	TargetRole      string         `json:"target_role,omitempty"`
	Readiness       ReadinessLevel `json:"readiness"`
	Recommendations []string       `json:"recommendations,omitempty"`
}

// ReadinessLevels lists every readiness level, most ready first.
var ReadinessLevels = []ReadinessLevel{ReadyNow, Ready1Year, Ready2Years, ReadyDeveloping, NotReady}
