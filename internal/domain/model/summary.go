package model

// AggregateSummary holds counts over a scoped set of ScoreResults. It has no
// lifecycle beyond the aggregation call that produced it.
type AggregateSummary struct {
	Scope Scope `json:"scope"`
	Total int   `json:"total"`

	// Grid rows are performance (low..high), columns are potential (low..high).
	Grid [3][3]int `json:"grid"`

	RiskBuckets map[RiskLevel]int      `json:"risk_buckets"`
	Categories  map[TalentCategory]int `json:"categories"`
	Pipeline    map[ReadinessLevel]int `json:"pipeline"`

	AverageFlightRisk float64 `json:"average_flight_risk"`
	HighRiskCount     int     `json:"high_risk_count"`
}

// CellCount returns the number of employees placed in c.
func (s *AggregateSummary) CellCount(c Cell) int {
	return s.Grid[c.Performance][c.Potential]
}
