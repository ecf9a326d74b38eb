// Package types contains read models shared by the repository and HTTP layers.
package types

// RiskEntry is one row of the flight-risk ranking. Employees with equal
// flight risk share a rank.
type RiskEntry struct {
	Rank       int     `json:"rank"`
	EmployeeID string  `json:"employee_id"`
	Department string  `json:"department"`
	FlightRisk float64 `json:"flight_risk"`
	RiskLevel  string  `json:"risk_level"`
	CellLabel  string  `json:"cell_label"`
}
