// Package model contains domain models passed between layers.
package model

// Compensation holds the pay inputs used for the market-ratio factor.
type Compensation struct {
	Base           float64 `json:"base"`
	MarketMidpoint float64 `json:"market_midpoint"`
}

// Ratio returns Base / MarketMidpoint, or 0 when the midpoint is unknown.
func (c Compensation) Ratio() float64 {
	if c.MarketMidpoint <= 0 {
		return 0
	}
	return c.Base / c.MarketMidpoint
}

// EmployeeRecord is one employee's attributes for a single evaluation cycle.
// Records are immutable per cycle; a new version is created each cycle.
type EmployeeRecord struct {
	ID           string `json:"id"`
	Organization string `json:"organization"`
	Department   string `json:"department"`
	Cycle        string `json:"cycle"`

	// Ordinal ratings on the configured scale. Zero means missing.
	Performance int `json:"performance"`
	Potential   int `json:"potential"`

	TenureYears  float64      `json:"tenure_years"`
	Compensation Compensation `json:"compensation"`

	// Engagement survey score in [0,1]; nil when the employee was not surveyed.
	Engagement *float64 `json:"engagement,omitempty"`

	// ManagerID is a weak reference and never participates in scoring.
	ManagerID string `json:"manager_id,omitempty"`

	// Succession inputs. Competency scores are on a 0-100 scale.
	TargetRole   string             `json:"target_role,omitempty"`
	Competencies map[string]float64 `json:"competencies,omitempty"`
}

// Key returns the per-cycle identity of the record.
func (r *EmployeeRecord) Key() string {
	return r.Cycle + "/" + r.ID
}

// Scope selects a subset of results for aggregation. Empty fields match all.
type Scope struct {
	Organization string `json:"organization,omitempty"`
	Department   string `json:"department,omitempty"`
}

// Matches reports whether a result with the given organization and department
// falls inside the scope.
func (s Scope) Matches(organization, department string) bool {
	if s.Organization != "" && s.Organization != organization {
		return false
	}
	if s.Department != "" && s.Department != department {
		return false
	}
	return true
}

// String renders the scope for logs and error messages.
func (s Scope) String() string {
	switch {
	case s.Organization == "" && s.Department == "":
		return "all"
	case s.Department == "":
		return "org=" + s.Organization
	case s.Organization == "":
		return "dept=" + s.Department
	default:
		return "org=" + s.Organization + ",dept=" + s.Department
	}
}
