package seeder

import (
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/talentgrid/internal/domain/model"
)

// profile shapes the rating and retention inputs of one kind of employee.
type profile struct {
	weight              int
	perfMin, perfHi     int
	potMin, potHi       int
	tenureMax           float64
	ratioMin, ratioSpan float64 // compensation ratio range
	engMin, engSpan     float64 // engagement range
}

// Weighted mix of the populations a real review cycle produces.
var profiles = []profile{
	{weight: 40, perfMin: 4, perfHi: 7, potMin: 4, potHi: 7, tenureMax: 8, ratioMin: 0.9, ratioSpan: 0.2, engMin: 0.5, engSpan: 0.3},     // core
	{weight: 15, perfMin: 8, perfHi: 10, potMin: 8, potHi: 10, tenureMax: 6, ratioMin: 0.95, ratioSpan: 0.2, engMin: 0.6, engSpan: 0.4},  // stars
	{weight: 10, perfMin: 8, perfHi: 10, potMin: 7, potHi: 10, tenureMax: 3, ratioMin: 0.7, ratioSpan: 0.15, engMin: 0.1, engSpan: 0.3},  // underpaid, disengaged talent
	{weight: 15, perfMin: 1, perfHi: 4, potMin: 1, potHi: 5, tenureMax: 10, ratioMin: 0.85, ratioSpan: 0.3, engMin: 0.2, engSpan: 0.5},   // low performers
	{weight: 10, perfMin: 3, perfHi: 6, potMin: 7, potHi: 10, tenureMax: 2, ratioMin: 0.85, ratioSpan: 0.2, engMin: 0.5, engSpan: 0.4},   // new high potentials
	{weight: 10, perfMin: 6, perfHi: 9, potMin: 2, potHi: 5, tenureMax: 20, ratioMin: 1.0, ratioSpan: 0.25, engMin: 0.4, engSpan: 0.5},   // veterans
}

var competencies = []string{"leadership", "strategy", "execution", "communication"}

// Generate returns cfg.Employees records spread over cfg.Departments. A
// tenth of them (at least one) name a target role so succession plans have
// candidates.
func Generate(cfg *Config) []model.EmployeeRecord {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)) //nolint:gosec // synthetic data

	total := 0
	for _, p := range profiles {
		total += p.weight
	}

	records := make([]model.EmployeeRecord, cfg.Employees)
	for i := range records {
		p := pick(rng, total)
		eng := p.engMin + rng.Float64()*p.engSpan
		rec := model.EmployeeRecord{
			ID:           uuid.NewString(),
			Organization: cfg.Organization,
			Department:   cfg.Departments[i%len(cfg.Departments)],
			Cycle:        cfg.Cycle,
			Performance:  between(rng, p.perfMin, p.perfHi),
			Potential:    between(rng, p.potMin, p.potHi),
			TenureYears:  round1(rng.Float64() * p.tenureMax),
			Compensation: model.Compensation{
				Base:           round1(100_000 * (p.ratioMin + rng.Float64()*p.ratioSpan)),
				MarketMidpoint: 100_000,
			},
			Engagement: &eng,
		}
		if i%10 == 0 {
			rec.TargetRole = "lead-" + rec.Department
			rec.Competencies = make(map[string]float64, len(competencies))
			for _, c := range competencies {
				rec.Competencies[c] = float64(between(rng, 40, 100))
			}
		}
		records[i] = rec
	}
	return records
}

func pick(rng *rand.Rand, total int) profile {
	n := rng.IntN(total)
	for _, p := range profiles {
		if n < p.weight {
			return p
		}
		n -= p.weight
	}
	return profiles[0]
}

// between returns an int in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
