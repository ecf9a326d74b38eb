package scoring

import (
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/okian/talentgrid/internal/domain/model"
	"github.com/okian/talentgrid/internal/domain/succession"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithConcurrency bounds the number of goroutines used by ScoreAll.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// Engine scores employee records. It holds only immutable configuration and
// is safe for concurrent use.
type Engine struct {
	cfg         Config
	weightSum   float64
	concurrency int
}

// NewEngine validates cfg and builds an Engine.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:         cfg,
		weightSum:   cfg.Weights.sum(),
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() Config { return e.cfg }

// Score computes the ScoreResult for one record. The manager reference is
// ignored; everything else that participates is listed in result.Factors.
func (e *Engine) Score(rec model.EmployeeRecord) (model.ScoreResult, error) { //nolint:gocritic // hugeParam: records are immutable values
	if err := e.validate(&rec); err != nil {
		return model.ScoreResult{}, err
	}

	scale := float64(e.cfg.RatingScaleMax)
	perf := float64(rec.Performance) / scale
	pot := float64(rec.Potential) / scale
	cell := model.Cell{
		Performance: levelFor(perf, e.cfg.Grid),
		Potential:   levelFor(pot, e.cfg.Grid),
	}

	engagement := e.cfg.DefaultEngagement
	if rec.Engagement != nil {
		engagement = *rec.Engagement
	}
	factors := []model.Factor{
		e.factor(FactorTenure, e.cfg.Weights.Tenure, tenureRisk(rec.TenureYears, e.cfg.TenureDecayYears)),
		e.factor(FactorCompensation, e.cfg.Weights.Compensation,
			compensationRisk(rec.Compensation.Ratio(), e.cfg.CompTargetRatio, e.cfg.CompSpan)),
		e.factor(FactorEngagement, e.cfg.Weights.Engagement, engagementRisk(engagement)),
	}
	index := 0.0
	for _, f := range factors {
		index += f.Contribution
	}
	index = clamp01(index)
	level := LevelFor(index, e.cfg.Buckets)

	readiness := succession.Assess(succession.Candidate{
		EmployeeID:      rec.ID,
		TargetRole:      rec.TargetRole,
		Competencies:    rec.Competencies,
		ExperienceYears: rec.TenureYears,
	}, e.cfg.RequiredExperienceYears)

	return model.ScoreResult{
		EmployeeID:      rec.ID,
		Organization:    rec.Organization,
		Department:      rec.Department,
		Cycle:           rec.Cycle,
		Cell:            cell,
		CellIndex:       cell.Index(),
		CellLabel:       cell.Label(),
		Category:        CategoryFor(perf*100, pot*100),
		RiskIndex:       index,
		FlightRisk:      FlightProbability(index),
		RiskLevel:       level,
		Urgency:         Urgency(level),
		TimeToDeparture: TimeToDeparture(level),
		Factors:         factors,
		TargetRole:      rec.TargetRole,
		Readiness:       readiness.Level,
		Recommendations: recommend(level, factors),
	}, nil
}

func (e *Engine) factor(name string, weight, value float64) model.Factor {
	w := weight / e.weightSum
	return model.Factor{Name: name, Weight: w, Value: value, Contribution: w * value}
}

func (e *Engine) validate(rec *model.EmployeeRecord) error {
	invalid := func(field, reason string) error {
		return &InvalidInputError{EmployeeID: rec.ID, Field: field, Reason: reason}
	}
	scaleMax := e.cfg.RatingScaleMax
	switch {
	case strings.TrimSpace(rec.ID) == "":
		return invalid("id", "missing")
	case strings.TrimSpace(rec.Cycle) == "":
		return invalid("cycle", "missing")
	case rec.Performance == 0:
		return invalid("performance", "missing")
	case rec.Performance < 1 || rec.Performance > scaleMax:
		return invalid("performance", outOfScale(scaleMax))
	case rec.Potential == 0:
		return invalid("potential", "missing")
	case rec.Potential < 1 || rec.Potential > scaleMax:
		return invalid("potential", outOfScale(scaleMax))
	case rec.TenureYears < 0 || math.IsNaN(rec.TenureYears) || math.IsInf(rec.TenureYears, 0):
		return invalid("tenure_years", "must be a non-negative number")
	case !(rec.Compensation.Base > 0) || !(rec.Compensation.MarketMidpoint > 0):
		return invalid("compensation", "base and market_midpoint must be positive")
	case rec.Engagement != nil && !(*rec.Engagement >= 0 && *rec.Engagement <= 1):
		return invalid("engagement", "must be within [0,1]")
	}
	for name, v := range rec.Competencies {
		if !(v >= 0 && v <= 100) {
			return invalid("competencies."+name, "must be within [0,100]")
		}
	}
	return nil
}

func outOfScale(scaleMax int) string {
	return "out of scale 1.." + strconv.Itoa(scaleMax)
}
