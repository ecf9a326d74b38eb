// Package scoring places employees on the 9-box grid, computes flight risk,
// and aggregates scored results into scoped summaries.
package scoring

import (
	"fmt"
	"math"
)

// GridThresholds are the cut points, as a fraction of the rating scale,
// that bucket a rating into low, medium and high.
type GridThresholds struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// RiskWeights weight the three flight-risk factors. They are normalized to
// sum to 1 at scoring time.
type RiskWeights struct {
	Tenure       float64 `json:"tenure"`
	Compensation float64 `json:"compensation"`
	Engagement   float64 `json:"engagement"`
}

// RiskBuckets are inclusive lower bounds on the risk index for each level.
// Anything below Low is Very Low.
type RiskBuckets struct {
	Critical float64 `json:"critical"`
	High     float64 `json:"high"`
	Medium   float64 `json:"medium"`
	Low      float64 `json:"low"`
}

// Config is the complete, inspectable scoring configuration.
type Config struct {
	// RatingScaleMax is the top of the ordinal rating scale; ratings run 1..max.
	RatingScaleMax int            `json:"rating_scale_max"`
	Grid           GridThresholds `json:"grid"`
	Weights        RiskWeights    `json:"weights"`
	Buckets        RiskBuckets    `json:"buckets"`

	// TenureDecayYears is the e-folding time of the tenure factor.
	TenureDecayYears float64 `json:"tenure_decay_years"`

	// Compensation risk is (CompTargetRatio - ratio) / CompSpan, clamped to [0,1].
	CompTargetRatio float64 `json:"comp_target_ratio"`
	CompSpan        float64 `json:"comp_span"`

	// DefaultEngagement stands in for employees without a survey response.
	DefaultEngagement float64 `json:"default_engagement"`

	// RequiredExperienceYears is the experience baseline for succession readiness.
	RequiredExperienceYears float64 `json:"required_experience_years"`
}

// DefaultConfig returns the tertile grid and the default risk model.
func DefaultConfig() Config {
	return Config{
		RatingScaleMax: 10,
		Grid:           GridThresholds{Low: 1.0 / 3, High: 2.0 / 3},
		Weights:        RiskWeights{Tenure: 0.30, Compensation: 0.35, Engagement: 0.35},
		Buckets:        RiskBuckets{Critical: 0.8, High: 0.6, Medium: 0.4, Low: 0.2},

		TenureDecayYears:        4,
		CompTargetRatio:         1.1,
		CompSpan:                0.4,
		DefaultEngagement:       0.5,
		RequiredExperienceYears: 5,
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	switch {
	case c.RatingScaleMax < 2:
		return fmt.Errorf("%w: rating_scale_max must be at least 2", ErrInvalidConfig)
	case !(c.Grid.Low > 0 && c.Grid.Low < c.Grid.High && c.Grid.High <= 1):
		return fmt.Errorf("%w: grid thresholds must satisfy 0 < low < high <= 1", ErrInvalidConfig)
	case c.Weights.Tenure < 0 || c.Weights.Compensation < 0 || c.Weights.Engagement < 0:
		return fmt.Errorf("%w: risk weights must not be negative", ErrInvalidConfig)
	case c.Weights.sum() <= 0:
		return fmt.Errorf("%w: risk weights must not all be zero", ErrInvalidConfig)
	case !(c.Buckets.Critical <= 1 && c.Buckets.Critical > c.Buckets.High &&
		c.Buckets.High > c.Buckets.Medium && c.Buckets.Medium > c.Buckets.Low && c.Buckets.Low > 0):
		return fmt.Errorf("%w: risk buckets must be strictly descending within (0,1]", ErrInvalidConfig)
	case c.TenureDecayYears <= 0 || math.IsInf(c.TenureDecayYears, 0):
		return fmt.Errorf("%w: tenure_decay_years must be positive", ErrInvalidConfig)
	case c.CompTargetRatio <= 0 || c.CompSpan <= 0:
		return fmt.Errorf("%w: comp_target_ratio and comp_span must be positive", ErrInvalidConfig)
	case c.DefaultEngagement < 0 || c.DefaultEngagement > 1:
		return fmt.Errorf("%w: default_engagement must be within [0,1]", ErrInvalidConfig)
	case c.RequiredExperienceYears <= 0:
		return fmt.Errorf("%w: required_experience_years must be positive", ErrInvalidConfig)
	}
	return nil
}

func (w RiskWeights) sum() float64 {
	return w.Tenure + w.Compensation + w.Engagement
}
