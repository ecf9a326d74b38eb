// Package config defines service configuration and how it is loaded.
//
// Conventions:
//   - New returns a Config populated with defaults.
//   - Load layers an optional YAML file and TALENTGRID_ env vars on top.
//   - ScoringConfig projects the flat keys onto scoring.Config.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/okian/talentgrid/internal/domain/scoring"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory ingest queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets how many (cycle, employee) keys the deduper remembers.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxAtRiskLimit caps GET /at-risk?limit.
	MaxAtRiskLimit int `koanf:"max_at_risk_limit"`

	// ScoreBatchConcurrency bounds the goroutines used to score an import.
	ScoreBatchConcurrency int `koanf:"score_batch_concurrency"`

	// 9-box grid.
	RatingScaleMax int     `koanf:"rating_scale_max"`
	GridLow        float64 `koanf:"grid_low"`
	GridHigh       float64 `koanf:"grid_high"`

	// Flight-risk model.
	RiskTenureWeight       float64 `koanf:"risk_tenure_weight"`
	RiskCompensationWeight float64 `koanf:"risk_compensation_weight"`
	RiskEngagementWeight   float64 `koanf:"risk_engagement_weight"`
	TenureDecayYears       float64 `koanf:"tenure_decay_years"`
	CompTargetRatio        float64 `koanf:"comp_target_ratio"`
	CompSpan               float64 `koanf:"comp_span"`
	DefaultEngagement      float64 `koanf:"default_engagement"`
	RiskBucketCritical     float64 `koanf:"risk_bucket_critical"`
	RiskBucketHigh         float64 `koanf:"risk_bucket_high"`
	RiskBucketMedium       float64 `koanf:"risk_bucket_medium"`
	RiskBucketLow          float64 `koanf:"risk_bucket_low"`

	// Succession and forecasting.
	RequiredExperienceYears float64 `koanf:"required_experience_years"`
	DefaultAttritionRate    float64 `koanf:"default_attrition_rate"`
	DefaultCostPerHire      int     `koanf:"default_cost_per_hire"`

	// PayEquityThreshold is the relative pay gap above which diversity
	// reports flag a gap as significant.
	PayEquityThreshold float64 `koanf:"pay_equity_threshold"`

	// GeminiAPIKey enables the Gemini consultation gateway. Empty selects the
	// offline stub.
	GeminiAPIKey   string        `koanf:"gemini_api_key"`
	GeminiModel    string        `koanf:"gemini_model"`
	ConsultTimeout time.Duration `koanf:"consult_timeout"`

	// DatabaseURL enables POST /imports. Empty disables it.
	DatabaseURL string `koanf:"database_url"`
}

// New creates a Config with defaults.
func New() *Config {
	sc := scoring.DefaultConfig()
	return &Config{
		LogLevel:              "info",
		LogFormat:             "text",
		Addr:                  ":9080",
		QueueSize:             10_000,
		WorkerCount:           runtime.NumCPU() * 2,
		DedupeSize:            50_000,
		MaxAtRiskLimit:        100,
		ScoreBatchConcurrency: runtime.NumCPU(),

		RatingScaleMax: sc.RatingScaleMax,
		GridLow:        sc.Grid.Low,
		GridHigh:       sc.Grid.High,

		RiskTenureWeight:       sc.Weights.Tenure,
		RiskCompensationWeight: sc.Weights.Compensation,
		RiskEngagementWeight:   sc.Weights.Engagement,
		TenureDecayYears:       sc.TenureDecayYears,
		CompTargetRatio:        sc.CompTargetRatio,
		CompSpan:               sc.CompSpan,
		DefaultEngagement:      sc.DefaultEngagement,
		RiskBucketCritical:     sc.Buckets.Critical,
		RiskBucketHigh:         sc.Buckets.High,
		RiskBucketMedium:       sc.Buckets.Medium,
		RiskBucketLow:          sc.Buckets.Low,

		RequiredExperienceYears: sc.RequiredExperienceYears,
		DefaultAttritionRate:    15,
		DefaultCostPerHire:      4000,
		PayEquityThreshold:      0.03,

		GeminiModel:    "gemini-2.5-pro",
		ConsultTimeout: 20 * time.Second,
	}
}

// ScoringConfig projects the scoring keys onto scoring.Config.
func (c *Config) ScoringConfig() scoring.Config {
	return scoring.Config{
		RatingScaleMax: c.RatingScaleMax,
		Grid:           scoring.GridThresholds{Low: c.GridLow, High: c.GridHigh},
		Weights: scoring.RiskWeights{
			Tenure:       c.RiskTenureWeight,
			Compensation: c.RiskCompensationWeight,
			Engagement:   c.RiskEngagementWeight,
		},
		Buckets: scoring.RiskBuckets{
			Critical: c.RiskBucketCritical,
			High:     c.RiskBucketHigh,
			Medium:   c.RiskBucketMedium,
			Low:      c.RiskBucketLow,
		},
		TenureDecayYears:        c.TenureDecayYears,
		CompTargetRatio:         c.CompTargetRatio,
		CompSpan:                c.CompSpan,
		DefaultEngagement:       c.DefaultEngagement,
		RequiredExperienceYears: c.RequiredExperienceYears,
	}
}

// Validate checks the service keys and the projected scoring config.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.DedupeSize < 1:
		return fmt.Errorf("%w: dedupe_size must be positive", ErrInvalidConfig)
	case c.MaxAtRiskLimit < 1:
		return fmt.Errorf("%w: max_at_risk_limit must be positive", ErrInvalidConfig)
	case c.DefaultAttritionRate < 0 || c.DefaultAttritionRate > 100:
		return fmt.Errorf("%w: default_attrition_rate must be within [0,100]", ErrInvalidConfig)
	case c.DefaultCostPerHire < 0:
		return fmt.Errorf("%w: default_cost_per_hire must not be negative", ErrInvalidConfig)
	case c.PayEquityThreshold <= 0 || c.PayEquityThreshold >= 1:
		return fmt.Errorf("%w: pay_equity_threshold must be within (0,1)", ErrInvalidConfig)
	case c.ConsultTimeout <= 0:
		return fmt.Errorf("%w: consult_timeout must be positive", ErrInvalidConfig)
	}
	if err := c.ScoringConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
