package repository

import (
	"time"

	"github.com/okian/talentgrid/internal/domain/model"
)

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithMetricsUpdateInterval sets how often the store publishes its scored
// and high-risk gauges.
func WithMetricsUpdateInterval(interval time.Duration) Option {
	return func(s *TreapStore) {
		if interval > 0 {
			s.metricsUpdateInterval = interval
		}
	}
}

// WithHighRiskLevels sets the risk levels counted by the high-risk gauge.
// Critical and High are counted by default.
func WithHighRiskLevels(levels ...model.RiskLevel) Option {
	return func(s *TreapStore) {
		if len(levels) == 0 {
			return
		}
		s.highRiskLevels = make(map[model.RiskLevel]struct{}, len(levels))
		for _, l := range levels {
			s.highRiskLevels[l] = struct{}{}
		}
	}
}
