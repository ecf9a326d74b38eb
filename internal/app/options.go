package service

import (
	"time"

	"github.com/okian/talentgrid/internal/domain/consult"
	"github.com/okian/talentgrid/internal/domain/scoring"
	"github.com/okian/talentgrid/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the ingest queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many (cycle, employee) keys are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithBatchConcurrency bounds the goroutines used to score an import.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchConcurrency = n
		}
	}
}

// WithScoringConfig sets the scoring configuration used at construction.
func WithScoringConfig(cfg scoring.Config) Option {
	return func(s *Service) {
		s.scoringConfig = cfg
	}
}

// WithGateway sets the consultation gateway. Without one the offline stub
// answers.
func WithGateway(g consult.Gateway) Option {
	return func(s *Service) {
		if g != nil {
			s.rawGateway = g
		}
	}
}

// WithConsultTimeout bounds each consultation call.
func WithConsultTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.consultTimeout = d
		}
	}
}

// WithRecordSource enables cycle imports from a relational store.
func WithRecordSource(src RecordSource) Option {
	return func(s *Service) {
		s.source = src
	}
}

// WithForecastDefaults sets the attrition rate (annual %) and cost per hire
// used when a forecast request and the stored scores leave them out.
func WithForecastDefaults(attritionRate, costPerHire float64) Option {
	return func(s *Service) {
		if attritionRate > 0 {
			s.defaultAttrition = attritionRate
		}
		if costPerHire > 0 {
			s.costPerHire = costPerHire
		}
	}
}

// WithPayEquityThreshold sets the relative pay gap above which diversity
// reports flag a gap as significant.
func WithPayEquityThreshold(t float64) Option {
	return func(s *Service) {
		if t > 0 {
			s.payEquityThreshold = t
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
