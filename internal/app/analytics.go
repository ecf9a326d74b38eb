package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/okian/talentgrid/internal/domain/benchmark"
	"github.com/okian/talentgrid/internal/domain/diversity"
	"github.com/okian/talentgrid/pkg/logger"
	"github.com/okian/talentgrid/pkg/metrics"
)

// BenchmarkRequest scores KPI values against a preset suite.
type BenchmarkRequest struct {
	Suite  string             `json:"suite,omitempty"`
	Entity string             `json:"entity_id,omitempty"`
	Values map[string]float64 `json:"values"`
}

// DiversityReport analyzes the demographics in req. A missing report ID is
// filled with a fresh UUID. Invalid demographics are
// diversity.ErrInvalidRequest.
func (s *Service) DiversityReport(ctx context.Context, req diversity.Request) (diversity.Report, error) { //nolint:gocritic // hugeParam: request is decoded once per call
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	report, err := s.analyzer.Report(req)
	if err != nil {
		metrics.RecordAnalyticsReport("diversity", "invalid")
		return diversity.Report{}, err
	}
	metrics.RecordAnalyticsReport("diversity", "ok")
	s.logger.Debug(ctx, "diversity report built",
		logger.String("report_id", report.ID),
		logger.String("organization", report.Organization),
		logger.Float64("score", report.Score),
	)
	return report, nil
}

// Benchmark scores req.Values against the named suite. An empty suite
// selects the HR suite and an empty entity reads "unknown".
func (s *Service) Benchmark(ctx context.Context, req BenchmarkRequest) (benchmark.Report, error) {
	suite, err := benchmark.ParseSuite(req.Suite)
	if err != nil {
		metrics.RecordAnalyticsReport("benchmark", "invalid")
		return benchmark.Report{}, err
	}
	engine, err := benchmark.NewSuite(suite)
	if err != nil {
		metrics.RecordAnalyticsReport("benchmark", "invalid")
		return benchmark.Report{}, err
	}
	entity := req.Entity
	if entity == "" {
		entity = "unknown"
	}
	report, err := engine.Analyze(entity, req.Values)
	if err != nil {
		metrics.RecordAnalyticsReport("benchmark", "invalid")
		return benchmark.Report{}, err
	}
	metrics.RecordAnalyticsReport("benchmark", "ok")
	s.logger.Debug(ctx, "benchmark report built",
		logger.String("suite", string(suite)),
		logger.String("entity_id", entity),
		logger.Float64("score", report.Score),
		logger.String("grade", report.Grade),
	)
	return report, nil
}
