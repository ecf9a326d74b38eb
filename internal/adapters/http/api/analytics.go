package api

import (
	"context"
	"net/http"

	service "github.com/okian/talentgrid/internal/app"
	"github.com/okian/talentgrid/internal/domain/benchmark"
	"github.com/okian/talentgrid/internal/domain/diversity"
)

// AnalyticsDependencies defines the diversity and KPI benchmark reports.
type AnalyticsDependencies interface {
	DiversityReport(ctx context.Context, req diversity.Request) (diversity.Report, error)
	Benchmark(ctx context.Context, req service.BenchmarkRequest) (benchmark.Report, error)
}

// AnalyticsHandler handles report requests.
type AnalyticsHandler struct {
	deps AnalyticsDependencies
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(deps AnalyticsDependencies) *AnalyticsHandler {
	return &AnalyticsHandler{deps: deps}
}

// HandleDiversityReport handles POST /diversity/report.
func (h *AnalyticsHandler) HandleDiversityReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.diversity_report"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req diversity.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	report, err := h.deps.DiversityReport(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleBenchmark handles POST /benchmark.
func (h *AnalyticsHandler) HandleBenchmark(w http.ResponseWriter, r *http.Request) {
	const op = "api.benchmark"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req service.BenchmarkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	report, err := h.deps.Benchmark(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
