// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	EmployeeDependencies
	ScoreDependencies
	AtRiskDependencies
	ConsultDependencies
	PlanningDependencies
	ImportDependencies
	AnalyticsDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	opsHandler       *OpsHandler
	employeesHandler *EmployeesHandler
	scoresHandler    *ScoresHandler
	atRiskHandler    *AtRiskHandler
	consultHandler   *ConsultHandler
	planningHandler  *PlanningHandler
	importsHandler   *ImportsHandler
	analyticsHandler *AnalyticsHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers. maxAtRiskLimit caps
// the limit accepted by GET /at-risk.
func NewServer(deps Dependencies, maxAtRiskLimit int) *Server {
	return &Server{
		opsHandler:       NewOpsHandler(deps),
		employeesHandler: NewEmployeesHandler(deps),
		scoresHandler:    NewScoresHandler(deps),
		atRiskHandler:    NewAtRiskHandler(deps, maxAtRiskLimit),
		consultHandler:   NewConsultHandler(deps),
		planningHandler:  NewPlanningHandler(deps),
		importsHandler:   NewImportsHandler(deps),
		analyticsHandler: NewAnalyticsHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.opsHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.opsHandler.HandleStats, "stats"))

	mux.HandleFunc("/employees", MetricsMiddleware(s.employeesHandler.HandlePostEmployee, "employees"))
	mux.HandleFunc("/score", MetricsMiddleware(s.employeesHandler.HandleScore, "score"))
	mux.HandleFunc("/scores/", MetricsMiddleware(s.scoresHandler.HandleGetScore, "scores"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.scoresHandler.HandleSummary, "summary"))
	mux.HandleFunc("/at-risk", MetricsMiddleware(s.atRiskHandler.HandleGetAtRisk, "at_risk"))

	mux.HandleFunc("/consult", MetricsMiddleware(s.consultHandler.HandleConsult, "consult"))
	mux.HandleFunc("/consult/prompts", MetricsMiddleware(s.consultHandler.HandlePrompts, "consult_prompts"))
	mux.HandleFunc("/consult/sessions/", MetricsMiddleware(s.consultHandler.HandleClearSession, "consult_sessions"))

	mux.HandleFunc("/succession/plan", MetricsMiddleware(s.planningHandler.HandleSuccessionPlan, "succession_plan"))
	mux.HandleFunc("/forecast", MetricsMiddleware(s.planningHandler.HandleForecast, "forecast"))
	mux.HandleFunc("/imports", MetricsMiddleware(s.importsHandler.HandleImport, "imports"))

	mux.HandleFunc("/diversity/report", MetricsMiddleware(s.analyticsHandler.HandleDiversityReport, "diversity_report"))
	mux.HandleFunc("/benchmark", MetricsMiddleware(s.analyticsHandler.HandleBenchmark, "benchmark"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}
