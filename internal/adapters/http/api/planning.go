package api

import (
	"context"
	"net/http"

	service "github.com/okian/talentgrid/internal/app"
	"github.com/okian/talentgrid/internal/domain/forecast"
	"github.com/okian/talentgrid/internal/domain/succession"
)

// PlanningDependencies defines succession and workforce planning.
type PlanningDependencies interface {
	SuccessionPlan(ctx context.Context, req service.SuccessionRequest) (succession.Plan, error)
	Forecast(ctx context.Context, req forecast.Request) (forecast.Plan, error)
}

// PlanningHandler handles succession and forecast requests.
type PlanningHandler struct {
	deps PlanningDependencies
}

// NewPlanningHandler creates a new planning handler.
func NewPlanningHandler(deps PlanningDependencies) *PlanningHandler {
	return &PlanningHandler{deps: deps}
}

// HandleSuccessionPlan handles POST /succession/plan.
func (h *PlanningHandler) HandleSuccessionPlan(w http.ResponseWriter, r *http.Request) {
	const op = "api.succession_plan"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req service.SuccessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	plan, err := h.deps.SuccessionPlan(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// HandleForecast handles POST /forecast.
func (h *PlanningHandler) HandleForecast(w http.ResponseWriter, r *http.Request) {
	const op = "api.forecast"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req forecast.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	plan, err := h.deps.Forecast(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
