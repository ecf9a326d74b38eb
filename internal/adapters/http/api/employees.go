package api

import (
	"context"
	"net/http"

	"github.com/okian/talentgrid/internal/domain/model"
)

// EmployeeDependencies defines the ingest and synchronous scoring operations.
type EmployeeDependencies interface {
	Ingest(ctx context.Context, rec model.EmployeeRecord) (bool, error)
	ScoreNow(ctx context.Context, rec model.EmployeeRecord) (model.ScoreResult, error)
}

type ackResponse struct {
	Status     string `json:"status"`
	Duplicate  bool   `json:"duplicate"`
	EmployeeID string `json:"employee_id"`
	Cycle      string `json:"cycle"`
}

// EmployeesHandler handles employee record submissions.
type EmployeesHandler struct {
	deps EmployeeDependencies
}

// NewEmployeesHandler creates a new employees handler.
func NewEmployeesHandler(deps EmployeeDependencies) *EmployeesHandler {
	return &EmployeesHandler{deps: deps}
}

// HandlePostEmployee handles POST /employees. The record is validated
// synchronously and scored asynchronously.
func (h *EmployeesHandler) HandlePostEmployee(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_employee"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var rec model.EmployeeRecord
	if err := decodeJSON(w, r, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	duplicate, err := h.deps.Ingest(r.Context(), rec)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	ack := ackResponse{Status: "accepted", Duplicate: duplicate, EmployeeID: rec.ID, Cycle: rec.Cycle}
	if duplicate {
		ack.Status = "duplicate"
		writeJSON(w, http.StatusOK, ack)
		return
	}
	writeJSON(w, http.StatusAccepted, ack)
}

// HandleScore handles POST /score and returns the ScoreResult without
// storing it.
func (h *EmployeesHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var rec model.EmployeeRecord
	if err := decodeJSON(w, r, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	result, err := h.deps.ScoreNow(r.Context(), rec)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
