package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/talentgrid/internal/domain/model"
)

// ScoreDependencies defines the stored score lookups.
type ScoreDependencies interface {
	GetScore(ctx context.Context, cycle, employeeID string) (model.ScoreResult, error)
	Summary(ctx context.Context, cycle string, scope model.Scope) (model.AggregateSummary, error)
}

// ScoresHandler handles stored score and summary requests.
type ScoresHandler struct {
	deps ScoreDependencies
}

// NewScoresHandler creates a new scores handler.
func NewScoresHandler(deps ScoreDependencies) *ScoresHandler {
	return &ScoresHandler{deps: deps}
}

// HandleGetScore handles GET /scores/{employee_id}?cycle= requests.
func (h *ScoresHandler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_score"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/scores/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	result, err := h.deps.GetScore(r.Context(), r.URL.Query().Get("cycle"), id)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleSummary handles GET /summary?organization=&department=&cycle=.
func (h *ScoresHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	scope := model.Scope{Organization: q.Get("organization"), Department: q.Get("department")}
	summary, err := h.deps.Summary(r.Context(), q.Get("cycle"), scope)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
