package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okian/talentgrid/internal/domain/types"
)

const defaultAtRiskLimit = 10

// AtRiskDependencies defines the flight-risk ranking query.
type AtRiskDependencies interface {
	AtRisk(ctx context.Context, cycle string, n int) ([]types.RiskEntry, error)
}

// AtRiskHandler handles at-risk ranking requests.
type AtRiskHandler struct {
	deps     AtRiskDependencies
	maxLimit int
}

// NewAtRiskHandler creates a new at-risk handler.
func NewAtRiskHandler(deps AtRiskDependencies, maxLimit int) *AtRiskHandler {
	if maxLimit < 1 {
		maxLimit = 100
	}
	return &AtRiskHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetAtRisk handles GET /at-risk?limit=N&cycle= requests. A missing
// limit returns the top 10.
func (h *AtRiskHandler) HandleGetAtRisk(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_at_risk"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := min(defaultAtRiskLimit, h.maxLimit)
	if limit := r.URL.Query().Get("limit"); limit != "" {
		var err error
		n, err = strconv.Atoi(limit)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.AtRisk(r.Context(), r.URL.Query().Get("cycle"), n)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
