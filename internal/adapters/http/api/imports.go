package api

import (
	"context"
	"net/http"

	service "github.com/okian/talentgrid/internal/app"
)

// ImportDependencies defines cycle imports from the relational store.
type ImportDependencies interface {
	Import(ctx context.Context, cycle string) (service.ImportResult, error)
}

// ImportsHandler handles import requests.
type ImportsHandler struct {
	deps ImportDependencies
}

// NewImportsHandler creates a new imports handler.
func NewImportsHandler(deps ImportDependencies) *ImportsHandler {
	return &ImportsHandler{deps: deps}
}

// HandleImport handles POST /imports?cycle=. The response lists invalid
// records and how many were dropped by backpressure.
func (h *ImportsHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	res, err := h.deps.Import(r.Context(), r.URL.Query().Get("cycle"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusAccepted, res)
}
