package api

import (
	"context"
	"net/http"
	"strings"

	service "github.com/okian/talentgrid/internal/app"
	"github.com/okian/talentgrid/internal/domain/consult"
)

// ConsultDependencies defines the consultation operations.
type ConsultDependencies interface {
	Consult(ctx context.Context, req service.ConsultRequest) (service.ConsultReply, error)
	SuggestedPrompts(mode string) (consult.Mode, []string, error)
	ClearSession(id string) bool
}

type promptsResponse struct {
	Mode    consult.Mode `json:"mode"`
	Prompts []string     `json:"prompts"`
}

// ConsultHandler handles consultation requests.
type ConsultHandler struct {
	deps ConsultDependencies
}

// NewConsultHandler creates a new consult handler.
func NewConsultHandler(deps ConsultDependencies) *ConsultHandler {
	return &ConsultHandler{deps: deps}
}

// HandleConsult handles POST /consult. The session ID of the reply
// continues the conversation.
func (h *ConsultHandler) HandleConsult(w http.ResponseWriter, r *http.Request) {
	const op = "api.consult"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req service.ConsultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	reply, err := h.deps.Consult(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

// HandlePrompts handles GET /consult/prompts?mode=.
func (h *ConsultHandler) HandlePrompts(w http.ResponseWriter, r *http.Request) {
	const op = "api.consult_prompts"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	mode, prompts, err := h.deps.SuggestedPrompts(r.URL.Query().Get("mode"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, promptsResponse{Mode: mode, Prompts: prompts})
}

// HandleClearSession handles DELETE /consult/sessions/{id}.
func (h *ConsultHandler) HandleClearSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.consult_clear_session"
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/consult/sessions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if !h.deps.ClearSession(id) {
		writeError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
