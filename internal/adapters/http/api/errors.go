package api

import (
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/talentgrid/internal/app"
	"github.com/okian/talentgrid/internal/adapters/mq/queue"
	"github.com/okian/talentgrid/internal/adapters/repository"
	"github.com/okian/talentgrid/internal/domain/benchmark"
	"github.com/okian/talentgrid/internal/domain/consult"
	"github.com/okian/talentgrid/internal/domain/diversity"
	"github.com/okian/talentgrid/internal/domain/forecast"
	"github.com/okian/talentgrid/internal/domain/scoring"
	"github.com/okian/talentgrid/pkg/metrics"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrBackpressure = errors.New("backpressure")
	ErrUnavailable  = errors.New("service unavailable")
)

// NewKind tags kind with the operation that raised it.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags err with op and kind so errors.Is matches both.
func WrapKind(op string, kind, err error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// classify maps an error from the service layer to a status and code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, scoring.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, forecast.ErrInvalidRequest),
		errors.Is(err, diversity.ErrInvalidRequest),
		errors.Is(err, benchmark.ErrInvalidRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrUnknownMode):
		return http.StatusBadRequest, "unknown_mode"
	case errors.Is(err, scoring.ErrEmptyScope):
		return http.StatusNotFound, "empty_scope"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, queue.ErrFull), errors.Is(err, ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, consult.ErrConsultationUnavailable):
		return http.StatusServiceUnavailable, "consultation_unavailable"
	case errors.Is(err, service.ErrImportUnavailable):
		return http.StatusServiceUnavailable, "import_unavailable"
	case errors.Is(err, queue.ErrClosed),
		errors.Is(err, service.ErrNotStarted),
		errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeServiceError writes err with the status classify picks for it.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		metrics.RecordErrorByComponent("api", op)
	}
	writeError(w, status, code, err)
}
