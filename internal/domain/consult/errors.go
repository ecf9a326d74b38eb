package consult

import "errors"

// ErrConsultationUnavailable matches every consultation failure.
var ErrConsultationUnavailable = errors.New("consultation unavailable")

// Failure reasons.
const (
	ReasonTimeout       = "timeout"
	ReasonCanceled      = "canceled"
	ReasonRateLimited   = "rate_limited"
	ReasonEmpty         = "empty_response"
	ReasonNotConfigured = "not_configured"
	ReasonUpstream      = "upstream"
)

// ConsultationUnavailableError reports why no answer could be produced.
type ConsultationUnavailableError struct {
	Reason string
	Err    error
}

func (e *ConsultationUnavailableError) Error() string {
	if e.Err == nil {
		return "consultation unavailable: " + e.Reason
	}
	return "consultation unavailable: " + e.Reason + ": " + e.Err.Error()
}

func (e *ConsultationUnavailableError) Unwrap() error { return e.Err }

// Is matches ErrConsultationUnavailable.
func (e *ConsultationUnavailableError) Is(target error) bool {
	return target == ErrConsultationUnavailable
}

// Unavailable builds a ConsultationUnavailableError.
func Unavailable(reason string, err error) error {
	return &ConsultationUnavailableError{Reason: reason, Err: err}
}
