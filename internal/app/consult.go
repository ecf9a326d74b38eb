package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/talentgrid/internal/domain/consult"
	"github.com/okian/talentgrid/internal/domain/model"
	"github.com/okian/talentgrid/internal/domain/scoring"
	"github.com/okian/talentgrid/pkg/logger"
	"github.com/okian/talentgrid/pkg/metrics"
)

const (
	maxAtRiskContext = 10
	maxSessions      = 1000
)

// ConsultRequest is one question to the consultation gateway.
type ConsultRequest struct {
	SessionID    string `json:"session_id,omitempty"`
	Question     string `json:"question"`
	Mode         string `json:"mode,omitempty"`
	Organization string `json:"organization,omitempty"`
	Department   string `json:"department,omitempty"`
	Cycle        string `json:"cycle,omitempty"`
}

// ConsultReply is the gateway's answer.
type ConsultReply struct {
	SessionID string       `json:"session_id"`
	Mode      consult.Mode `json:"mode"`
	Answer    string       `json:"answer"`
}

// Consult asks the gateway about the stored scores in the requested scope.
// The summary is computed before the call, so a slow or failing gateway
// cannot affect scoring. Gateway failures are
// *consult.ConsultationUnavailableError. A session is only started once an
// answer arrives; a failed first question returns no session ID.
func (s *Service) Consult(ctx context.Context, req ConsultRequest) (ConsultReply, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return ConsultReply{}, fmt.Errorf("%w: question is required", ErrInvalidRequest)
	}

	mode := consult.DetectMode(question)
	if req.Mode != "" {
		m, ok := consult.ParseMode(req.Mode)
		if !ok {
			return ConsultReply{}, ErrUnknownMode
		}
		mode = m
	}

	pc := consult.PromptContext{
		Question: question,
		Mode:     mode,
	}
	sessionID := ""
	if conv := s.sessions.lookup(req.SessionID); conv != nil {
		conv.SetMode(mode)
		pc.History = conv.History()
		sessionID = conv.ID
	}
	if s.isStarted() {
		scope := model.Scope{Organization: req.Organization, Department: req.Department}
		results := s.store.List(ctx, req.Cycle, scope)
		if summary, err := scoring.Aggregate(results, scope); err == nil {
			pc.Summary = &summary
		}
		pc.AtRisk = results[:min(len(results), maxAtRiskContext)]
	}

	metrics.RecordConsultRequest(string(mode))
	start := time.Now()
	answer, err := s.gateway.Consult(ctx, pc)
	metrics.RecordConsultLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		var cu *consult.ConsultationUnavailableError
		reason := consult.ReasonUpstream
		if errors.As(err, &cu) {
			reason = cu.Reason
		}
		metrics.RecordConsultFailure(reason)
		s.logger.Warn(ctx, "consultation unavailable",
			logger.String("session_id", sessionID),
			logger.String("mode", string(mode)),
			logger.String("reason", reason),
			logger.Error(err),
		)
		return ConsultReply{SessionID: sessionID, Mode: mode}, err
	}

	conv := s.sessions.lookup(sessionID)
	if conv == nil {
		conv = s.sessions.create()
		conv.SetMode(mode)
	}
	conv.Record(question, answer)
	return ConsultReply{SessionID: conv.ID, Mode: mode, Answer: answer}, nil
}

// SuggestedPrompts returns starter questions for the named mode. An empty
// name selects the general mode.
func (s *Service) SuggestedPrompts(mode string) (consult.Mode, []string, error) {
	if strings.TrimSpace(mode) == "" {
		return consult.ModeGeneral, consult.SuggestedPrompts(consult.ModeGeneral), nil
	}
	m, ok := consult.ParseMode(mode)
	if !ok {
		return "", nil, ErrUnknownMode
	}
	return m, consult.SuggestedPrompts(m), nil
}

// ClearSession forgets a conversation. It reports whether one existed.
func (s *Service) ClearSession(id string) bool {
	return s.sessions.remove(id)
}

// sessions holds conversations by ID. When full, the least recently used
// conversation is dropped.
type sessions struct {
	mu    sync.Mutex
	byID  map[string]*consult.Conversation
	used  map[string]time.Time
	limit int
}

func newSessions() *sessions {
	return &sessions{
		byID:  make(map[string]*consult.Conversation),
		used:  make(map[string]time.Time),
		limit: maxSessions,
	}
}

// lookup returns the conversation for id, or nil when id is empty or
// unknown.
func (ss *sessions) lookup(id string) *consult.Conversation {
	if id == "" {
		return nil
	}
	ss.mu.Lock()
	defer ss.mu.Unlock()

	c, ok := ss.byID[id]
	if !ok {
		return nil
	}
	ss.used[id] = time.Now()
	return c
}

// create starts a conversation under a fresh UUID.
func (ss *sessions) create() *consult.Conversation {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if len(ss.byID) >= ss.limit {
		ss.evictOldest()
	}
	id := uuid.NewString()
	c := consult.NewConversation(id)
	ss.byID[id] = c
	ss.used[id] = time.Now()
	return c
}

func (ss *sessions) evictOldest() {
	var (
		oldestID string
		oldestAt time.Time
	)
	for id, at := range ss.used {
		if oldestID == "" || at.Before(oldestAt) {
			oldestID, oldestAt = id, at
		}
	}
	delete(ss.byID, oldestID)
	delete(ss.used, oldestID)
}

func (ss *sessions) remove(id string) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if _, ok := ss.byID[id]; !ok {
		return false
	}
	delete(ss.byID, id)
	delete(ss.used, id)
	return true
}

func (ss *sessions) len() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return len(ss.byID)
}
