// Package consult builds HR consultation prompts from scored data and calls
// an external text generation gateway.
package consult

import (
	"context"

	"github.com/okian/talentgrid/internal/domain/model"
)

// Role identifies the author of a conversation message.
type Role string

// Message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a consultation conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// PromptContext is the structured input to a consultation. Summary and AtRisk
// are read-only snapshots taken before the gateway is called.
type PromptContext struct {
	Question string
	Mode     Mode
	Summary  *model.AggregateSummary
	AtRisk   []model.ScoreResult
	History  []Message
}

// Gateway answers a consultation question. Implementations return
// *ConsultationUnavailableError when they cannot produce an answer.
type Gateway interface {
	Consult(ctx context.Context, pc PromptContext) (string, error)
}

// GatewayFunc adapts a function to the Gateway interface.
type GatewayFunc func(ctx context.Context, pc PromptContext) (string, error)

// Consult calls f.
func (f GatewayFunc) Consult(ctx context.Context, pc PromptContext) (string, error) {
	return f(ctx, pc)
}
