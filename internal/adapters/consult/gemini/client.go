// Package gemini answers consultations with Google's Gemini models.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/genai"

	"github.com/okian/talentgrid/internal/domain/consult"
	"github.com/okian/talentgrid/pkg/logger"
)

const (
	defaultModel           = "gemini-2.5-pro"
	defaultMaxOutputTokens = 2048
	defaultTemperature     = 0.4
)

// ErrMissingAPIKey is returned by New when no API key is configured.
var ErrMissingAPIKey = errors.New("gemini api key is required")

// contentGenerator is the subset of *genai.Models used by Client.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the model name.
func WithModel(name string) Option {
	return func(c *Client) {
		if name = strings.TrimSpace(name); name != "" {
			c.model = name
		}
	}
}

// WithMaxOutputTokens bounds the answer length.
func WithMaxOutputTokens(n int32) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// Client implements consult.Gateway on the Gemini API.
type Client struct {
	models    contentGenerator
	model     string
	maxTokens int32
	log       logger.Logger
}

// New creates a client for the Gemini API backend.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, goerr.Wrap(ErrMissingAPIKey, "failed to create gemini client")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create genai client")
	}
	return newClient(gc.Models, opts...), nil
}

func newClient(models contentGenerator, opts ...Option) *Client {
	c := &Client{
		models:    models,
		model:     defaultModel,
		maxTokens: defaultMaxOutputTokens,
		log:       logger.Named("gemini"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Consult sends the conversation history plus the question, with the mode
// persona and HR context as the system instruction.
func (c *Client) Consult(ctx context.Context, pc consult.PromptContext) (string, error) {
	question := strings.TrimSpace(pc.Question)
	if question == "" {
		return "", consult.Unavailable(consult.ReasonUpstream,
			goerr.New("question must not be empty"))
	}

	contents := make([]*genai.Content, 0, len(pc.History)+1)
	for _, m := range pc.History {
		var role genai.Role = genai.RoleUser
		if m.Role == consult.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	contents = append(contents, genai.NewContentFromText(question, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(consult.SystemInstruction(&pc), genai.RoleUser),
		Temperature:       genai.Ptr[float32](defaultTemperature),
		MaxOutputTokens:   c.maxTokens,
	}

	resp, err := c.models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		wrapped := goerr.Wrap(err, "failed to generate content",
			goerr.V("model", c.model), goerr.V("mode", string(pc.Mode)))
		c.log.Warn(ctx, "gemini request failed", logger.Error(wrapped))
		return "", consult.Unavailable(reasonFor(err), wrapped)
	}

	text := responseText(resp)
	if text == "" {
		return "", consult.Unavailable(consult.ReasonEmpty,
			goerr.New("gemini api returned empty response", goerr.V("model", c.model)))
	}
	return text, nil
}

func reasonFor(err error) string {
	var apiErr genai.APIError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return consult.ReasonTimeout
	case errors.Is(err, context.Canceled):
		return consult.ReasonCanceled
	case errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests:
		return consult.ReasonRateLimited
	default:
		return consult.ReasonUpstream
	}
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}
	return strings.TrimSpace(b.String())
}
