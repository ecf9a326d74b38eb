package consult

import "sync"

// MaxHistory is the number of messages a Conversation retains.
const MaxHistory = 20

// Conversation is a consultation session. Its history keeps the most recent
// MaxHistory messages. It is safe for concurrent use.
type Conversation struct {
	ID string

	mu      sync.Mutex
	mode    Mode
	history []Message
}

// NewConversation starts an empty conversation in ModeGeneral.
func NewConversation(id string) *Conversation {
	return &Conversation{ID: id, mode: ModeGeneral}
}

// Mode returns the mode of the latest exchange.
func (c *Conversation) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetMode pins the conversation mode.
func (c *Conversation) SetMode(m Mode) {
	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()
}

// History returns a copy of the retained messages, oldest first.
func (c *Conversation) History() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.history...)
}

// Record appends a completed question and answer exchange.
func (c *Conversation) Record(question, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history,
		Message{Role: RoleUser, Content: question},
		Message{Role: RoleAssistant, Content: answer})
	if n := len(c.history); n > MaxHistory {
		c.history = append([]Message(nil), c.history[n-MaxHistory:]...)
	}
}

// Clear drops the history.
func (c *Conversation) Clear() {
	c.mu.Lock()
	c.history = nil
	c.mu.Unlock()
}
