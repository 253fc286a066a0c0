package store

import (
	"sync"
	"time"
)

// Message roles. Ollama understands exactly these three.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single conversation entry. Immutable once appended;
// ordering defines the model's conversational context.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session represents one conversation: a model binding (immutable after
// creation), an optional system prompt and an ordered message history.
type Session struct {
	ID           string    `json:"id"`
	Model        string    `json:"model"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"created_at"`

	// mu guards Messages. turnMu serializes whole chat turns so two
	// concurrent turns on the same session cannot interleave their
	// append/rollback sequences.
	mu     sync.RWMutex
	turnMu sync.Mutex
}

func NewSession(id, model, systemPrompt string) *Session {
	return &Session{
		ID:           id,
		Model:        model,
		SystemPrompt: systemPrompt,
		Messages:     []Message{},
		CreatedAt:    time.Now(),
	}
}

// LockTurn blocks until this session has no other chat turn in flight.
func (s *Session) LockTurn() {
	s.turnMu.Lock()
}

func (s *Session) UnlockTurn() {
	s.turnMu.Unlock()
}

// Append adds a message to the history.
func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// Snapshot returns a copy of the history safe to hand to callers.
func (s *Session) Snapshot() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.Messages))
	copy(out, s.Messages)
	return out
}

// Len returns the current history length.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.Messages)
}

// RemoveLastIfUser drops the trailing message if and only if it is a user
// message. This is the rollback path for failed chat turns: the optimistic
// user append is undone so a failed turn is a no-op from the caller's view.
func (s *Session) RemoveLastIfUser() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.Messages)
	if n == 0 || s.Messages[n-1].Role != RoleUser {
		return false
	}
	s.Messages = s.Messages[:n-1]
	return true
}

// ClearMessages empties the history but keeps the session shell
// (id, model binding and system prompt survive).
func (s *Session) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Messages = []Message{}
}
