package session

import (
	"sync"

	"github.com/Dan9191/delinquency-assistant/internal/models"
	"github.com/google/uuid"
)

// Greeting opens every conversation
const Greeting = "Como posso te ajudar hoje?"

// Session is one conversation. It starts with the greeting and is cleared by Reset.
type Session struct {
	mu      sync.Mutex
	id      string
	history []models.ChatMessage
}

// New starts a conversation
func New() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// ID identifies the current conversation; it changes on Reset
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Reset drops the history and starts over with the greeting
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = uuid.NewString()
	s.history = []models.ChatMessage{{Role: models.RoleAssistant, Content: Greeting}}
}

// History returns a copy of the conversation so far
func (s *Session) History() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}

// Append records a message
func (s *Session) Append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, models.ChatMessage{Role: role, Content: content})
}
