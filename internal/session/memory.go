package session

import (
	"sync"

	"github.com/kheti-ai/kheti/internal/domain"
)

// DefaultWindow is the number of turns kept when none is configured
const DefaultWindow = 10

// Turn is one role-tagged message within a conversation
type Turn struct {
	Role    domain.MessageRole
	Content string
}

// Memory holds the bounded conversation window fed to the model. Only the
// most recent K turns are kept; older turns are dropped, never summarized.
type Memory struct {
	mu     sync.Mutex
	window int
	turns  []Turn
}

// NewMemory creates an empty conversation window holding up to k turns
func NewMemory(k int) *Memory {
	if k <= 0 {
		k = DefaultWindow
	}
	return &Memory{window: k}
}

// Append adds a turn, dropping the oldest when the window is full
func (m *Memory) Append(role domain.MessageRole, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.turns = append(m.turns, Turn{Role: role, Content: content})
	if len(m.turns) > m.window {
		m.turns = m.turns[len(m.turns)-m.window:]
	}
}

// Turns returns a copy of the window, oldest first
func (m *Memory) Turns() []Turn {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Len returns the number of turns currently held
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns)
}

// Window returns the configured turn capacity
func (m *Memory) Window() int {
	return m.window
}
