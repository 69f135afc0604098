package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message represents one turn in a chat session
type Message struct {
	ID        uuid.UUID   `json:"id"`
	SessionID uuid.UUID   `json:"session_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// MessageRepository defines the interface for message storage
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	// ListBySession returns messages in chronological order. A positive
	// limit keeps only the most recent messages; limit <= 0 returns all.
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]Message, error)
	// FirstUserMessage returns the earliest user-authored message in a
	// session, or nil if the session has none.
	FirstUserMessage(ctx context.Context, sessionID uuid.UUID) (*Message, error)
}
