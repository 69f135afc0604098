package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ChatSession represents one persisted conversation thread
type ChatSession struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Title     string     `json:"title"`
	IsPublic  bool       `json:"is_public"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// DefaultTitle is assigned to sessions until a title is generated
const DefaultTitle = "New Chat"

// SessionPatch carries the mutable session fields for partial updates.
// Nil fields are left untouched.
type SessionPatch struct {
	Title    *string `json:"title,omitempty" validate:"omitempty,max=100"`
	IsPublic *bool   `json:"is_public,omitempty"`
}

// Empty reports whether the patch carries no fields
func (p SessionPatch) Empty() bool {
	return p.Title == nil && p.IsPublic == nil
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, session *ChatSession) error
	Get(ctx context.Context, id uuid.UUID) (*ChatSession, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ChatSession, error)
	// Update applies the patch to the session matching both id and owner.
	// Returns false when no such row exists.
	Update(ctx context.Context, id, userID uuid.UUID, patch SessionPatch) (bool, error)
	// Delete removes the session matching both id and owner; messages go
	// with it via the cascade on chat_messages.
	Delete(ctx context.Context, id, userID uuid.UUID) (bool, error)
	Touch(ctx context.Context, id uuid.UUID) error
	// SetTitle overwrites the title regardless of owner. Used by the
	// system when a generated title replaces the default.
	SetTitle(ctx context.Context, id uuid.UUID, title string) error
}
