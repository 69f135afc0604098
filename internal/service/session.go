package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kheti-ai/kheti/internal/domain"
	"github.com/kheti-ai/kheti/internal/llm"
	"github.com/kheti-ai/kheti/internal/session"
)

// ErrEmptyPatch is returned when an update carries no fields
var ErrEmptyPatch = errors.New("update requires at least one field")

// SessionService mirrors persisted sessions: every read goes through a
// local memory cache, every write goes to Postgres first. Conversation
// windows are rebuilt from stored messages on cache misses, so a restart
// loses nothing but warm caches.
type SessionService struct {
	sessions   domain.SessionRepository
	messages   domain.MessageRepository
	summarizer llm.Summarizer
	window     int

	mu    sync.Mutex
	cache map[uuid.UUID]*session.Memory
}

// NewSessionService creates the mirror over the given repositories.
// summarizer may be nil; title generation then always uses the fallback.
func NewSessionService(sessions domain.SessionRepository, messages domain.MessageRepository, summarizer llm.Summarizer, window int) *SessionService {
	if window <= 0 {
		window = session.DefaultWindow
	}
	return &SessionService{
		sessions:   sessions,
		messages:   messages,
		summarizer: summarizer,
		window:     window,
		cache:      make(map[uuid.UUID]*session.Memory),
	}
}

// CreateSession stores a new session owned by userID (nil for an
// unauthenticated caller). An empty title gets the default until a real
// title is generated.
func (s *SessionService) CreateSession(ctx context.Context, userID *uuid.UUID, title string, isPublic bool) (*domain.ChatSession, error) {
	if title == "" {
		title = domain.DefaultTitle
	}
	now := time.Now()
	sess := &domain.ChatSession{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		IsPublic:  isPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[sess.ID] = session.NewMemory(s.window)
	s.mu.Unlock()

	return sess, nil
}

// GetSession returns the session when the requester may see it: public
// sessions, ownerless sessions, and the owner's own. Everything else,
// including storage errors, comes back nil; failures are logged, not
// surfaced, so a missing and a forbidden session are indistinguishable
// to the caller.
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID, requester *uuid.UUID) *domain.ChatSession {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		log.Debug().Err(err).Str("session_id", id.String()).Msg("session lookup failed")
		return nil
	}

	if sess.IsPublic || sess.UserID == nil {
		return sess
	}
	if requester != nil && *sess.UserID == *requester {
		return sess
	}
	return nil
}

// ListSessions returns the user's sessions, most recently active first
func (s *SessionService) ListSessions(ctx context.Context, userID uuid.UUID) ([]domain.ChatSession, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// UpdateSession applies a partial update to an owned session. Empty
// patches are rejected before touching the store.
func (s *SessionService) UpdateSession(ctx context.Context, id, userID uuid.UUID, patch domain.SessionPatch) (bool, error) {
	if patch.Empty() {
		return false, ErrEmptyPatch
	}
	return s.sessions.Update(ctx, id, userID, patch)
}

// DeleteSession removes an owned session and evicts its cached window
func (s *SessionService) DeleteSession(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	deleted, err := s.sessions.Delete(ctx, id, userID)
	if err != nil {
		return false, err
	}
	if deleted {
		s.mu.Lock()
		delete(s.cache, id)
		s.mu.Unlock()
	}
	return deleted, nil
}

// AppendMessage stores one turn and folds it into the cached window.
// The session's recency is bumped best-effort.
func (s *SessionService) AppendMessage(ctx context.Context, sessionID uuid.UUID, role domain.MessageRole, content string) error {
	msg := &domain.Message{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}

	if err := s.sessions.Touch(ctx, sessionID); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("failed to touch session")
	}

	s.mu.Lock()
	if mem, ok := s.cache[sessionID]; ok {
		mem.Append(role, content)
	}
	s.mu.Unlock()

	return nil
}

// GetMessages returns stored messages in chronological order
func (s *SessionService) GetMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.Message, error) {
	return s.messages.ListBySession(ctx, sessionID, limit)
}

// GetOrBuildMemory returns the cached conversation window for a session,
// rebuilding it from the most recent stored messages on a miss.
func (s *SessionService) GetOrBuildMemory(ctx context.Context, sessionID uuid.UUID) (*session.Memory, error) {
	s.mu.Lock()
	if mem, ok := s.cache[sessionID]; ok {
		s.mu.Unlock()
		return mem, nil
	}
	s.mu.Unlock()

	msgs, err := s.messages.ListBySession(ctx, sessionID, s.window)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild memory: %w", err)
	}

	mem := session.NewMemory(s.window)
	for _, m := range msgs {
		mem.Append(m.Role, m.Content)
	}

	s.mu.Lock()
	// Another goroutine may have rebuilt the window meanwhile; keep the
	// first one installed.
	if existing, ok := s.cache[sessionID]; ok {
		mem = existing
	} else {
		s.cache[sessionID] = mem
	}
	s.mu.Unlock()

	return mem, nil
}

// GenerateTitle derives a title from the session's first user message
// and stores it. The summarizer is best-effort; on any failure the
// deterministic fallback applies. Sessions with no user message keep
// the default title.
func (s *SessionService) GenerateTitle(ctx context.Context, sessionID uuid.UUID) (string, error) {
	first, err := s.messages.FirstUserMessage(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if first == nil {
		return domain.DefaultTitle, nil
	}

	title := ""
	if s.summarizer != nil {
		title, err = s.summarizer.Summarize(ctx, first.Content)
		if err != nil {
			log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("title generation failed, using fallback")
			title = ""
		}
	}
	if title == "" {
		title = llm.FallbackTitle(first.Content)
	}
	if title == "" {
		title = domain.DefaultTitle
	}

	if err := s.sessions.SetTitle(ctx, sessionID, title); err != nil {
		return "", err
	}
	return title, nil
}
