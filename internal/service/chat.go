package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kheti-ai/kheti/internal/agent"
	"github.com/kheti-ai/kheti/internal/domain"
	"github.com/kheti-ai/kheti/internal/llm"
	"github.com/kheti-ai/kheti/internal/session"
)

// ErrSessionNotFound is returned when a chat addresses a session the
// caller cannot use.
var ErrSessionNotFound = errors.New("session not found")

const titleTimeout = 30 * time.Second

// ChatService routes chat turns to the right session store and runs the
// agent loop. Anonymous ids live in the in-memory registry; everything
// else is a persisted session mirrored by SessionService.
type ChatService struct {
	registry *session.Registry
	sessions *SessionService
	router   *llm.Router
	agent    *agent.Agent
}

// NewChatService creates a new chat service
func NewChatService(registry *session.Registry, sessions *SessionService, router *llm.Router, ag *agent.Agent) *ChatService {
	return &ChatService{
		registry: registry,
		sessions: sessions,
		router:   router,
		agent:    ag,
	}
}

// Chat handles one user turn. An empty or "anon-" prefixed session id is
// served from the registry; a UUID addresses a persisted session owned
// by (or visible to) userID.
func (s *ChatService) Chat(ctx context.Context, req domain.ChatRequest, userID *uuid.UUID) (*domain.ChatResponse, error) {
	provider, err := s.router.GetProvider(req.Provider)
	if err != nil {
		return nil, err
	}
	model := req.Model
	if model == "" {
		model = provider.DefaultModel()
	}

	if req.SessionID == "" {
		if req.Persist && userID != nil {
			sess, err := s.sessions.CreateSession(ctx, userID, "", false)
			if err != nil {
				return nil, err
			}
			req.SessionID = sess.ID.String()
			return s.chatPersistent(ctx, req, provider, model, userID)
		}
		return s.chatAnonymous(ctx, req, provider, model)
	}
	if strings.HasPrefix(req.SessionID, session.AnonPrefix) {
		return s.chatAnonymous(ctx, req, provider, model)
	}
	return s.chatPersistent(ctx, req, provider, model, userID)
}

func (s *ChatService) chatAnonymous(ctx context.Context, req domain.ChatRequest, provider llm.Provider, model string) (*domain.ChatResponse, error) {
	id, memory := s.registry.Resolve(req.SessionID)

	result, err := s.agent.Invoke(ctx, provider, model, historyTurns(memory), req.Text)
	if err != nil {
		return nil, err
	}

	memory.Append(domain.RoleUser, req.Text)
	memory.Append(domain.RoleAssistant, result.Reply)

	return &domain.ChatResponse{
		Reply:      result.Reply,
		SessionID:  id,
		Provider:   provider.Name(),
		Model:      result.Model,
		TokensUsed: result.TokensUsed,
		LatencyMs:  result.LatencyMs,
	}, nil
}

func (s *ChatService) chatPersistent(ctx context.Context, req domain.ChatRequest, provider llm.Provider, model string, userID *uuid.UUID) (*domain.ChatResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	sess := s.sessions.GetSession(ctx, sessionID, userID)
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	memory, err := s.sessions.GetOrBuildMemory(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result, err := s.agent.Invoke(ctx, provider, model, historyTurns(memory), req.Text)
	if err != nil {
		return nil, err
	}

	// Persist both turns; a storage failure degrades to registry-like
	// behavior for this exchange rather than losing the reply.
	if err := s.sessions.AppendMessage(ctx, sessionID, domain.RoleUser, req.Text); err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to store user message")
	}
	if err := s.sessions.AppendMessage(ctx, sessionID, domain.RoleAssistant, result.Reply); err != nil {
		log.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to store assistant message")
	}

	title := sess.Title
	if title == domain.DefaultTitle {
		go s.generateTitle(sessionID)
	}

	return &domain.ChatResponse{
		Reply:      result.Reply,
		SessionID:  sessionID.String(),
		Title:      title,
		Provider:   provider.Name(),
		Model:      result.Model,
		TokensUsed: result.TokensUsed,
		LatencyMs:  result.LatencyMs,
	}, nil
}

// generateTitle runs off the request path; the request context is gone
// by the time it fires.
func (s *ChatService) generateTitle(sessionID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), titleTimeout)
	defer cancel()

	if _, err := s.sessions.GenerateTitle(ctx, sessionID); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID.String()).Msg("failed to generate session title")
	}
}

// historyTurns converts the bounded window into provider transcript turns
func historyTurns(memory *session.Memory) []llm.Turn {
	turns := memory.Turns()
	out := make([]llm.Turn, 0, len(turns))
	for _, t := range turns {
		out = append(out, llm.Turn{Role: string(t.Role), Content: t.Content})
	}
	return out
}
