package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kheti-ai/kheti/internal/api/middleware"
	"github.com/kheti-ai/kheti/internal/api/response"
	"github.com/kheti-ai/kheti/internal/domain"
	"github.com/kheti-ai/kheti/internal/service"
)

// SessionHandler handles persisted chat session endpoints
type SessionHandler struct {
	sessionService *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

func sessionIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	return id, err == nil
}

// Create starts a new persisted session for the authenticated user.
// The body is optional; title and visibility default to a fresh private
// session.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input struct {
		Title    string `json:"title" validate:"max=100"`
		IsPublic bool   `json:"is_public"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			response.BadRequest(w, "invalid request body")
			return
		}
		if err := validate.Struct(input); err != nil {
			response.BadRequest(w, err.Error())
			return
		}
	}

	sess, err := h.sessionService.CreateSession(r.Context(), &userID, input.Title, input.IsPublic)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.Created(w, sess)
}

// List returns the authenticated user's sessions, most recent first
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	sessions, err := h.sessionService.ListSessions(r.Context(), userID)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, sessions)
}

// Get returns one session. Auth is optional here; public sessions are
// readable by anyone, private ones only by their owner.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(r)
	if !ok {
		response.NotFound(w, "session not found")
		return
	}

	sess := h.sessionService.GetSession(r.Context(), id, middleware.GetUserIDPtr(r.Context()))
	if sess == nil {
		response.NotFound(w, "session not found")
		return
	}

	response.OK(w, sess)
}

// Update applies a partial update to an owned session
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, ok := sessionIDParam(r)
	if !ok {
		response.NotFound(w, "session not found")
		return
	}

	var patch domain.SessionPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(patch); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	updated, err := h.sessionService.UpdateSession(r.Context(), id, userID, patch)
	if err != nil {
		if errors.Is(err, service.ErrEmptyPatch) {
			response.BadRequest(w, "no fields to update")
			return
		}
		response.InternalError(w, err.Error())
		return
	}
	if !updated {
		response.NotFound(w, "session not found")
		return
	}

	sess := h.sessionService.GetSession(r.Context(), id, &userID)
	if sess == nil {
		response.NotFound(w, "session not found")
		return
	}
	response.OK(w, sess)
}

// Delete removes an owned session and its messages
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	id, ok := sessionIDParam(r)
	if !ok {
		response.NotFound(w, "session not found")
		return
	}

	deleted, err := h.sessionService.DeleteSession(r.Context(), id, userID)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}
	if !deleted {
		response.NotFound(w, "session not found")
		return
	}

	response.NoContent(w)
}

// GetMessages returns a session's transcript in chronological order.
// Visibility follows the same rules as Get. The optional "limit" query
// parameter keeps only the most recent messages.
func (h *SessionHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionIDParam(r)
	if !ok {
		response.NotFound(w, "session not found")
		return
	}

	sess := h.sessionService.GetSession(r.Context(), id, middleware.GetUserIDPtr(r.Context()))
	if sess == nil {
		response.NotFound(w, "session not found")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.BadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	messages, err := h.sessionService.GetMessages(r.Context(), id, limit)
	if err != nil {
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, messages)
}
