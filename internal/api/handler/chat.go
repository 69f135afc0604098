package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kheti-ai/kheti/internal/api/middleware"
	"github.com/kheti-ai/kheti/internal/api/response"
	"github.com/kheti-ai/kheti/internal/domain"
	"github.com/kheti-ai/kheti/internal/service"
)

// ChatHandler handles the conversational endpoint
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Chat handles one conversational turn. Works for both anonymous and
// authenticated callers; identity only matters for persisted sessions.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var input domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		if messages, ok := validationMessages(err); ok {
			response.BadRequest(w, messages)
			return
		}
		response.BadRequest(w, err.Error())
		return
	}

	userID := middleware.GetUserIDPtr(r.Context())

	resp, err := h.chatService.Chat(r.Context(), input, userID)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.NotFound(w, "session not found")
			return
		}
		response.InternalError(w, err.Error())
		return
	}

	response.OK(w, resp)
}
