package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/storefront-gateway/internal/anthropic"
	"github.com/Lixing-Zhang/storefront-gateway/internal/models"
	"github.com/Lixing-Zhang/storefront-gateway/internal/service"
)

// ChatHandler proxies storefront chat requests to the completion API
type ChatHandler struct {
	chatService *service.ChatService
	log         *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService, log *slog.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		log:         log,
	}
}

// Chat handles POST /api/claude
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest

	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if err := validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "messages must be a non-empty array of {role, content}", h.log)
		return
	}

	body, err := h.chatService.Complete(r.Context(), req)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	WriteRawJSON(w, http.StatusOK, body, h.log)
}

func (h *ChatHandler) writeFailure(w http.ResponseWriter, err error) {
	var apiErr *anthropic.APIError

	switch {
	case errors.Is(err, service.ErrMissingAPIKey):
		h.log.Error("chat proxy not configured", "error", err)
		WriteError(w, http.StatusInternalServerError, "Missing ANTHROPIC_API_KEY", h.log)

	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= http.StatusInternalServerError {
			h.log.Error("chat upstream failed", "status", apiErr.StatusCode, "body", string(apiErr.Body))
		}
		if json.Valid(apiErr.Body) {
			WriteRawJSON(w, apiErr.StatusCode, apiErr.Body, h.log)
			return
		}
		WriteJSON(w, apiErr.StatusCode, map[string]string{
			"error":  "upstream_error",
			"detail": string(apiErr.Body),
		}, h.log)

	default:
		h.log.Error("chat proxy failed", "error", err)
		WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "server_error",
			"detail": err.Error(),
		}, h.log)
	}
}
