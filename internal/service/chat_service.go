package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Lixing-Zhang/storefront-gateway/internal/models"
)

var ErrMissingAPIKey = errors.New("missing ANTHROPIC_API_KEY")

// MessageCreator sends a messages payload upstream
type MessageCreator interface {
	CreateMessage(ctx context.Context, payload models.MessagesPayload) (json.RawMessage, error)
	HasAPIKey() bool
}

// ChatDefaults fill fields the widget leaves out
type ChatDefaults struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// ChatService forwards chat requests to the completion API
type ChatService struct {
	creator  MessageCreator
	defaults ChatDefaults
}

// NewChatService creates a new chat service
func NewChatService(creator MessageCreator, defaults ChatDefaults) *ChatService {
	return &ChatService{
		creator:  creator,
		defaults: defaults,
	}
}

// Complete assembles the upstream payload and returns the upstream body unchanged
func (s *ChatService) Complete(ctx context.Context, req models.ChatRequest) (json.RawMessage, error) {
	if !s.creator.HasAPIKey() {
		return nil, ErrMissingAPIKey
	}
	return s.creator.CreateMessage(ctx, s.BuildPayload(req))
}

// BuildPayload applies defaults to absent fields
func (s *ChatService) BuildPayload(req models.ChatRequest) models.MessagesPayload {
	payload := models.MessagesPayload{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: s.defaults.Temperature,
		System:      req.System,
		Messages:    req.Messages,
	}
	if payload.Model == "" {
		payload.Model = s.defaults.Model
	}
	if payload.MaxTokens == 0 {
		payload.MaxTokens = s.defaults.MaxTokens
	}
	if req.Temperature != nil {
		payload.Temperature = *req.Temperature
	}
	return payload
}
