package models

import "encoding/json"

// ChatMessage is one turn of a conversation.
// Content is kept raw so both plain strings and content-block arrays pass through.
type ChatMessage struct {
	Role    string          `json:"role" validate:"required"`
	Content json.RawMessage `json:"content" validate:"required"`
}

// ChatRequest represents an incoming chat request from the storefront widget
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages" validate:"required,min=1,dive"`
	System      string        `json:"system,omitempty"`
	Model       string        `json:"model,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty" validate:"gte=0"`
	Temperature *float64      `json:"temperature,omitempty"`
}

// MessagesPayload is the body sent to the upstream messages endpoint
type MessagesPayload struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system,omitempty"`
	Messages    []ChatMessage `json:"messages"`
}
