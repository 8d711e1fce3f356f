package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/storefront-gateway/internal/anthropic"
	"github.com/Lixing-Zhang/storefront-gateway/internal/service"
	"github.com/Lixing-Zhang/storefront-gateway/pkg/logger"
)

func newChatHandler(t *testing.T, upstream http.HandlerFunc, apiKey string) (*ChatHandler, *int) {
	t.Helper()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		upstream(w, r)
	}))
	t.Cleanup(srv.Close)

	client := anthropic.NewClient(srv.Client(), srv.URL, apiKey, "2023-06-01")
	svc := service.NewChatService(client, service.ChatDefaults{Model: "claude-default", MaxTokens: 512, Temperature: 0.5})
	return NewChatHandler(svc, logger.New("error")), &calls
}

func TestChatHandler_Chat(t *testing.T) {
	okUpstream := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","type":"message","content":[{"type":"text","text":"Hello"}]}`))
	}

	tests := []struct {
		name           string
		body           string
		apiKey         string
		upstream       http.HandlerFunc
		expectedStatus int
		expectedBody   string
		expectUpstream bool
	}{
		{
			name:           "successful completion is relayed unchanged",
			body:           `{"messages":[{"role":"user","content":"hi"}]}`,
			apiKey:         "sk-test",
			upstream:       okUpstream,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":"msg_1","type":"message","content":[{"type":"text","text":"Hello"}]}`,
			expectUpstream: true,
		},
		{
			name:           "missing messages",
			body:           `{"system":"hi"}`,
			apiKey:         "sk-test",
			upstream:       okUpstream,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty messages",
			body:           `{"messages":[]}`,
			apiKey:         "sk-test",
			upstream:       okUpstream,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "messages not an array",
			body:           `{"messages":"hi"}`,
			apiKey:         "sk-test",
			upstream:       okUpstream,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "message without role",
			body:           `{"messages":[{"content":"hi"}]}`,
			apiKey:         "sk-test",
			upstream:       okUpstream,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           `not json`,
			apiKey:         "sk-test",
			upstream:       okUpstream,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing credential",
			body:           `{"messages":[{"role":"user","content":"hi"}]}`,
			apiKey:         "",
			upstream:       okUpstream,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Missing ANTHROPIC_API_KEY"}`,
		},
		{
			name:   "upstream 4xx relayed with identical body",
			body:   `{"messages":[{"role":"user","content":"hi"}]}`,
			apiKey: "sk-test",
			upstream: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"type":"error","error":{"type":"invalid_request_error","message":"bad model"}}`))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"type":"error","error":{"type":"invalid_request_error","message":"bad model"}}`,
			expectUpstream: true,
		},
		{
			name:   "upstream 5xx relayed with identical body",
			body:   `{"messages":[{"role":"user","content":"hi"}]}`,
			apiKey: "sk-test",
			upstream: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(529)
				_, _ = w.Write([]byte(`{"type":"error","error":{"type":"overloaded_error"}}`))
			},
			expectedStatus: 529,
			expectedBody:   `{"type":"error","error":{"type":"overloaded_error"}}`,
			expectUpstream: true,
		},
		{
			name:   "non-JSON upstream error is wrapped",
			body:   `{"messages":[{"role":"user","content":"hi"}]}`,
			apiKey: "sk-test",
			upstream: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte(`upstream connect error`))
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"upstream_error","detail":"upstream connect error"}`,
			expectUpstream: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, calls := newChatHandler(t, tt.upstream, tt.apiKey)

			req := httptest.NewRequest(http.MethodPost, "/api/claude", bytes.NewReader([]byte(tt.body)))
			w := httptest.NewRecorder()

			handler.Chat(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.True(t, json.Valid(w.Body.Bytes()), "response must be JSON: %s", w.Body.String())
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			assert.Equal(t, tt.expectUpstream, *calls > 0)
		})
	}
}

func TestChatHandler_Chat_PayloadDefaults(t *testing.T) {
	var payload map[string]any
	handler, _ := newChatHandler(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &payload)
		_, _ = w.Write([]byte(`{}`))
	}, "sk-test")

	body := `{"messages":[{"role":"user","content":[{"type":"text","text":"hi"}]}],"system":"Be helpful"}`
	req := httptest.NewRequest(http.MethodPost, "/api/claude", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()

	handler.Chat(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "claude-default", payload["model"])
	assert.Equal(t, float64(512), payload["max_tokens"])
	assert.Equal(t, 0.5, payload["temperature"])
	assert.Equal(t, "Be helpful", payload["system"])

	messages, ok := payload["messages"].([]any)
	require.True(t, ok)
	first := messages[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, []any{map[string]any{"type": "text", "text": "hi"}}, first["content"])
}
