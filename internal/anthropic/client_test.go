package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/storefront-gateway/internal/models"
)

func testPayload() models.MessagesPayload {
	return models.MessagesPayload{
		Model:       "claude-test",
		MaxTokens:   256,
		Temperature: 0.2,
		System:      "be brief",
		Messages: []models.ChatMessage{
			{Role: "user", Content: json.RawMessage(`"hello"`)},
		},
	}
}

func TestClient_CreateMessage(t *testing.T) {
	var gotBody map[string]any
	var gotHeaders http.Header
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","content":[{"type":"text","text":"hi"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL+"/", "sk-test", "2023-06-01")
	out, err := client.CreateMessage(context.Background(), testPayload())
	require.NoError(t, err)

	assert.JSONEq(t, `{"id":"msg_1","content":[{"type":"text","text":"hi"}]}`, string(out))
	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "sk-test", gotHeaders.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", gotHeaders.Get("anthropic-version"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	assert.Equal(t, "claude-test", gotBody["model"])
	assert.Equal(t, float64(256), gotBody["max_tokens"])
	assert.Equal(t, 0.2, gotBody["temperature"])
	assert.Equal(t, "be brief", gotBody["system"])
	assert.Len(t, gotBody["messages"], 1)
}

func TestClient_CreateMessage_OmitsEmptySystem(t *testing.T) {
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	payload := testPayload()
	payload.System = ""

	_, err := NewClient(srv.Client(), srv.URL, "k", "2023-06-01").CreateMessage(context.Background(), payload)
	require.NoError(t, err)

	_, hasSystem := gotBody["system"]
	assert.False(t, hasSystem)
}

func TestClient_CreateMessage_Errors(t *testing.T) {
	t.Run("upstream error is returned verbatim", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"type":"error","error":{"type":"rate_limit_error"}}`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.Client(), srv.URL, "k", "2023-06-01").CreateMessage(context.Background(), testPayload())

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
		assert.Equal(t, `{"type":"error","error":{"type":"rate_limit_error"}}`, string(apiErr.Body))
	})

	t.Run("non-JSON success body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		_, err := NewClient(srv.Client(), srv.URL, "k", "2023-06-01").CreateMessage(context.Background(), testPayload())
		assert.ErrorContains(t, err, "not valid JSON")
	})
}

func TestClient_HasAPIKey(t *testing.T) {
	assert.False(t, NewClient(nil, "https://api.anthropic.com", "", "2023-06-01").HasAPIKey())
	assert.True(t, NewClient(nil, "https://api.anthropic.com", "k", "2023-06-01").HasAPIKey())
}
