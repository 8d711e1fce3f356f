package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/Lixing-Zhang/storefront-gateway/internal/models"
)

const messagesPath = "/v1/messages"

// APIError carries a non-2xx response from the messages endpoint verbatim
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anthropic: upstream returned status %d", e.StatusCode)
}

// Client posts message requests to the Anthropic API
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	version    string
}

// NewClient creates a new messages API client
func NewClient(httpClient *http.Client, baseURL, apiKey, version string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		version:    version,
	}
}

// HasAPIKey reports whether a credential is configured
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// CreateMessage sends one payload and returns the raw JSON response body.
// Non-2xx responses are returned as *APIError.
func (c *Client) CreateMessage(ctx context.Context, payload models.MessagesPayload) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "anthropic: encode payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "anthropic: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", c.version)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "anthropic: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "anthropic: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: respBody}
	}

	if !json.Valid(respBody) {
		return nil, errors.New("anthropic: response is not valid JSON")
	}

	return json.RawMessage(respBody), nil
}
