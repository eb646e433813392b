// Package llm provides the client for the Ollama-compatible completion
// backend that drives the interview conversation.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mensetsu-app/backend/internal/domain"
)

// errBodyLimit caps how much of an error response body is carried in errors.
const errBodyLimit = 300

// Completer is the interface for the completion backend.
type Completer interface {
	// Complete sends the ordered conversation and returns the assistant
	// reply, trimmed. An empty reply is valid.
	Complete(ctx context.Context, messages []domain.Message) (string, error)

	// BaseURL returns the backend base URL, for the health report.
	BaseURL() string

	// Model returns the configured model identifier.
	Model() string
}

// Client is the Ollama completion client.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// Ensure Client implements Completer interface.
var _ Completer = (*Client)(nil)

// NewClient creates a new completion client.
func NewClient(baseURL, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Model returns the configured model identifier.
func (c *Client) Model() string { return c.model }

// chatRequest is the structured protocol payload (/api/chat).
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// generateRequest is the legacy flattened-prompt payload (/api/generate).
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// HTTPError is a non-success status from the completion backend.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("completion backend returned %d: %s", e.Status, e.Body)
}

// Complete sends the conversation to /api/chat and returns the assistant
// reply. A 404 from /api/chat means the backend only speaks the legacy
// protocol, so the call is retried exactly once against /api/generate with
// the messages flattened into "role: content" lines. Any other non-success
// status from either endpoint fails the call.
func (c *Client) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	msgs := make([]chatMessage, len(messages))
	for i, m := range messages {
		msgs[i] = chatMessage{Role: string(m.Role), Content: m.Content}
	}

	status, body, err := c.post(ctx, "/api/chat", chatRequest{Model: c.model, Messages: msgs, Stream: false})
	if err != nil {
		return "", err
	}

	if status == http.StatusNotFound {
		return c.completeLegacy(ctx, messages)
	}
	if status != http.StatusOK {
		return "", &HTTPError{Status: status, Body: truncate(body)}
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal chat response: %w", err)
	}
	return strings.TrimSpace(result.Message.Content), nil
}

// completeLegacy is the single fallback attempt against /api/generate.
func (c *Client) completeLegacy(ctx context.Context, messages []domain.Message) (string, error) {
	lines := make([]string, len(messages))
	for i, m := range messages {
		lines[i] = fmt.Sprintf("%s: %s", m.Role, m.Content)
	}

	req := generateRequest{Model: c.model, Prompt: strings.Join(lines, "\n"), Stream: false}
	status, body, err := c.post(ctx, "/api/generate", req)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", &HTTPError{Status: status, Body: truncate(body)}
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal generate response: %w", err)
	}
	return strings.TrimSpace(result.Response), nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) (int, []byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

func truncate(body []byte) string {
	if len(body) > errBodyLimit {
		body = body[:errBodyLimit]
	}
	return string(body)
}
