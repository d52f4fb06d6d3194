// Package llm holds the HTTP plumbing shared by the provider adapters in
// its subpackages. Every failure is wrapped with domain.ErrLLMUnavailable
// so callers can fall back without knowing which provider is configured.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 8 << 20

// maxErrorBody is how much of an unparseable error body is quoted.
const maxErrorBody = 512

// Client sends JSON requests to one provider.
type Client struct {
	// Provider names the service in error messages.
	Provider string

	// HTTP is the underlying client.
	HTTP *http.Client

	// Header is added to every request.
	Header http.Header
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Provider string
	Code     int
	Message  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Code, e.Message)
}

// Unwrap ties status errors to domain.ErrLLMUnavailable.
func (e *StatusError) Unwrap() error {
	return domain.ErrLLMUnavailable
}

// Do sends in as JSON (or no body when in is nil) and decodes the response
// into out when out is non-nil.
func (c *Client) Do(ctx context.Context, method, url string, in, out any) error {
	body := io.Reader(http.NoBody)
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: %s: marshal request: %w", domain.ErrLLMUnavailable, c.Provider, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%w: %s: create request: %w", domain.ErrLLMUnavailable, c.Provider, err)
	}
	for key, values := range c.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: send request: %w", domain.ErrLLMUnavailable, c.Provider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %s: read response: %w", domain.ErrLLMUnavailable, c.Provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Provider: c.Provider, Code: resp.StatusCode, Message: errorMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: decode response: %w", domain.ErrLLMUnavailable, c.Provider, err)
	}
	return nil
}

// errorMessage pulls a readable message out of an error body. OpenAI and
// Anthropic send {"error":{"message":...}}, Ollama sends {"error":"..."}.
func errorMessage(raw []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Error) > 0 {
		var text string
		if err := json.Unmarshal(envelope.Error, &text); err == nil {
			return text
		}
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &obj); err == nil && obj.Message != "" {
			return obj.Message
		}
	}

	msg := strings.TrimSpace(string(raw))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	return msg
}

// Failure wraps a provider-level problem that arrived with a 2xx status.
func Failure(provider, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", domain.ErrLLMUnavailable, provider, fmt.Sprintf(format, args...))
}
