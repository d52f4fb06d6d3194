package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(Config{APIKey: "sk-ant", BaseURL: server.URL})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.Error(t, err)

	svc, err := NewLLMService(Config{APIKey: "sk-ant", Model: "claude-3-5-haiku-latest"})
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-haiku-latest", svc.ModelName())
	assert.NoError(t, svc.Close())
}

func TestGenerate(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("X-Api-Key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("Anthropic-Version"))

		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
		assert.Empty(t, req.System)
		require.Len(t, req.Messages, 1)

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"MATCH SCORE: "},{"type":"text","text":"70%"}],"stop_reason":"end_turn"}`))
	})

	out, err := svc.Generate(context.Background(), "Analyse", driven.GenerateOptions{})

	require.NoError(t, err)
	assert.Equal(t, "MATCH SCORE: 70%", out)
}

func TestChat_LiftsSystemMessages(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Be terse.\n\nNo markdown.", req.System)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	})

	out, err := svc.Chat(context.Background(), []driven.ChatMessage{
		{Role: "system", Content: "Be terse."},
		{Role: "system", Content: "No markdown."},
		{Role: "user", Content: "Hi"},
	}, driven.ChatOptions{MaxTokens: 10})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"overloaded", 529, `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`},
		{"no text", http.StatusOK, `{"content":[],"stop_reason":"max_tokens"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := svc.Generate(context.Background(), "x", driven.GenerateOptions{})
			assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
		})
	}
}

func TestPing(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		var req messagesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 1, req.MaxTokens)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"p"}]}`))
	})

	assert.NoError(t, svc.Ping(context.Background()))
}
