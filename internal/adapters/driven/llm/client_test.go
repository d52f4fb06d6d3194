package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

func TestClient_DoSendsJSONAndHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "hello", in["prompt"])

		_, _ = w.Write([]byte(`{"reply":"hi"}`))
	}))
	defer server.Close()

	c := &Client{Provider: "test", HTTP: server.Client(), Header: http.Header{"X-Api-Key": {"secret"}}}

	var out struct {
		Reply string `json:"reply"`
	}
	err := c.Do(context.Background(), http.MethodPost, server.URL, map[string]string{"prompt": "hello"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "hi", out.Reply)
}

func TestClient_DoStatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"openai style", `{"error":{"message":"invalid api key","type":"auth"}}`, "invalid api key"},
		{"ollama style", `{"error":"model not found"}`, "model not found"},
		{"plain text", "upstream timeout", "upstream timeout"},
		{"long body", strings.Repeat("x", 2000), strings.Repeat("x", maxErrorBody) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := &Client{Provider: "test", HTTP: server.Client()}
			err := c.Do(context.Background(), http.MethodGet, server.URL, nil, nil)

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
			assert.Equal(t, tt.wantMsg, statusErr.Message)
			assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
		})
	}
}

func TestClient_DoDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := &Client{Provider: "test", HTTP: server.Client()}
	var out struct{}
	err := c.Do(context.Background(), http.MethodGet, server.URL, nil, &out)

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_DoConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	c := &Client{Provider: "test", HTTP: http.DefaultClient}
	err := c.Do(context.Background(), http.MethodGet, url, nil, nil)

	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}

func TestFailure(t *testing.T) {
	err := Failure("openai", "no choices in %d responses", 0)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	assert.Contains(t, err.Error(), "openai: no choices in 0 responses")
}
