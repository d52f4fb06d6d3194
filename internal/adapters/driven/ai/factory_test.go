package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name      string
		settings  *domain.LLMSettings
		wantNil   bool
		wantModel string
	}{
		{name: "nil settings", settings: nil, wantNil: true},
		{name: "unconfigured", settings: &domain.LLMSettings{}, wantNil: true},
		{name: "cloud provider without key", settings: &domain.LLMSettings{Provider: domain.AIProviderOpenAI}, wantNil: true},
		{name: "unknown provider", settings: &domain.LLMSettings{Provider: "cohere", APIKey: "k"}, wantNil: true},
		{
			name:      "ollama",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"},
			wantModel: "llama3.2",
		},
		{
			name:      "openai compatible",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderOpenAI, APIKey: "k", BaseURL: "https://api.groq.com/openai/v1", Model: "llama-3.1-70b-versatile"},
			wantModel: "llama-3.1-70b-versatile",
		},
		{
			name:      "anthropic",
			settings:  &domain.LLMSettings{Provider: domain.AIProviderAnthropic, APIKey: "k", Model: "claude-3-5-haiku-latest"},
			wantModel: "claude-3-5-haiku-latest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)

			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
				return
			}
			require.NotNil(t, svc)
			defer svc.Close()
			assert.Equal(t, tt.wantModel, svc.ModelName())
		})
	}
}

func TestCreateAndValidateLLMService(t *testing.T) {
	t.Run("unconfigured returns nil", func(t *testing.T) {
		svc, err := CreateAndValidateLLMService(context.Background(), &domain.LLMSettings{})
		assert.NoError(t, err)
		assert.Nil(t, svc)
	})

	t.Run("reachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"models":[]}`))
		}))
		defer server.Close()

		svc, err := CreateAndValidateLLMService(context.Background(), &domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  server.URL,
		})
		require.NoError(t, err)
		require.NotNil(t, svc)
		assert.NoError(t, svc.Close())
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		svc, err := CreateAndValidateLLMService(context.Background(), &domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  server.URL,
		})
		assert.Nil(t, svc)
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
		assert.Contains(t, err.Error(), "atsfit settings llm")
	})
}
