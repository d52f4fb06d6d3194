package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

func TestConfigValidator_ValidateLLM(t *testing.T) {
	validator := NewConfigValidator()
	require.NotNil(t, validator)

	t.Run("nil config", func(t *testing.T) {
		assert.NoError(t, validator.ValidateLLM(nil))
	})

	t.Run("unconfigured provider", func(t *testing.T) {
		assert.NoError(t, validator.ValidateLLM(&domain.LLMSettings{Model: "x"}))
	})

	t.Run("rejected key", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
		}))
		defer server.Close()

		err := validator.ValidateLLM(&domain.LLMSettings{
			Provider: domain.AIProviderOpenAI,
			APIKey:   "bad",
			BaseURL:  server.URL,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Incorrect API key")
	})
}
