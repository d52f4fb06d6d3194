package assistant

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driven/llm"
	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
)

type mockLLM struct {
	response string
	err      error
	prompts  []string
	opts     []driven.GenerateOptions
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	return m.response, m.err
}

func (m *mockLLM) Chat(context.Context, []driven.ChatMessage, driven.ChatOptions) (string, error) {
	return "", errors.New("not used")
}

func (m *mockLLM) ModelName() string { return "mock" }
func (m *mockLLM) Ping(context.Context) error { return nil }
func (m *mockLLM) Close() error { return nil }

type mockPrompts struct {
	templates map[string]string
}

func (m *mockPrompts) Load(name string) (string, error) {
	tmpl, ok := m.templates[name]
	if !ok {
		return "", errors.New("no prompt " + name)
	}
	return tmpl, nil
}

func (m *mockPrompts) Reload() {}

func newTestPrompts() *mockPrompts {
	return &mockPrompts{templates: map[string]string{
		driven.PromptSuggest: "SUGGEST jd=%s resume=%s",
		driven.PromptRewrite: "REWRITE jd=%s resume=%s",
		driven.PromptAnalyse: "ANALYSE jd=%s resume=%s",
	}}
}

func TestAssistant_Tasks(t *testing.T) {
	tests := []struct {
		name       string
		call       func(a *Assistant) (string, error)
		wantPrompt string
		wantTokens int
	}{
		{
			name:       "suggest",
			call:       func(a *Assistant) (string, error) { return a.Suggest(context.Background(), "CV", "JD") },
			wantPrompt: "SUGGEST jd=JD resume=CV",
			wantTokens: suggestMaxTokens,
		},
		{
			name:       "rewrite",
			call:       func(a *Assistant) (string, error) { return a.Rewrite(context.Background(), "CV", "JD") },
			wantPrompt: "REWRITE jd=JD resume=CV",
			wantTokens: rewriteMaxTokens,
		},
		{
			name:       "analyse",
			call:       func(a *Assistant) (string, error) { return a.Analyse(context.Background(), "CV", "JD") },
			wantPrompt: "ANALYSE jd=JD resume=CV",
			wantTokens: analyseMaxTokens,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &mockLLM{response: "  answer\n"}
			a := New(model, newTestPrompts(), 100)

			out, err := tt.call(a)

			require.NoError(t, err)
			assert.Equal(t, "answer", out)
			require.Len(t, model.prompts, 1)
			assert.Equal(t, tt.wantPrompt, model.prompts[0])
			assert.Equal(t, tt.wantTokens, model.opts[0].MaxTokens)
			assert.InDelta(t, temperature, model.opts[0].Temperature, 1e-9)
			assert.Equal(t, stopWords, model.opts[0].StopWords)
		})
	}
}

func TestAssistant_Failures(t *testing.T) {
	tests := []struct {
		name    string
		llm     driven.LLMService
		prompts driven.PromptStore
	}{
		{"no model", nil, newTestPrompts()},
		{"model error", &mockLLM{err: errors.New("connection refused")}, newTestPrompts()},
		{"empty output", &mockLLM{response: " \n "}, newTestPrompts()},
		{"missing prompt", &mockLLM{response: "x"}, &mockPrompts{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.llm, tt.prompts, 100)

			_, err := a.Rewrite(context.Background(), "CV", "JD")

			assert.ErrorIs(t, err, domain.ErrAssistantFailed)
			assert.Contains(t, err.Error(), driven.PromptRewrite)
		})
	}
}

func TestAssistant_TooManyRequestsBacksOff(t *testing.T) {
	model := &mockLLM{err: &llm.StatusError{Provider: "openai", Code: http.StatusTooManyRequests, Message: "slow down"}}
	a := New(model, newTestPrompts(), 100)

	_, err := a.Suggest(context.Background(), "CV", "JD")
	require.ErrorIs(t, err, domain.ErrAssistantFailed)
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = a.Suggest(ctx, "CV", "JD")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, model.prompts, 1, "second call must wait out the backoff")
}

func TestRateLimiter(t *testing.T) {
	t.Run("default rate", func(t *testing.T) {
		r := NewRateLimiter(0)
		assert.InDelta(t, DefaultRequestsPerSecond, float64(r.limiter.Limit()), 1e-9)
	})

	t.Run("burst passes without waiting", func(t *testing.T) {
		r := NewRateLimiter(0.001)
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		for i := 0; i < 3; i++ {
			require.NoError(t, r.Wait(ctx))
		}
	})

	t.Run("backoff only extends", func(t *testing.T) {
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		r := NewRateLimiter(1)
		r.now = func() time.Time { return base }

		r.Backoff(time.Minute)
		r.Backoff(time.Second)
		assert.Equal(t, base.Add(time.Minute), r.retryAt)

		r.Backoff(0)
		assert.Equal(t, base.Add(time.Minute), r.retryAt)
	})
}
