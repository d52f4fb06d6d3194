// Package assistant implements the suggestion, rewrite and analysis
// collaborators on top of a language model and editable prompt templates.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driven/llm"
	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
)

var (
	_ driven.Suggester = (*Assistant)(nil)
	_ driven.Rewriter  = (*Assistant)(nil)
	_ driven.Analyst   = (*Assistant)(nil)
)

// Token budgets per task. A rewrite is roughly as long as the resume.
const (
	suggestMaxTokens = 800
	rewriteMaxTokens = 1500
	analyseMaxTokens = 800
	temperature      = 0.7
)

// stopWords end generation on chat-template leakage from instruct models.
var stopWords = []string{"<|im_end|>", "</answer>"}

// Assistant answers resume questions with an LLM.
type Assistant struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	limiter *RateLimiter
}

// New creates an Assistant. requestsPerSecond <= 0 selects DefaultRequestsPerSecond.
func New(llmService driven.LLMService, prompts driven.PromptStore, requestsPerSecond float64) *Assistant {
	return &Assistant{
		llm:     llmService,
		prompts: prompts,
		limiter: NewRateLimiter(requestsPerSecond),
	}
}

// Suggest returns bullet-point improvements for the resume.
func (a *Assistant) Suggest(ctx context.Context, resumeText, jobDescription string) (string, error) {
	return a.complete(ctx, driven.PromptSuggest, suggestMaxTokens, resumeText, jobDescription)
}

// Rewrite returns an ATS-optimised version of the resume.
func (a *Assistant) Rewrite(ctx context.Context, resumeText, jobDescription string) (string, error) {
	return a.complete(ctx, driven.PromptRewrite, rewriteMaxTokens, resumeText, jobDescription)
}

// Analyse returns a narrative analysis opening with "MATCH SCORE: NN%".
func (a *Assistant) Analyse(ctx context.Context, resumeText, jobDescription string) (string, error) {
	return a.complete(ctx, driven.PromptAnalyse, analyseMaxTokens, resumeText, jobDescription)
}

func (a *Assistant) complete(ctx context.Context, prompt string, maxTokens int, resumeText, jobDescription string) (string, error) {
	if a.llm == nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrAssistantFailed, prompt, domain.ErrLLMUnavailable)
	}

	tmpl, err := a.prompts.Load(prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrAssistantFailed, prompt, err)
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrAssistantFailed, prompt, err)
	}

	start := time.Now()
	out, err := a.llm.Generate(ctx, fmt.Sprintf(tmpl, jobDescription, resumeText), driven.GenerateOptions{
		MaxTokens:   maxTokens,
		Temperature: temperature,
		StopWords:   stopWords,
	})
	if err != nil {
		var status *llm.StatusError
		if errors.As(err, &status) && status.Code == http.StatusTooManyRequests {
			a.limiter.Backoff(0)
		}
		logger.Warn("%s via %s failed after %s: %v", prompt, a.llm.ModelName(), time.Since(start).Round(time.Millisecond), err)
		return "", fmt.Errorf("%w: %s: %w", domain.ErrAssistantFailed, prompt, err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: %s: empty response", domain.ErrAssistantFailed, prompt)
	}

	logger.Debug("%s via %s: %d chars in %s", prompt, a.llm.ModelName(), len(out), time.Since(start).Round(time.Millisecond))
	return out, nil
}
