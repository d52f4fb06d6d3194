package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func allErrors() map[string]error {
	return map[string]error{
		"not found":               ErrNotFound,
		"invalid input":           ErrInvalidInput,
		"unsupported format":      ErrUnsupportedFormat,
		"extraction failed":       ErrExtraction,
		"render failed":           ErrRender,
		"LLM service unavailable": ErrLLMUnavailable,
		"assistant failed":        ErrAssistantFailed,
	}
}

func TestErrors_Messages(t *testing.T) {
	for want, err := range allErrors() {
		assert.EqualError(t, err, want)
	}
}

func TestErrors_Uniqueness(t *testing.T) {
	for nameA, a := range allErrors() {
		for nameB, b := range allErrors() {
			if nameA == nameB {
				continue
			}
			assert.False(t, errors.Is(a, b), "%s should not match %s", nameA, nameB)
		}
	}
}

func TestErrors_WithWrapping(t *testing.T) {
	wrapped := fmt.Errorf("page 3: %w", ErrExtraction)

	assert.ErrorIs(t, wrapped, ErrExtraction)
	assert.NotErrorIs(t, wrapped, ErrRender)
	assert.Equal(t, "page 3: extraction failed", wrapped.Error())

	double := fmt.Errorf("%w: content_base64: %w", ErrInvalidInput, errors.New("illegal base64"))
	assert.ErrorIs(t, double, ErrInvalidInput)
}
