package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a document format other than PDF or DOCX.
	// It is never retried.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrExtraction indicates the bytes are not a valid document of the declared format.
	ErrExtraction = errors.New("extraction failed")

	// ErrRender indicates an unexpected failure while building output bytes.
	ErrRender = errors.New("render failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Suggestions, rewriting and narrative analysis fall back to lexical scoring.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrAssistantFailed indicates the text-generation collaborator reported a failure,
	// either as an error or as a failure sentinel in its output.
	ErrAssistantFailed = errors.New("assistant failed")
)
