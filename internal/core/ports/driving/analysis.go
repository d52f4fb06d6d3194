package driving

import (
	"context"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

// AnalyseRequest is the input to a pipeline run.
type AnalyseRequest struct {
	// Document is the uploaded resume.
	Document domain.Document

	// JobDescription is the free-form job description. Required.
	JobDescription string

	// SkipNarrative disables the narrative analysis call.
	SkipNarrative bool
}

// AnalysisService runs and stores the resume analysis pipeline.
type AnalysisService interface {
	// Analyse extracts, scores, asks the assistant for suggestions, a rewrite
	// and a narrative, and stores the result. Assistant failures fall back
	// to the original text and the lexical score rather than failing.
	Analyse(ctx context.Context, req AnalyseRequest) (*domain.Analysis, error)

	// Get retrieves a stored analysis.
	Get(ctx context.Context, id string) (*domain.Analysis, error)

	// List returns stored analyses, newest first.
	List(ctx context.Context) ([]domain.Analysis, error)

	// Delete removes a stored analysis.
	Delete(ctx context.Context, id string) error

	// Download renders a stored analysis' rewritten resume, or the original
	// extracted text when original is true.
	Download(ctx context.Context, id string, format domain.Format, original bool) (*domain.RenderedDocument, error)
}
