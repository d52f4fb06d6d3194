package driving

import (
	"context"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

// DocumentService exposes the extraction, scoring and rendering core.
type DocumentService interface {
	// Extract converts an uploaded PDF or DOCX into plain text.
	Extract(ctx context.Context, doc domain.Document) (domain.PlainText, error)

	// Score computes the lexical overlap between resume text and a job description.
	// It never fails.
	Score(resumeText, jobDescription string) domain.MatchScore

	// ParseMatchScore extracts the percent from a "MATCH SCORE: NN%" line.
	ParseMatchScore(analysisText string) (int, bool)

	// Render converts plain text into a styled DOCX or paginated PDF.
	Render(ctx context.Context, text domain.PlainText, format domain.Format) (*domain.RenderedDocument, error)
}
