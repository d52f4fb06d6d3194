package driven

import (
	"context"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

// Extractor converts a document of one format into plain text.
type Extractor interface {
	// Format returns the document format this extractor reads.
	Format() domain.Format

	// Extract returns the document's paragraphs as plain text.
	// Invalid bytes yield an error wrapping domain.ErrExtraction. Text already
	// extracted before a failure may be returned alongside the error.
	Extract(ctx context.Context, doc domain.Document) (domain.PlainText, error)
}
