package driven

import (
	"context"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

// ExtractorRegistry selects the extractor for a document's declared format.
type ExtractorRegistry interface {
	// Extract converts the document using the extractor registered for its format.
	// Unknown formats yield domain.ErrUnsupportedFormat.
	Extract(ctx context.Context, doc domain.Document) (domain.PlainText, error)

	// Register adds an extractor, replacing any previous one for the same format.
	Register(extractor Extractor)

	// SupportedFormats returns the registered formats in sorted order.
	SupportedFormats() []domain.Format
}

// RendererRegistry selects the renderer for a requested output format.
type RendererRegistry interface {
	// Render builds a document of the given format. Unknown formats yield
	// domain.ErrUnsupportedFormat.
	Render(ctx context.Context, text domain.PlainText, format domain.Format, rules domain.RuleSet) (*domain.RenderedDocument, error)

	// Register adds a renderer, replacing any previous one for the same format.
	Register(renderer Renderer)

	// SupportedFormats returns the registered formats in sorted order.
	SupportedFormats() []domain.Format
}
