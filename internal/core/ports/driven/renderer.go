package driven

import (
	"context"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

// Renderer converts plain text into a styled document of one format.
type Renderer interface {
	// Format returns the output format this renderer produces.
	Format() domain.Format

	// Render builds the document, classifying each paragraph with rules.
	// Unexpected failures yield an error wrapping domain.ErrRender.
	Render(ctx context.Context, text domain.PlainText, rules domain.RuleSet) ([]byte, error)
}
