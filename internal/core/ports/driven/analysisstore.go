package driven

import (
	"context"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

// AnalysisStore persists analysis results so rewrites can be downloaded later.
type AnalysisStore interface {
	// Save stores or replaces an analysis.
	Save(ctx context.Context, analysis *domain.Analysis) error

	// Get retrieves an analysis by ID. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Analysis, error)

	// List returns all analyses, newest first.
	List(ctx context.Context) ([]domain.Analysis, error)

	// Delete removes an analysis. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}
