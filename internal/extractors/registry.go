package extractors

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/atsfit-cli/internal/extractors/docx"
	"github.com/custodia-labs/atsfit-cli/internal/extractors/pdf"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps document formats to their extractors.
type Registry struct {
	mu         sync.RWMutex
	extractors map[domain.Format]driven.Extractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors: make(map[domain.Format]driven.Extractor),
	}
}

// NewDefaultRegistry creates a registry with the PDF and DOCX extractors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// RegisterDefaults registers all built-in extractors with the registry.
func RegisterDefaults(r *Registry) {
	r.Register(pdf.New())
	r.Register(docx.New())
}

// Register adds an extractor, replacing any previous one for the same format.
func (r *Registry) Register(extractor driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors[extractor.Format()] = extractor
}

// Extract converts the document using the extractor registered for its format.
func (r *Registry) Extract(ctx context.Context, doc domain.Document) (domain.PlainText, error) {
	r.mu.RLock()
	extractor, ok := r.extractors[doc.Format]
	r.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, doc.Format)
	}

	logger.Debug("extracting %s (%d bytes) as %s", doc.Name, len(doc.Content), doc.Format)
	return extractor.Extract(ctx, doc)
}

// SupportedFormats returns the registered formats in sorted order.
func (r *Registry) SupportedFormats() []domain.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]domain.Format, 0, len(r.extractors))
	for f := range r.extractors {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
