package renderers

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
	"github.com/custodia-labs/atsfit-cli/internal/renderers/docx"
	"github.com/custodia-labs/atsfit-cli/internal/renderers/pdf"
)

// Ensure Registry implements the interface.
var _ driven.RendererRegistry = (*Registry)(nil)

// Registry maps output formats to renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[domain.Format]driven.Renderer
}

// NewRegistry creates an empty renderer registry.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[domain.Format]driven.Renderer),
	}
}

// NewDefaultRegistry creates a registry with the DOCX and PDF renderers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(docx.New())
	r.Register(pdf.New())
	return r
}

// Register adds a renderer, replacing any previous one for the same format.
func (r *Registry) Register(renderer driven.Renderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[renderer.Format()] = renderer
}

// Render builds the document and wraps it with its MIME type.
func (r *Registry) Render(
	ctx context.Context,
	text domain.PlainText,
	format domain.Format,
	rules domain.RuleSet,
) (*domain.RenderedDocument, error) {
	r.mu.RLock()
	renderer, ok := r.renderers[format]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	content, err := renderer.Render(ctx, text, rules)
	if err != nil {
		return nil, err
	}

	logger.Debug("rendered %s: %d bytes", format, len(content))
	return &domain.RenderedDocument{
		Format:   format,
		MIMEType: format.MIMEType(),
		Content:  content,
	}, nil
}

// SupportedFormats returns the registered formats in sorted order.
func (r *Registry) SupportedFormats() []domain.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]domain.Format, 0, len(r.renderers))
	for f := range r.renderers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}
