package normalisers

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
	"github.com/custodia-labs/atsfit-cli/internal/normalisers/html"
	"github.com/custodia-labs/atsfit-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/atsfit-cli/internal/normalisers/plaintext"
)

// Registry picks a normaliser by file extension. Unknown extensions fall
// back to the plain text normaliser.
type Registry struct {
	mu          sync.RWMutex
	normalisers map[string]driven.Normaliser
	fallback    driven.Normaliser
}

// NewRegistry creates a registry with only the plain text fallback.
func NewRegistry() *Registry {
	return &Registry{
		normalisers: make(map[string]driven.Normaliser),
		fallback:    plaintext.New(),
	}
}

// NewDefaultRegistry creates a registry with the HTML and Markdown normalisers.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(html.New())
	r.Register(markdown.New())
	return r
}

// Register adds n for each of its extensions, replacing earlier entries.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range n.Extensions() {
		r.normalisers[strings.ToLower(ext)] = n
	}
}

// Normalise converts content read from a file called name to plain text.
func (r *Registry) Normalise(name string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(name))

	r.mu.RLock()
	n, ok := r.normalisers[ext]
	r.mu.RUnlock()

	if !ok {
		n = r.fallback
	}
	logger.Debug("normalising %s (%d bytes) with %T", name, len(content), n)
	return n.Normalise(content)
}
