package mcp

import (
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Document extracts, scores and renders resumes.
	Document driving.DocumentService

	// Analysis runs and stores the full pipeline.
	Analysis driving.AnalysisService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	// Analysis is optional; without it the analysis tools and resources are not registered.
	return nil
}
