// Package http serves the analysis pipeline over a small JSON API built on fiber.
package http

import (
	"errors"

	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
)

// ErrMissingDocumentService is returned when the document service is not provided.
var ErrMissingDocumentService = errors.New("http: document service is required")

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("http: analysis service is required")

// Ports aggregates the driving ports the HTTP server needs.
type Ports struct {
	// Document extracts, scores and renders.
	Document driving.DocumentService

	// Analysis runs and stores the pipeline.
	Analysis driving.AnalysisService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Document == nil {
		return ErrMissingDocumentService
	}
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
