// Package tui provides an interactive terminal browser for stored analyses.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Analysis lists, deletes and renders stored analyses.
	Analysis driving.AnalysisService

	// OutputDir receives rendered resumes. Empty means the working directory.
	OutputDir string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
