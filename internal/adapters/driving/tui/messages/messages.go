// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewHistory lists stored analyses.
	ViewHistory ViewType = iota
	// ViewAnalysis shows one analysis.
	ViewAnalysis
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewHistory:
		return "history"
	case ViewAnalysis:
		return "analysis"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// AnalysesLoaded carries the stored analyses, newest first.
type AnalysesLoaded struct {
	Analyses []domain.Analysis
	Err      error
}

// AnalysisSelected opens an analysis.
type AnalysisSelected struct {
	Analysis domain.Analysis
}

// AnalysisDeleted signals an analysis was removed.
type AnalysisDeleted struct {
	ID  string
	Err error
}

// DocumentWritten signals a rendered resume was saved to disk.
type DocumentWritten struct {
	Path string
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
