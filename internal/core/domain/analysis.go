package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// Analysis is one run of the analyse pipeline over an uploaded resume.
type Analysis struct {
	// ID is the unique identifier for the analysis.
	ID string

	// Filename is the uploaded resume's file name.
	Filename string

	// ResumeText is the text extracted from the upload.
	ResumeText string

	// JobDescription is the job description scored against.
	JobDescription string

	// InitialScore is the lexical score of the original resume.
	InitialScore MatchScore

	// RewrittenResume is the assistant's rewrite, or ResumeText on fallback.
	RewrittenResume string

	// NewScore is the lexical score of RewrittenResume.
	NewScore MatchScore

	// Suggestions are the assistant's improvement suggestions.
	Suggestions string

	// Narrative is the assistant's match analysis text, if any.
	Narrative string

	// MatchPercent is the headline percentage shown to users.
	MatchPercent int

	// MatchSource records whether MatchPercent came from the assistant
	// or from the lexical fallback.
	MatchSource ScoreSource

	// Warnings lists collaborator failures that triggered fallbacks.
	Warnings []string

	// CreatedAt is when the analysis ran.
	CreatedAt time.Time
}

// BaseFilename returns the base of Filename without its extension, or
// "resume" when there is nothing left.
func (a *Analysis) BaseFilename() string {
	base := filepath.Base(a.Filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "resume"
	}
	return base
}
