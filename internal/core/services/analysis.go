package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// FallbackSuggestions replaces suggestions when the assistant cannot provide them.
const FallbackSuggestions = "Suggestions are unavailable right now. " +
	"Compare the job description's key terms with your resume and add the ones that honestly apply."

// Warnings recorded on an analysis when a fallback is used.
const (
	WarnSuggestionsUnavailable = "suggestions unavailable"
	WarnRewriteUnavailable     = "rewrite unavailable; original text kept"
	WarnAnalysisUnavailable    = "match analysis unavailable; lexical score used"
	WarnAnalysisUnparsed       = "match analysis had no MATCH SCORE line; lexical score used"
)

// assistantCall is the shape shared by Suggest, Rewrite and Analyse.
type assistantCall func(ctx context.Context, resumeText, jobDescription string) (string, error)

// AnalysisService runs the resume pipeline and keeps its results.
type AnalysisService struct {
	documents *DocumentService
	store     driven.AnalysisStore
	suggester driven.Suggester
	rewriter  driven.Rewriter
	analyst   driven.Analyst

	now   func() time.Time
	newID func() string
}

// NewAnalysisService creates a new analysis service.
// The suggester, rewriter and analyst are optional (can be nil); a missing
// collaborator is treated like a failed call.
func NewAnalysisService(
	documents *DocumentService,
	store driven.AnalysisStore,
	suggester driven.Suggester,
	rewriter driven.Rewriter,
	analyst driven.Analyst,
) *AnalysisService {
	return &AnalysisService{
		documents: documents,
		store:     store,
		suggester: suggester,
		rewriter:  rewriter,
		analyst:   analyst,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Analyse extracts the resume, scores it, asks the assistant for
// suggestions, a rewrite and a narrative, rescoring the rewrite, and stores
// the result. Only invalid input, extraction and storage errors fail the call.
func (s *AnalysisService) Analyse(ctx context.Context, req driving.AnalyseRequest) (*domain.Analysis, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, fmt.Errorf("%w: job description is required", domain.ErrInvalidInput)
	}
	if len(req.Document.Content) == 0 {
		return nil, fmt.Errorf("%w: resume file is empty", domain.ErrInvalidInput)
	}

	logger.Section("Analyse " + req.Document.Name)

	text, err := s.documents.Extract(ctx, req.Document)
	if err != nil {
		return nil, err
	}
	resume := text.String()
	jd := req.JobDescription

	analysis := &domain.Analysis{
		ID:             s.newID(),
		Filename:       req.Document.Name,
		ResumeText:     resume,
		JobDescription: jd,
		InitialScore:   s.documents.Score(resume, jd),
		CreatedAt:      s.now().UTC(),
	}

	if suggestions, ok := s.ask(ctx, "suggest", s.suggestCall(), resume, jd); ok {
		analysis.Suggestions = suggestions
	} else {
		analysis.Suggestions = FallbackSuggestions
		analysis.Warnings = append(analysis.Warnings, WarnSuggestionsUnavailable)
	}

	if rewritten, ok := s.ask(ctx, "rewrite", s.rewriteCall(), resume, jd); ok {
		analysis.RewrittenResume = rewritten
	} else {
		analysis.RewrittenResume = resume
		analysis.Warnings = append(analysis.Warnings, WarnRewriteUnavailable)
	}
	analysis.NewScore = s.documents.Score(analysis.RewrittenResume, jd)

	analysis.MatchPercent = analysis.NewScore.Percent()
	analysis.MatchSource = domain.ScoreSourceLexical
	if !req.SkipNarrative {
		s.applyNarrative(ctx, analysis)
	}

	if err := s.store.Save(ctx, analysis); err != nil {
		return nil, fmt.Errorf("save analysis: %w", err)
	}

	logger.Info("analysis %s: %d%% -> %d%% (match %d%% from %s, %d warnings)",
		analysis.ID, analysis.InitialScore.Percent(), analysis.NewScore.Percent(),
		analysis.MatchPercent, analysis.MatchSource, len(analysis.Warnings))
	return analysis, nil
}

// applyNarrative asks for the match analysis and takes its MATCH SCORE
// line as the headline percent when present.
func (s *AnalysisService) applyNarrative(ctx context.Context, analysis *domain.Analysis) {
	narrative, ok := s.ask(ctx, "analyse", s.analyseCall(), analysis.RewrittenResume, analysis.JobDescription)
	if !ok {
		analysis.Warnings = append(analysis.Warnings, WarnAnalysisUnavailable)
		return
	}
	analysis.Narrative = narrative

	percent, ok := ParseMatchScore(narrative)
	if !ok {
		analysis.Warnings = append(analysis.Warnings, WarnAnalysisUnparsed)
		return
	}
	analysis.MatchPercent = percent
	analysis.MatchSource = domain.ScoreSourceAssistant
}

// ask runs one assistant call. Errors, empty replies and failure sentinels
// all count as failure.
func (s *AnalysisService) ask(ctx context.Context, stage string, call assistantCall, resume, jd string) (string, bool) {
	if call == nil {
		logger.Debug("%s: no assistant configured", stage)
		return "", false
	}
	defer logger.Stage(stage)()

	out, err := call(ctx, resume, jd)
	switch {
	case err != nil:
		logger.Warn("%s failed: %v", stage, err)
		return "", false
	case strings.TrimSpace(out) == "":
		logger.Warn("%s returned nothing", stage)
		return "", false
	case IsFailureSentinel(out):
		logger.Warn("%s returned failure: %s", stage, firstLine(out))
		return "", false
	}
	return out, true
}

func (s *AnalysisService) suggestCall() assistantCall {
	if s.suggester == nil {
		return nil
	}
	return s.suggester.Suggest
}

func (s *AnalysisService) rewriteCall() assistantCall {
	if s.rewriter == nil {
		return nil
	}
	return s.rewriter.Rewrite
}

func (s *AnalysisService) analyseCall() assistantCall {
	if s.analyst == nil {
		return nil
	}
	return s.analyst.Analyse
}

// Get retrieves a stored analysis.
func (s *AnalysisService) Get(ctx context.Context, id string) (*domain.Analysis, error) {
	analysis, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get analysis %s: %w", id, err)
	}
	return analysis, nil
}

// List returns stored analyses, newest first.
func (s *AnalysisService) List(ctx context.Context) ([]domain.Analysis, error) {
	return s.store.List(ctx)
}

// Delete removes a stored analysis.
func (s *AnalysisService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete analysis %s: %w", id, err)
	}
	return nil
}

// Download renders the rewritten resume of a stored analysis, named
// "<base>_rewritten.<ext>". With original set, the extracted text is
// rendered instead and named "<base>_original.<ext>".
func (s *AnalysisService) Download(
	ctx context.Context,
	id string,
	format domain.Format,
	original bool,
) (*domain.RenderedDocument, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	analysis, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	text, suffix := analysis.RewrittenResume, "_rewritten"
	if original {
		text, suffix = analysis.ResumeText, "_original"
	}

	doc, err := s.documents.Render(ctx, domain.PlainText(text), format)
	if err != nil {
		return nil, err
	}
	doc.Filename = analysis.BaseFilename() + suffix + format.Extension()
	return doc, nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
