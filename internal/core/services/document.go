package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService ties the extractors, the scorer and the renderers together.
// It holds no per-call state and is safe for concurrent use.
type DocumentService struct {
	extractors driven.ExtractorRegistry
	renderers  driven.RendererRegistry
	scorer     *MatchScorer
	rules      domain.RuleSet
}

// NewDocumentService creates a document service. Scoring options and
// classification lexicons are taken from settings.
func NewDocumentService(
	extractors driven.ExtractorRegistry,
	renderers driven.RendererRegistry,
	settings domain.AppSettings,
) *DocumentService {
	return &DocumentService{
		extractors: extractors,
		renderers:  renderers,
		scorer:     NewMatchScorer(settings.Scoring),
		rules:      settings.Classification.RuleSet(),
	}
}

// Extract converts an uploaded PDF or DOCX into plain text.
func (s *DocumentService) Extract(ctx context.Context, doc domain.Document) (domain.PlainText, error) {
	if !doc.Format.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, doc.Format)
	}
	defer logger.Stage("extract " + doc.Format.String())()
	return s.extractors.Extract(ctx, doc)
}

// Score computes the lexical overlap between resume text and a job description.
func (s *DocumentService) Score(resumeText, jobDescription string) domain.MatchScore {
	score := s.scorer.Score(resumeText, jobDescription)
	logger.Debug("lexical score: %.4f (%d%%)", score.Float(), score.Percent())
	return score
}

// ParseMatchScore extracts the percent from a "MATCH SCORE: NN%" line.
func (s *DocumentService) ParseMatchScore(analysisText string) (int, bool) {
	return ParseMatchScore(analysisText)
}

// Render converts plain text into a styled DOCX or paginated PDF.
func (s *DocumentService) Render(
	ctx context.Context,
	text domain.PlainText,
	format domain.Format,
) (*domain.RenderedDocument, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
	defer logger.Stage("render " + format.String())()
	return s.renderers.Render(ctx, text, format, s.rules)
}

// Rules returns the classification rules used for rendering.
func (s *DocumentService) Rules() domain.RuleSet {
	return s.rules
}
