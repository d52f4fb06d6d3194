package mcp

import (
	"context"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
)

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	text     domain.PlainText
	score    domain.MatchScore
	percent  int
	found    bool
	rendered *domain.RenderedDocument
	err      error

	gotDoc    domain.Document
	gotFormat domain.Format
}

func (m *mockDocumentService) Extract(_ context.Context, doc domain.Document) (domain.PlainText, error) {
	m.gotDoc = doc
	return m.text, m.err
}

func (m *mockDocumentService) Score(_, _ string) domain.MatchScore {
	return m.score
}

func (m *mockDocumentService) ParseMatchScore(_ string) (int, bool) {
	return m.percent, m.found
}

func (m *mockDocumentService) Render(
	_ context.Context,
	_ domain.PlainText,
	format domain.Format,
) (*domain.RenderedDocument, error) {
	m.gotFormat = format
	return m.rendered, m.err
}

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	analyses []domain.Analysis
	err      error

	gotRequest driving.AnalyseRequest
}

func (m *mockAnalysisService) Analyse(_ context.Context, req driving.AnalyseRequest) (*domain.Analysis, error) {
	m.gotRequest = req
	if m.err != nil {
		return nil, m.err
	}
	return &m.analyses[0], nil
}

func (m *mockAnalysisService) Get(_ context.Context, id string) (*domain.Analysis, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.analyses {
		if m.analyses[i].ID == id {
			return &m.analyses[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockAnalysisService) List(_ context.Context) ([]domain.Analysis, error) {
	return m.analyses, m.err
}

func (m *mockAnalysisService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockAnalysisService) Download(
	_ context.Context,
	_ string,
	_ domain.Format,
	_ bool,
) (*domain.RenderedDocument, error) {
	return nil, m.err
}
