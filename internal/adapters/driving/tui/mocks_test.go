package tui

import (
	"context"
	"errors"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
)

type mockAnalysisService struct {
	analyses []domain.Analysis
	listErr  error
}

func (m *mockAnalysisService) Analyse(context.Context, driving.AnalyseRequest) (*domain.Analysis, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAnalysisService) Get(_ context.Context, id string) (*domain.Analysis, error) {
	for i := range m.analyses {
		if m.analyses[i].ID == id {
			return &m.analyses[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockAnalysisService) List(context.Context) ([]domain.Analysis, error) {
	return m.analyses, m.listErr
}

func (m *mockAnalysisService) Delete(context.Context, string) error {
	return nil
}

func (m *mockAnalysisService) Download(
	_ context.Context, _ string, format domain.Format, _ bool,
) (*domain.RenderedDocument, error) {
	return &domain.RenderedDocument{Format: format, Filename: "cv" + format.Extension(), Content: []byte("x")}, nil
}
