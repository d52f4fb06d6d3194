package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
)

type download struct {
	id       string
	format   domain.Format
	original bool
}

type mockAnalysisService struct {
	downloads []download
	err       error
}

func (m *mockAnalysisService) Analyse(context.Context, driving.AnalyseRequest) (*domain.Analysis, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAnalysisService) Get(context.Context, string) (*domain.Analysis, error) {
	return nil, domain.ErrNotFound
}

func (m *mockAnalysisService) List(context.Context) ([]domain.Analysis, error) {
	return nil, nil
}

func (m *mockAnalysisService) Delete(context.Context, string) error {
	return nil
}

func (m *mockAnalysisService) Download(
	_ context.Context, id string, format domain.Format, original bool,
) (*domain.RenderedDocument, error) {
	m.downloads = append(m.downloads, download{id, format, original})
	if m.err != nil {
		return nil, m.err
	}
	suffix := "_rewritten"
	if original {
		suffix = "_original"
	}
	return &domain.RenderedDocument{
		Format:   format,
		Filename: "jane" + suffix + format.Extension(),
		Content:  []byte("rendered " + string(format)),
	}, nil
}

func testAnalysis() domain.Analysis {
	return domain.Analysis{
		ID:              "a1",
		Filename:        "jane.pdf",
		ResumeText:      "ORIGINAL TEXT",
		RewrittenResume: "REWRITTEN TEXT",
		InitialScore:    domain.NewMatchScore(0.25),
		NewScore:        domain.NewMatchScore(0.5),
		MatchPercent:    72,
		MatchSource:     domain.ScoreSourceAssistant,
		Suggestions:     "Add Kubernetes.",
		Narrative:       "A fair fit.",
		Warnings:        []string{"narrative unavailable"},
	}
}

func newView(svc *mockAnalysisService, dir string) *View {
	v := NewView(context.Background(), styles.DefaultStyles(), keymap.DefaultKeyMap(), svc, dir)
	v.SetDimensions(80, 40)
	return v
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_Empty(t *testing.T) {
	v := newView(&mockAnalysisService{}, t.TempDir())

	assert.Nil(t, v.Analysis())
	assert.Contains(t, v.View(), "No analysis selected")

	_, cmd := v.Update(runes("w"))
	assert.Nil(t, cmd)
}

func TestView_ShowsAnalysis(t *testing.T) {
	v := newView(&mockAnalysisService{}, t.TempDir())
	v.SetAnalysis(testAnalysis())

	out := v.View()
	for _, want := range []string{
		"jane.pdf", "Suggestions", "Add Kubernetes.", "Match analysis",
		"A fair fit.", "narrative unavailable", "Rewritten resume", "REWRITTEN TEXT",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "ORIGINAL TEXT")
}

func TestView_ToggleOriginal(t *testing.T) {
	v := newView(&mockAnalysisService{}, t.TempDir())
	v.SetAnalysis(testAnalysis())

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, v.ShowingOriginal())
	assert.Contains(t, v.View(), "ORIGINAL TEXT")
	assert.NotContains(t, v.View(), "REWRITTEN TEXT")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, v.ShowingOriginal())

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v.SetAnalysis(testAnalysis())
	assert.False(t, v.ShowingOriginal(), "a new analysis starts on the rewrite")
}

func TestView_Scroll(t *testing.T) {
	a := testAnalysis()
	a.RewrittenResume = strings.Repeat("line\n", 100)

	v := newView(&mockAnalysisService{}, t.TempDir())
	v.SetAnalysis(a)

	v, _ = v.Update(runes("j"))
	assert.Equal(t, 1, v.ScrollOffset())
	v, _ = v.Update(runes("k"))
	v, _ = v.Update(runes("k"))
	assert.Equal(t, 0, v.ScrollOffset())

	v, _ = v.Update(runes("G"))
	bottom := v.ScrollOffset()
	assert.Positive(t, bottom)
	v, _ = v.Update(runes("j"))
	assert.Equal(t, bottom, v.ScrollOffset())
	assert.Contains(t, v.View(), "[100%]")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, bottom-v.visibleLines(), v.ScrollOffset())

	v, _ = v.Update(runes("g"))
	assert.Equal(t, 0, v.ScrollOffset())
}

func TestView_Wrap(t *testing.T) {
	v := newView(&mockAnalysisService{}, t.TempDir())
	v.SetDimensions(30, 40)

	lines := v.wrap(strings.Repeat("word ", 20) + "\n\nnext")
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 26)
	}
	assert.Equal(t, "", lines[len(lines)-2], "blank lines survive")
	assert.Equal(t, "next", lines[len(lines)-1])
}

func TestView_Write(t *testing.T) {
	tests := []struct {
		name     string
		keys     []tea.KeyMsg
		wantFile string
		want     download
	}{
		{
			name:     "docx rewrite",
			keys:     []tea.KeyMsg{runes("w")},
			wantFile: "jane_rewritten.docx",
			want:     download{"a1", domain.FormatDOCX, false},
		},
		{
			name:     "pdf original",
			keys:     []tea.KeyMsg{{Type: tea.KeyTab}, runes("p")},
			wantFile: "jane_original.pdf",
			want:     download{"a1", domain.FormatPDF, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			svc := &mockAnalysisService{}
			v := newView(svc, dir)
			v.SetAnalysis(testAnalysis())

			var cmd tea.Cmd
			for _, k := range tt.keys {
				v, cmd = v.Update(k)
			}
			require.NotNil(t, cmd)

			msg, ok := cmd().(messages.DocumentWritten)
			require.True(t, ok)
			require.NoError(t, msg.Err)
			assert.Equal(t, filepath.Join(dir, tt.wantFile), msg.Path)
			assert.Equal(t, []download{tt.want}, svc.downloads)

			info, err := os.Stat(msg.Path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

			v, _ = v.Update(msg)
			assert.Equal(t, status.StateInfo, v.Status().State())
			assert.Equal(t, "Wrote "+msg.Path, v.Status().Message())
		})
	}
}

func TestView_WriteErrors(t *testing.T) {
	t.Run("download fails", func(t *testing.T) {
		svc := &mockAnalysisService{err: domain.ErrNotFound}
		v := newView(svc, t.TempDir())
		v.SetAnalysis(testAnalysis())

		_, cmd := v.Update(runes("p"))
		msg := cmd().(messages.DocumentWritten)
		assert.ErrorIs(t, msg.Err, domain.ErrNotFound)

		v, _ = v.Update(msg)
		assert.Equal(t, status.StateError, v.Status().State())
	})

	t.Run("missing directory", func(t *testing.T) {
		v := newView(&mockAnalysisService{}, filepath.Join(t.TempDir(), "missing"))
		v.SetAnalysis(testAnalysis())

		_, cmd := v.Update(runes("w"))
		msg := cmd().(messages.DocumentWritten)
		require.Error(t, msg.Err)
		assert.Contains(t, msg.Err.Error(), "write ")
	})
}

func TestView_Navigation(t *testing.T) {
	v := newView(&mockAnalysisService{}, t.TempDir())
	v.SetAnalysis(testAnalysis())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewHistory}, cmd())

	_, cmd = v.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.Quit{}, cmd())
}
