package list

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

func testAnalyses(n int) []domain.Analysis {
	out := make([]domain.Analysis, n)
	for i := range out {
		out[i] = domain.Analysis{
			ID:           string(rune('a' + i)),
			Filename:     string(rune('a'+i)) + ".pdf",
			InitialScore: domain.NewMatchScore(0.25),
			NewScore:     domain.NewMatchScore(0.5),
			MatchPercent: 80,
			CreatedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func TestAnalysisList_Empty(t *testing.T) {
	l := NewAnalysisList(nil)

	assert.Nil(t, l.SelectedAnalysis())
	assert.Contains(t, l.View(), "No analyses")

	l.MoveDown()
	l.MoveUp()
	assert.Equal(t, 0, l.Selected())
}

func TestAnalysisList_Navigation(t *testing.T) {
	l := NewAnalysisList(nil)
	l.SetAnalyses(testAnalyses(3))

	keys := []struct {
		msg  tea.KeyMsg
		want int
	}{
		{tea.KeyMsg{Type: tea.KeyDown}, 1},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, 2},
		{tea.KeyMsg{Type: tea.KeyDown}, 2},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, 1},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, 0},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")}, 2},
	}
	for _, k := range keys {
		l, _ = l.Update(k.msg)
		assert.Equal(t, k.want, l.Selected(), "after %q", k.msg.String())
	}

	require.NotNil(t, l.SelectedAnalysis())
	assert.Equal(t, "c", l.SelectedAnalysis().ID)
}

func TestAnalysisList_SetAnalysesResetsSelection(t *testing.T) {
	l := NewAnalysisList(nil)
	l.SetAnalyses(testAnalyses(3))
	l.SetSelected(2)

	l.SetAnalyses(testAnalyses(1))

	assert.Equal(t, 0, l.Selected())
	l.SetSelected(5)
	assert.Equal(t, 0, l.Selected())
}

func TestAnalysisList_View(t *testing.T) {
	l := NewAnalysisList(nil)
	items := testAnalyses(1)
	items[0].Warnings = []string{"rewrite unavailable"}
	l.SetAnalyses(items)

	view := l.View()

	assert.Contains(t, view, "a.pdf")
	assert.Contains(t, view, "25% -> 50%")
	assert.Contains(t, view, "80%")
	assert.Contains(t, view, "1 warnings")
}

func TestAnalysisList_ViewScrollsToSelection(t *testing.T) {
	l := NewAnalysisList(nil)
	l.SetAnalyses(testAnalyses(10))
	l.SetDimensions(80, 6) // two items visible

	l.SetSelected(7)
	view := l.View()

	assert.Contains(t, view, "h.pdf")
	assert.Contains(t, view, "g.pdf")
	assert.NotContains(t, view, "a.pdf")
}
