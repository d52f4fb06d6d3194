// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

// linesPerItem is the height of one rendered analysis.
const linesPerItem = 2

// AnalysisList displays stored analyses in a navigable list.
type AnalysisList struct {
	analyses []domain.Analysis
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewAnalysisList creates an empty list.
func NewAnalysisList(s *styles.Styles) *AnalysisList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &AnalysisList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Update handles list navigation keys.
func (l *AnalysisList) Update(msg tea.Msg) (*AnalysisList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.analyses) > 0 {
				l.selected = len(l.analyses) - 1
			}
		}
	}
	return l, nil
}

// View renders the visible window of the list.
func (l *AnalysisList) View() string {
	if len(l.analyses) == 0 {
		return l.styles.Muted.Render("No analyses")
	}

	visible := (l.height - 2) / linesPerItem
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := min(start+visible, len(l.analyses))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, &l.analyses[i]))
	}
	return strings.Join(lines, "\n")
}

// renderItem formats one analysis as a title line and a score line.
func (l *AnalysisList) renderItem(index int, a *domain.Analysis) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	name := a.Filename
	if name == "" {
		name = a.ID
	}
	maxName := max(l.width-24, 10)
	if len(name) > maxName {
		name = name[:maxName-3] + "..."
	}
	when := a.CreatedAt.Local().Format("2006-01-02 15:04")

	var title string
	if index == l.selected {
		title = l.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxName, name, when))
	} else {
		title = l.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxName, name)) +
			l.styles.Muted.Render(when)
	}

	scores := fmt.Sprintf("    %d%% -> %d%%  match %s",
		a.InitialScore.Percent(), a.NewScore.Percent(), l.styles.ScoreBadge(a.MatchPercent))
	if len(a.Warnings) > 0 {
		scores += l.styles.Warning.Render(fmt.Sprintf("  %d warnings", len(a.Warnings)))
	}
	return title + "\n" + l.styles.Muted.Render(scores)
}

// SetAnalyses replaces the list contents and resets the selection.
func (l *AnalysisList) SetAnalyses(analyses []domain.Analysis) {
	l.analyses = analyses
	l.selected = 0
}

// Analyses returns the current items.
func (l *AnalysisList) Analyses() []domain.Analysis {
	return l.analyses
}

// Selected returns the index of the selected analysis.
func (l *AnalysisList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index if it is in range.
func (l *AnalysisList) SetSelected(index int) {
	if index >= 0 && index < len(l.analyses) {
		l.selected = index
	}
}

// SelectedAnalysis returns the selected analysis, or nil if the list is empty.
func (l *AnalysisList) SelectedAnalysis() *domain.Analysis {
	if l.selected < 0 || l.selected >= len(l.analyses) {
		return nil
	}
	return &l.analyses[l.selected]
}

// MoveUp moves selection up.
func (l *AnalysisList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *AnalysisList) MoveDown() {
	if l.selected < len(l.analyses)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *AnalysisList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of analyses.
func (l *AnalysisList) Count() int {
	return len(l.analyses)
}
