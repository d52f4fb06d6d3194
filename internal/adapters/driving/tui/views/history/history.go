// Package history provides the analysis history view for the TUI.
package history

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
)

// View lists stored analyses with a file name filter.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	analyses driving.AnalysisService
	ctx      context.Context

	all    []domain.Analysis
	list   *list.AnalysisList
	filter *input.FilterInput
	status *status.Bar

	// confirmDelete holds the id awaiting a second delete keypress.
	confirmDelete string

	width  int
	height int
}

// NewView creates a history view.
func NewView(ctx context.Context, s *styles.Styles, km *keymap.KeyMap, analyses driving.AnalysisService) *View {
	bar := status.NewBar(s, km)
	bar.SetBindings(km.HistoryHelp())
	return &View{
		styles:   s,
		keymap:   km,
		analyses: analyses,
		ctx:      ctx,
		list:     list.NewAnalysisList(s),
		filter:   input.NewFilterInput(s),
		status:   bar,
	}
}

// Init loads the history.
func (v *View) Init() tea.Cmd {
	v.status.SetState(status.StateLoading, "")
	return v.load()
}

func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		analyses, err := v.analyses.List(v.ctx)
		return messages.AnalysesLoaded{Analyses: analyses, Err: err}
	}
}

func (v *View) remove(id string) tea.Cmd {
	return func() tea.Msg {
		return messages.AnalysisDeleted{ID: id, Err: v.analyses.Delete(v.ctx, id)}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.AnalysesLoaded:
		if msg.Err != nil {
			v.status.SetState(status.StateError, msg.Err.Error())
			return v, nil
		}
		v.all = msg.Analyses
		v.applyFilter()
		v.status.Clear()
		return v, nil

	case messages.AnalysisDeleted:
		if msg.Err != nil {
			v.status.SetState(status.StateError, msg.Err.Error())
			return v, nil
		}
		v.status.SetState(status.StateInfo, "Deleted "+msg.ID)
		return v, v.load()

	case tea.KeyMsg:
		if v.filter.Focused() {
			return v.updateFilter(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) updateFilter(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // only keys that leave the filter
	case tea.KeyEnter:
		v.filter.Blur()
		return v, nil
	case tea.KeyEsc:
		v.filter.Reset()
		v.filter.Blur()
		v.applyFilter()
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	v.applyFilter()
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if keyStr != "x" {
		v.confirmDelete = ""
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }

	case keymap.Matches(keyStr, v.keymap.Help):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHelp} }

	case keymap.Matches(keyStr, v.keymap.Filter):
		return v, v.filter.Focus()

	case keymap.Matches(keyStr, v.keymap.Refresh):
		return v, v.Init()

	case keymap.Matches(keyStr, v.keymap.Select):
		selected := v.list.SelectedAnalysis()
		if selected == nil {
			return v, nil
		}
		a := *selected
		return v, func() tea.Msg { return messages.AnalysisSelected{Analysis: a} }

	case keymap.Matches(keyStr, v.keymap.Delete):
		selected := v.list.SelectedAnalysis()
		if selected == nil {
			return v, nil
		}
		if v.confirmDelete != selected.ID {
			v.confirmDelete = selected.ID
			v.status.SetState(status.StateInfo, "Press x again to delete "+selected.Filename)
			return v, nil
		}
		v.confirmDelete = ""
		return v, v.remove(selected.ID)
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// applyFilter narrows the list to file names containing the filter text.
func (v *View) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(v.filter.Value()))
	if needle == "" {
		v.list.SetAnalyses(v.all)
		v.status.SetCount(len(v.all))
		return
	}

	matched := make([]domain.Analysis, 0, len(v.all))
	for i := range v.all {
		if strings.Contains(strings.ToLower(v.all[i].Filename), needle) {
			matched = append(matched, v.all[i])
		}
	}
	v.list.SetAnalyses(matched)
	v.status.SetCount(len(matched))
}

// View renders the history view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("atsfit history"))
	b.WriteString("\n\n")
	if v.filter.Focused() || v.filter.Value() != "" {
		b.WriteString(v.filter.View())
		b.WriteString("\n\n")
	}
	b.WriteString(v.list.View())
	b.WriteString("\n\n")
	b.WriteString(v.status.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-8)
	v.filter.SetWidth(width)
	v.status.SetWidth(width)
}

// Analyses returns the analyses currently listed.
func (v *View) Analyses() []domain.Analysis {
	return v.list.Analyses()
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.status
}

// FilterFocused reports whether the filter input has focus.
func (v *View) FilterFocused() bool {
	return v.filter.Focused()
}
