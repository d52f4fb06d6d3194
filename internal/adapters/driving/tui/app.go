package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/views/analysis"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/views/history"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	historyView  *history.View
	analysisView *analysis.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	width  int
	height int

	// ready is set once the terminal size is known.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	a := &App{
		ports:       ports,
		styles:      styles.DefaultStyles(),
		keymap:      keymap.DefaultKeyMap(),
		currentView: messages.ViewHistory,
	}
	a.buildViews(context.Background())
	return a, nil
}

func (a *App) buildViews(ctx context.Context) {
	outputDir := a.ports.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	a.ctx = ctx
	a.historyView = history.NewView(ctx, a.styles, a.keymap, a.ports.Analysis)
	a.analysisView = analysis.NewView(ctx, a.styles, a.keymap, a.ports.Analysis, outputDir)
	if a.ready {
		a.historyView.SetDimensions(a.width, a.height)
		a.analysisView.SetDimensions(a.width, a.height)
	}
}

// WithContext sets the context service calls run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.buildViews(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("atsfit"),
		a.historyView.Init(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
		case messages.ViewAnalysis:
			a.analysisView, cmd = a.analysisView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || keymap.Matches(msg.String(), a.keymap.Quit) {
				a.currentView = messages.ViewHistory
			}
		}
		return a, cmd

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.AnalysisSelected:
		a.analysisView.SetAnalysis(msg.Analysis)
		a.currentView = messages.ViewAnalysis
		return a, nil

	case messages.AnalysesLoaded:
		a.err = msg.Err
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.AnalysisDeleted:
		a.err = msg.Err
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.DocumentWritten:
		a.err = msg.Err
		a.analysisView, cmd = a.analysisView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewAnalysis:
		return a.analysisView.View()
	case messages.ViewHelp:
		return viewHelp()
	default:
		return a.historyView.View()
	}
}

func viewHelp() string {
	return `Help

History:
  j/k, ↑/↓    Move between analyses
  enter       Open analysis
  /           Filter by file name
  r           Reload
  x x         Delete analysis
  q           Quit

Analysis:
  j/k, ↑/↓    Scroll
  pgup/pgdn   Scroll a page
  tab         Switch between rewrite and original
  w           Save as DOCX
  p           Save as PDF
  esc         Back to history

[esc] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.historyView.SetDimensions(width, height)
	a.analysisView.SetDimensions(width, height)
}
