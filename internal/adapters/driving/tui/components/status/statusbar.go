// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateInfo    State = "info"
)

// Bar displays application status on the left and keybinding hints on the right.
type Bar struct {
	styles   *styles.Styles
	state    State
	message  string
	count    int
	bindings []key.Binding
	width    int
}

// NewBar creates a new status bar showing the short help.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles:   s,
		state:    StateReady,
		bindings: km.ShortHelp(),
		width:    80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := max(b.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateLoading:
		return b.styles.Muted.Render("Loading...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	case StateInfo:
		return b.styles.Success.Render(b.message)
	case StateReady:
	}
	if b.count > 0 {
		return b.styles.Normal.Render(fmt.Sprintf("%d analyses", b.count))
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.bindings))
	for _, binding := range b.bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the state and message together.
func (b *Bar) SetState(state State, message string) {
	b.state = state
	b.message = message
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetCount sets the number of analyses shown when ready.
func (b *Bar) SetCount(count int) {
	b.count = count
}

// SetBindings replaces the keybinding hints.
func (b *Bar) SetBindings(bindings []key.Binding) {
	b.bindings = bindings
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Clear resets the status bar to the ready state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}
