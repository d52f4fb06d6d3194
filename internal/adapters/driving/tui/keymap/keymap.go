// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Filter focuses the filename filter in the history list.
	Filter key.Binding

	// Refresh reloads the history.
	Refresh key.Binding

	// Delete removes the selected analysis.
	Delete key.Binding

	// Toggle switches between the rewritten and the original resume.
	Toggle key.Binding

	// WriteDOCX and WritePDF render the shown resume into the working directory.
	WriteDOCX key.Binding
	WritePDF  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "original/rewrite"),
		),
		WriteDOCX: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "save docx"),
		),
		WritePDF: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "save pdf"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// HistoryHelp returns keybindings for the history list.
func (k *KeyMap) HistoryHelp() []key.Binding {
	return []key.Binding{k.Select, k.Filter, k.Delete, k.Quit}
}

// AnalysisHelp returns keybindings for the analysis view.
func (k *KeyMap) AnalysisHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.WriteDOCX, k.WritePDF, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back},
		{k.Filter, k.Refresh, k.Delete},
		{k.Toggle, k.WriteDOCX, k.WritePDF},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
