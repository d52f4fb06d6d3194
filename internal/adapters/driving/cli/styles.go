package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Score bands for badges.
const (
	strongMatch = 75
	fairMatch   = 50
)

var (
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourWarning = lipgloss.Color("#F9E2AF")
	colourError   = lipgloss.Color("#F38BA8")
	colourMuted   = lipgloss.Color("#6C7086")
	colourBadgeFg = lipgloss.Color("#1E1E2E")

	badgeStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(colourBadgeFg)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle   = lipgloss.NewStyle().Foreground(colourMuted)
	warnStyle    = lipgloss.NewStyle().Foreground(colourWarning)
)

// scoreBadge renders a percentage on a background coloured by band.
func scoreBadge(percent int) string {
	colour := colourError
	switch {
	case percent >= strongMatch:
		colour = colourSuccess
	case percent >= fairMatch:
		colour = colourWarning
	}
	return badgeStyle.Background(colour).Render(fmt.Sprintf("%d%%", percent))
}
