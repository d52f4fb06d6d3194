package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s.Theme())
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}

func TestBandColour(t *testing.T) {
	s := DefaultStyles()
	theme := s.Theme()

	tests := []struct {
		percent int
		want    lipgloss.Color
	}{
		{100, theme.Success},
		{StrongMatch, theme.Success},
		{StrongMatch - 1, theme.Warning},
		{FairMatch, theme.Warning},
		{FairMatch - 1, theme.Error},
		{0, theme.Error},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.BandColour(tt.percent), "percent %d", tt.percent)
	}
}

func TestScoreBadge(t *testing.T) {
	assert.Contains(t, DefaultStyles().ScoreBadge(42), "42%")
}
