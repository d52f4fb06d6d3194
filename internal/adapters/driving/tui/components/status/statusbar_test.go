package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/keymap"
)

func TestBar_States(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		message string
		count   int
		want    string
	}{
		{"ready empty", StateReady, "", 0, "Ready"},
		{"ready with count", StateReady, "", 3, "3 analyses"},
		{"loading", StateLoading, "", 0, "Loading..."},
		{"error with message", StateError, "locked", 0, "Error: locked"},
		{"error bare", StateError, "", 0, "Error"},
		{"info", StateInfo, "Wrote cv.docx", 0, "Wrote cv.docx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBar(nil, nil)
			b.SetState(tt.state, tt.message)
			b.SetCount(tt.count)

			assert.Contains(t, b.View(), tt.want)
			assert.Equal(t, tt.state, b.State())
		})
	}
}

func TestBar_Bindings(t *testing.T) {
	km := keymap.DefaultKeyMap()
	b := NewBar(nil, km)
	b.SetWidth(200)

	assert.Contains(t, b.View(), "q: quit")

	b.SetBindings(km.AnalysisHelp())
	view := b.View()
	assert.Contains(t, view, "w: save docx")
	assert.NotContains(t, view, "?: help")
}

func TestBar_Clear(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetState(StateError, "boom")

	b.Clear()

	assert.Equal(t, StateReady, b.State())
	assert.Empty(t, b.Message())
}
