// Package analysis provides the single-analysis view for the TUI.
package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
)

// reservedLines is the chrome around the scrolling body: title, separator,
// scroll indicator and status bar.
const reservedLines = 7

// View shows scores, suggestions, the narrative and one version of the resume.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	analyses driving.AnalysisService
	ctx      context.Context
	status   *status.Bar

	// outputDir receives files written with w and p.
	outputDir string

	analysis     *domain.Analysis
	original     bool
	lines        []string
	scrollOffset int
	width        int
	height       int
}

// NewView creates an analysis view that saves rendered files to outputDir.
func NewView(
	ctx context.Context,
	s *styles.Styles,
	km *keymap.KeyMap,
	analyses driving.AnalysisService,
	outputDir string,
) *View {
	bar := status.NewBar(s, km)
	bar.SetBindings(km.AnalysisHelp())
	return &View{
		styles:    s,
		keymap:    km,
		analyses:  analyses,
		ctx:       ctx,
		status:    bar,
		outputDir: outputDir,
		width:     80,
		height:    24,
	}
}

// SetAnalysis shows a, starting at the top with the rewrite.
func (v *View) SetAnalysis(a domain.Analysis) {
	v.analysis = &a
	v.original = false
	v.scrollOffset = 0
	v.status.Clear()
	v.layout()
}

// Update handles messages for the analysis view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.DocumentWritten:
		if msg.Err != nil {
			v.status.SetState(status.StateError, msg.Err.Error())
		} else {
			v.status.SetState(status.StateInfo, "Wrote "+msg.Path)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewHistory} }
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }
	case keymap.Matches(keyStr, v.keymap.Toggle):
		v.original = !v.original
		v.layout()
		return v, nil
	case keymap.Matches(keyStr, v.keymap.WriteDOCX):
		return v, v.write(domain.FormatDOCX)
	case keymap.Matches(keyStr, v.keymap.WritePDF):
		return v, v.write(domain.FormatPDF)
	}

	switch keyStr {
	case "up", "k":
		v.scrollOffset = max(v.scrollOffset-1, 0)
	case "down", "j":
		v.scrollOffset = min(v.scrollOffset+1, v.maxScrollOffset())
	case "pgup", "ctrl+u":
		v.scrollOffset = max(v.scrollOffset-v.visibleLines(), 0)
	case "pgdown", "ctrl+d":
		v.scrollOffset = min(v.scrollOffset+v.visibleLines(), v.maxScrollOffset())
	case "home", "g":
		v.scrollOffset = 0
	case "end", "G":
		v.scrollOffset = v.maxScrollOffset()
	}
	return v, nil
}

// write renders the shown resume and saves it under its suggested name.
func (v *View) write(format domain.Format) tea.Cmd {
	if v.analysis == nil {
		return nil
	}
	id, original, dir := v.analysis.ID, v.original, v.outputDir
	return func() tea.Msg {
		doc, err := v.analyses.Download(v.ctx, id, format, original)
		if err != nil {
			return messages.DocumentWritten{Err: err}
		}
		path := filepath.Join(dir, doc.Filename)
		if err := os.WriteFile(path, doc.Content, 0600); err != nil {
			return messages.DocumentWritten{Err: fmt.Errorf("write %s: %w", path, err)}
		}
		return messages.DocumentWritten{Path: path}
	}
}

// layout builds the wrapped body lines for the current analysis and mode.
func (v *View) layout() {
	v.lines = nil
	if v.analysis == nil {
		return
	}
	a := v.analysis

	var body []string
	add := func(s ...string) { body = append(body, s...) }

	add(fmt.Sprintf("Initial score %s   Rewrite score %s   Match %s (%s)",
		v.styles.ScoreBadge(a.InitialScore.Percent()),
		v.styles.ScoreBadge(a.NewScore.Percent()),
		v.styles.ScoreBadge(a.MatchPercent),
		a.MatchSource))
	for _, w := range a.Warnings {
		add(v.styles.Warning.Render("! " + w))
	}

	add("", v.styles.Subtitle.Render("Suggestions"))
	add(v.wrap(a.Suggestions)...)

	if a.Narrative != "" {
		add("", v.styles.Subtitle.Render("Match analysis"))
		add(v.wrap(a.Narrative)...)
	}

	heading, text := "Rewritten resume", a.RewrittenResume
	if v.original {
		heading, text = "Original resume", a.ResumeText
	}
	add("", v.styles.Subtitle.Render(heading))
	add(v.wrap(text)...)

	v.lines = body
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// wrap splits text into lines no wider than the view, breaking at spaces.
func (v *View) wrap(text string) []string {
	width := max(v.width-4, 20)
	var out []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) > width:
				out = append(out, line)
				line = word
			default:
				line += " " + word
			}
		}
		out = append(out, line)
	}
	return out
}

func (v *View) visibleLines() int {
	return max(v.height-reservedLines, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the analysis view.
func (v *View) View() string {
	var b strings.Builder

	if v.analysis == nil {
		b.WriteString(v.styles.Muted.Render("No analysis selected"))
		b.WriteString("\n\n")
		b.WriteString(v.status.View())
		return b.String()
	}

	b.WriteString(v.styles.Title.Render(v.analysis.Filename))
	b.WriteString(" ")
	b.WriteString(v.styles.Muted.Render(v.analysis.ID))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(max(v.width-4, 0), 60)))
	b.WriteString("\n")

	end := min(v.scrollOffset+v.visibleLines(), len(v.lines))
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.lines[i])
		b.WriteString("\n")
	}

	if len(v.lines) > v.visibleLines() {
		percentage := v.scrollOffset * 100 / max(v.maxScrollOffset(), 1)
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [%d%%] Line %d-%d of %d",
			percentage, v.scrollOffset+1, end, len(v.lines))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.status.View())
	return b.String()
}

// SetDimensions sets the view dimensions and rewraps the body.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.status.SetWidth(width)
	v.layout()
}

// Analysis returns the analysis shown, or nil.
func (v *View) Analysis() *domain.Analysis {
	return v.analysis
}

// ShowingOriginal reports whether the original resume is shown instead of the rewrite.
func (v *View) ShowingOriginal() bool {
	return v.original
}

// ScrollOffset returns the first visible body line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}

// Status returns the status bar.
func (v *View) Status() *status.Bar {
	return v.status
}
