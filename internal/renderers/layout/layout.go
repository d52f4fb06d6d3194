// Package layout is the pagination engine behind the PDF renderer.
//
// It performs greedy word wrapping and page breaking against a Measurer,
// so the same layout can be computed for any font backend (or a fixed-width
// fake in tests). Coordinates grow downwards from the top-left corner of
// the page; Y is the baseline of a line.
package layout

import (
	"strings"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

// Style is the font treatment of a paragraph class.
type Style struct {
	Bold   bool
	Italic bool

	// Size is the font size in points.
	Size float64

	// SpaceAfter is how far the cursor moves after the last line of a
	// paragraph, in line heights.
	SpaceAfter float64
}

// Styles maps paragraph classes to styles.
type Styles map[domain.ParagraphClass]Style

// DefaultStyles returns the built-in styles: bold and larger headings,
// bold category labels, italic titles and plain body text.
func DefaultStyles() Styles {
	return Styles{
		domain.ClassHeading:       {Bold: true, Size: 14, SpaceAfter: 2.0},
		domain.ClassSkillCategory: {Bold: true, Size: 11, SpaceAfter: 1.7},
		domain.ClassSpecialTitle:  {Italic: true, Size: 11, SpaceAfter: 1.7},
		domain.ClassBody:          {Size: 11, SpaceAfter: 1.5},
	}
}

// For returns the style of a class, falling back to the body style.
func (s Styles) For(class domain.ParagraphClass) Style {
	if style, ok := s[class]; ok {
		return style
	}
	if style, ok := s[domain.ClassBody]; ok {
		return style
	}
	return Style{Size: 11, SpaceAfter: 1.5}
}

// Geometry describes the page in points.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	LineHeight float64
}

// Letter returns a US Letter page with 50pt margins and 14pt lines.
func Letter() Geometry {
	return Geometry{
		PageWidth:  612,
		PageHeight: 792,
		Margin:     50,
		LineHeight: 14,
	}
}

// UsableWidth is the page width minus both margins.
func (g Geometry) UsableWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// Bottom is the lowest baseline a line may be drawn at.
func (g Geometry) Bottom() float64 {
	return g.PageHeight - g.Margin
}

// Measurer reports the rendered width of a string in points.
type Measurer interface {
	StringWidth(text string, style Style) float64
}

// Line is one positioned line of text.
type Line struct {
	Text  string
	X     float64
	Y     float64
	Class domain.ParagraphClass
	Style Style
}

// Page is the lines placed on one page, top to bottom.
type Page struct {
	Lines []Line
}

// Paginate lays out text and returns at least one page.
//
// Each paragraph is wrapped greedily, restarting at the paragraph. When
// the cursor passes the bottom margin the next line starts on a new page.
// Blank paragraphs only move the cursor by half a line. A word wider than
// the usable width is placed on a line of its own.
func Paginate(text domain.PlainText, rules domain.RuleSet, m Measurer, g Geometry, styles Styles) []Page {
	p := &paginator{geometry: g, y: g.Margin}

	for _, paragraph := range text.Paragraphs() {
		if strings.TrimSpace(paragraph) == "" {
			p.advance(g.LineHeight / 2)
			continue
		}

		class := rules.Classify(paragraph)
		style := styles.For(class)
		width := g.UsableWidth()

		line := ""
		for _, word := range strings.Fields(paragraph) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if line == "" || m.StringWidth(candidate, style) <= width {
				line = candidate
				continue
			}
			p.place(line, class, style)
			p.advance(g.LineHeight)
			line = word
		}

		p.place(line, class, style)
		p.advance(g.LineHeight * style.SpaceAfter)
	}

	if len(p.pages) == 0 {
		return []Page{{}}
	}
	return p.pages
}

// paginator tracks the cursor. Pages are created lazily so a break after
// the final paragraph does not leave a blank trailing page.
type paginator struct {
	geometry Geometry
	pages    []Page
	page     int
	y        float64
}

func (p *paginator) place(text string, class domain.ParagraphClass, style Style) {
	for len(p.pages) <= p.page {
		p.pages = append(p.pages, Page{})
	}
	p.pages[p.page].Lines = append(p.pages[p.page].Lines, Line{
		Text:  text,
		X:     p.geometry.Margin,
		Y:     p.y,
		Class: class,
		Style: style,
	})
}

// advance moves the cursor down and breaks the page once it passes the
// bottom margin.
func (p *paginator) advance(dy float64) {
	p.y += dy
	if p.y > p.geometry.Bottom() {
		p.page++
		p.y = p.geometry.Margin
	}
}
