package html

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles HTML documents.
type Normaliser struct{}

// New creates a new HTML normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// skipped elements carry no readable posting text.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Head:     true,
	atom.Svg:      true,
	atom.Template: true,
}

// blocks start a new line.
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Hr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Li: true, atom.Tr: true, atom.Blockquote: true, atom.Pre: true,
	atom.Table: true, atom.Section: true, atom.Article: true,
	atom.Ul: true, atom.Ol: true, atom.Dt: true, atom.Dd: true,
}

var multiSpaces = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)

// Normalise strips tags and returns the visible text, one block per line.
// Entities are decoded. Malformed markup yields whatever text was read.
func (n *Normaliser) Normalise(content []byte) string {
	z := html.NewTokenizer(bytes.NewReader(content))

	var b strings.Builder
	depth := 0 // inside skipped elements
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF, or a read error on an in-memory reader that cannot happen.
			return tidy(b.String())

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skipped[a] && tt == html.StartTagToken {
				depth++
			}
			if blocks[a] {
				b.WriteByte('\n')
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			a := atom.Lookup(name)
			if skipped[a] && depth > 0 {
				depth--
			}
			if blocks[a] {
				b.WriteByte('\n')
			}

		case html.TextToken:
			if depth == 0 {
				b.Write(z.Text())
			}

		case html.CommentToken, html.DoctypeToken:
		}
	}
}

// tidy collapses runs of spaces, trims lines and drops empty ones.
func tidy(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(multiSpaces.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
