// Package pdf renders plain text into a paginated PDF using go-pdf/fpdf.
// Layout is computed by package layout; this package only measures and draws.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
	"github.com/custodia-labs/atsfit-cli/internal/renderers/layout"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

const fontFamily = "Go"

// fontFaces are embedded as UTF-8 TrueType fonts so every character of the
// text reaches the PDF with a ToUnicode mapping.
var fontFaces = []struct {
	style string
	ttf   []byte
}{
	{"", goregular.TTF},
	{"B", gobold.TTF},
	{"I", goitalic.TTF},
	{"BI", gobolditalic.TTF},
}

// maxFontRune is the last code point the embedded font tables can address.
const maxFontRune = 0xFFFF

// Renderer produces PDF documents.
type Renderer struct {
	geometry layout.Geometry
	styles   layout.Styles
}

// New creates a PDF renderer for Letter pages with the default styles.
func New() *Renderer {
	return &Renderer{
		geometry: layout.Letter(),
		styles:   layout.DefaultStyles(),
	}
}

// Format returns domain.FormatPDF.
func (r *Renderer) Format() domain.Format {
	return domain.FormatPDF
}

// Render lays out the text and draws each line at its computed position.
// The font is set again at the top of every page.
//
// Characters outside the Basic Multilingual Plane cannot be embedded and
// fail the render with ErrRender rather than being dropped.
func (r *Renderer) Render(ctx context.Context, text domain.PlainText, rules domain.RuleSet) (out []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkEncodable(text); err != nil {
		return nil, err
	}
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("%w: %v", domain.ErrRender, p)
		}
	}()

	doc := r.newDocument()
	m := newMeasurer(doc)
	pages := layout.Paginate(text, rules, m, r.geometry, r.styles)
	logger.Debug("pdf layout: %d pages", len(pages))

	for _, page := range pages {
		doc.AddPage()
		var current *layout.Style
		for _, line := range page.Lines {
			if current == nil || *current != line.Style {
				style := line.Style
				m.apply(style)
				current = &style
			}
			doc.Text(line.X, line.Y, line.Text)
		}
	}

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRender, err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: writing pdf: %w", domain.ErrRender, err)
	}
	return buf.Bytes(), nil
}

// newDocument creates an empty document sized to the geometry. Automatic
// page breaks are off because package layout decides where pages end.
func (r *Renderer) newDocument() *fpdf.Fpdf {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: r.geometry.PageWidth, Ht: r.geometry.PageHeight},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(r.geometry.Margin, r.geometry.Margin, r.geometry.Margin)
	doc.SetCreator("atsfit", true)
	for _, face := range fontFaces {
		doc.AddUTF8FontFromBytes(fontFamily, face.style, face.ttf)
	}
	return doc
}

// checkEncodable rejects code points the embedded fonts cannot carry.
func checkEncodable(text domain.PlainText) error {
	for i, r := range text {
		if r > maxFontRune {
			return fmt.Errorf("%w: character %U at byte %d is not supported in PDF output", domain.ErrRender, r, i)
		}
	}
	return nil
}

// measurer reports widths with the metrics of the embedded fonts.
type measurer struct {
	doc *fpdf.Fpdf
}

func newMeasurer(doc *fpdf.Fpdf) *measurer {
	return &measurer{doc: doc}
}

func (m *measurer) StringWidth(text string, style layout.Style) float64 {
	m.apply(style)
	return m.doc.GetStringWidth(text)
}

func (m *measurer) apply(style layout.Style) {
	m.doc.SetFont(fontFamily, fontStyle(style), style.Size)
}

func fontStyle(style layout.Style) string {
	switch {
	case style.Bold && style.Italic:
		return "BI"
	case style.Bold:
		return "B"
	case style.Italic:
		return "I"
	default:
		return ""
	}
}
