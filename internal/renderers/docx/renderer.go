// Package docx renders plain text into a WordprocessingML package.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/atsfit-cli/internal/renderers/layout"
)

// Ensure Renderer implements the interface.
var _ driven.Renderer = (*Renderer)(nil)

const (
	nsMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCoreProps     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC            = "http://purl.org/dc/elements/1.1/"
	nsDCTerms       = "http://purl.org/dc/terms/"
	nsXSI           = "http://www.w3.org/2001/XMLSchema-instance"

	relOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCoreProps      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"

	// blankLineTwips is half of a 14pt line in twentieths of a point.
	blankLineTwips = 140

	defaultTitle = "Resume"
)

// Renderer produces DOCX packages.
type Renderer struct {
	styles layout.Styles
	now    func() time.Time
}

// New creates a DOCX renderer with the default paragraph styles.
func New() *Renderer {
	return &Renderer{
		styles: layout.DefaultStyles(),
		now:    time.Now,
	}
}

// Format returns domain.FormatDOCX.
func (r *Renderer) Format() domain.Format {
	return domain.FormatDOCX
}

// Render writes one paragraph per non-blank line of text. Blank lines add
// half a line of space before the next paragraph instead of a node.
func (r *Renderer) Render(ctx context.Context, text domain.PlainText, rules domain.RuleSet) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, title := r.buildBody(text, rules)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name  string
		value any
	}{
		{"[Content_Types].xml", contentTypes()},
		{"_rels/.rels", packageRelationships()},
		{"word/document.xml", &wDocument{NSW: nsMain, Body: body}},
		{"docProps/core.xml", r.coreProperties(title)},
	}
	for _, part := range parts {
		if err := writeXMLPart(zw, part.name, part.value); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %w", domain.ErrRender, part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing package: %w", domain.ErrRender, err)
	}
	return buf.Bytes(), nil
}

// buildBody converts paragraphs to XML nodes and picks the first non-blank
// paragraph as the document title.
func (r *Renderer) buildBody(text domain.PlainText, rules domain.RuleSet) (wBody, string) {
	var (
		body    wBody
		title   string
		pending int
	)

	for _, paragraph := range text.Paragraphs() {
		if strings.TrimSpace(paragraph) == "" {
			pending += blankLineTwips
			continue
		}
		if title == "" {
			title = strings.TrimSpace(paragraph)
		}

		style := r.styles.For(rules.Classify(paragraph))
		p := wParagraph{Run: wRun{Props: runProps(style), Text: wText{Space: "preserve", Value: paragraph}}}
		if pending > 0 {
			p.Props = &wParaProps{Spacing: &wSpacing{Before: pending}}
			pending = 0
		}
		body.Paragraphs = append(body.Paragraphs, p)
	}

	if title == "" {
		title = defaultTitle
	}
	body.Section = wSection{
		PageSize:   wPageSize{W: 12240, H: 15840},
		PageMargin: wPageMargin{Top: 1000, Right: 1000, Bottom: 1000, Left: 1000},
	}
	return body, title
}

// runProps maps a style onto run properties. Sizes are in half-points.
func runProps(style layout.Style) *wRunProps {
	halfPoints := int(math.Round(style.Size * 2))
	props := &wRunProps{
		Size:   &wVal{Val: halfPoints},
		SizeCS: &wVal{Val: halfPoints},
	}
	if style.Bold {
		props.Bold = &wOnOff{}
	}
	if style.Italic {
		props.Italic = &wOnOff{}
	}
	return props
}

func (r *Renderer) coreProperties(title string) *coreProperties {
	stamp := r.now().UTC().Format(time.RFC3339)
	return &coreProperties{
		NSCP:     nsCoreProps,
		NSDC:     nsDC,
		NSDCT:    nsDCTerms,
		NSXSI:    nsXSI,
		Title:    title,
		Creator:  "atsfit",
		Created:  w3cdtf{Type: "dcterms:W3CDTF", Value: stamp},
		Modified: w3cdtf{Type: "dcterms:W3CDTF", Value: stamp},
	}
}

func contentTypes() *typesXML {
	return &typesXML{
		NS: nsContentTypes,
		Defaults: []typeDefault{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []typeOverride{
			{PartName: "/word/document.xml", ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"},
			{PartName: "/docProps/core.xml", ContentType: "application/vnd.openxmlformats-package.core-properties+xml"},
		},
	}
}

func packageRelationships() *relationshipsXML {
	return &relationshipsXML{
		NS: nsRelationships,
		Relationships: []relationship{
			{ID: "rId1", Type: relOfficeDocument, Target: "word/document.xml"},
			{ID: "rId2", Type: relCoreProps, Target: "docProps/core.xml"},
		},
	}
}

func writeXMLPart(zw *zip.Writer, name string, v any) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(w).Encode(v)
}
