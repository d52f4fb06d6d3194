// Package pdf extracts linear text from PDF documents.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// baselineTolerance is how far (in points) two glyphs may drift vertically
// and still be treated as the same line.
const baselineTolerance = 1.0

// Extractor handles PDF documents.
type Extractor struct{}

// New creates a new PDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns domain.FormatPDF.
func (e *Extractor) Format() domain.Format {
	return domain.FormatPDF
}

// Extract returns the text of every page in order. Strings are emitted in
// content-stream order with a newline whenever the baseline moves.
//
// If a page cannot be decoded, the text of the preceding pages is returned
// together with an ErrExtraction naming the page.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) (domain.PlainText, error) {
	reader, err := openReader(doc.Content)
	if err != nil {
		return "", fmt.Errorf("%w: opening pdf: %w", domain.ErrExtraction, err)
	}

	var out strings.Builder
	total := reader.NumPage()
	logger.Debug("pdf %s: %d pages", doc.Name, total)

	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return fold(out.String()), err
		}

		text, err := pageText(reader, i)
		if err != nil {
			return fold(out.String()), fmt.Errorf("%w: page %d: %w", domain.ErrExtraction, i, err)
		}
		out.WriteString(text)
	}

	return fold(out.String()), nil
}

// openReader parses the cross-reference table. The library panics on some
// corrupt inputs, so panics are turned into errors.
func openReader(content []byte) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("corrupt document: %v", r)
		}
	}()
	return pdf.NewReader(bytes.NewReader(content), int64(len(content)))
}

// pageText linearises one page, starting a new line whenever the baseline moves.
func pageText(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed content stream: %v", r)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}

	var b strings.Builder
	var lastY float64
	for i, run := range pageRuns(page) {
		if i > 0 && math.Abs(run.y-lastY) > baselineTolerance {
			b.WriteByte('\n')
		}
		b.WriteString(run.text)
		lastY = run.y
	}
	if b.Len() > 0 {
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// fold applies compatibility normalisation so ligatures such as "ﬁ"
// become their plain letter sequences.
func fold(s string) domain.PlainText {
	return domain.PlainText(norm.NFKC.String(s))
}
