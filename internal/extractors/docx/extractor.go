// Package docx extracts paragraph text from OOXML WordprocessingML packages.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// documentPart is the main story of a WordprocessingML package.
const documentPart = "word/document.xml"

// WordprocessingML namespaces, transitional and strict.
var wordNamespaces = map[string]bool{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main": true,
	"http://purl.oclc.org/ooxml/wordprocessingml/main":             true,
}

// Extractor handles DOCX documents.
type Extractor struct{}

// New creates a new DOCX extractor.
func New() *Extractor {
	return &Extractor{}
}

// Format returns domain.FormatDOCX.
func (e *Extractor) Format() domain.Format {
	return domain.FormatDOCX
}

// Extract reads the body paragraphs of the package in declared order and
// joins them with single newlines. Empty paragraphs become empty lines.
func (e *Extractor) Extract(ctx context.Context, doc domain.Document) (domain.PlainText, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Open as ZIP archive
	reader, err := zip.NewReader(bytes.NewReader(doc.Content), int64(len(doc.Content)))
	if err != nil {
		return "", fmt.Errorf("%w: opening docx package: %w", domain.ErrExtraction, err)
	}

	content, err := readPart(reader, documentPart)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrExtraction, err)
	}

	paragraphs, err := parseParagraphs(content)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %s: %w", domain.ErrExtraction, documentPart, err)
	}

	return domain.NewPlainText(paragraphs), nil
}

// readPart returns the bytes of a named package part.
func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
		defer rc.Close()

		content, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("%s not found", name)
}

// parseParagraphs walks the document XML and returns the text of each
// paragraph that is a direct child of w:body. Run text, tabs and breaks are
// kept; property elements, tables and text boxes are not.
func parseParagraphs(content []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	var (
		paragraphs []string
		current    strings.Builder
		stack      []string // word-namespace local names, outermost first
		bodyDepth  = -1
		paraDepth  = -1
		nestedPara int
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := localName(t.Name)
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			stack = append(stack, name)
			depth := len(stack)

			switch {
			case name == "body" && bodyDepth < 0:
				bodyDepth = depth
			case name == "p" && paraDepth < 0 && bodyDepth > 0 && depth == bodyDepth+1:
				paraDepth = depth
				current.Reset()
			case name == "p" && paraDepth > 0:
				nestedPara++
			case paraDepth > 0 && nestedPara == 0 && parent == "r":
				switch name {
				case "tab":
					current.WriteByte('\t')
				case "br", "cr":
					current.WriteByte('\n')
				}
			}

		case xml.EndElement:
			depth := len(stack)
			name := ""
			if depth > 0 {
				name = stack[depth-1]
				stack = stack[:depth-1]
			}
			switch {
			case depth == paraDepth:
				paragraphs = append(paragraphs, current.String())
				paraDepth = -1
			case name == "p" && nestedPara > 0:
				nestedPara--
			}

		case xml.CharData:
			depth := len(stack)
			if paraDepth < 0 || nestedPara > 0 || depth < 2 {
				continue
			}
			if stack[depth-1] == "t" && stack[depth-2] == "r" {
				current.Write(t)
			}
		}
	}

	if bodyDepth < 0 {
		return nil, errors.New("document has no body")
	}
	return paragraphs, nil
}

// localName returns the element's local name when it is in a
// WordprocessingML namespace, or a placeholder for foreign elements.
func localName(name xml.Name) string {
	if wordNamespaces[name.Space] {
		return name.Local
	}
	return "#" + name.Local
}
