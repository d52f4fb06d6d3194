package domain

import (
	"path/filepath"
	"strings"
)

// Format identifies a document container format.
type Format string

// Supported formats.
const (
	// FormatPDF is a PDF byte stream.
	FormatPDF Format = "pdf"

	// FormatDOCX is an OOXML WordprocessingML package.
	FormatDOCX Format = "docx"
)

// MIME types for the supported formats.
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// IsValid returns true if the format is PDF or DOCX.
func (f Format) IsValid() bool {
	return f == FormatPDF || f == FormatDOCX
}

// String returns the string representation.
func (f Format) String() string {
	return string(f)
}

// MIMEType returns the MIME type of the format, or "" for unknown formats.
func (f Format) MIMEType() string {
	switch f {
	case FormatPDF:
		return MIMETypePDF
	case FormatDOCX:
		return MIMETypeDOCX
	default:
		return ""
	}
}

// Extension returns the file extension including the leading dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ParseFormat converts a user-supplied format tag ("PDF", ".docx") into a Format.
// The result is not validated; call IsValid.
func ParseFormat(s string) Format {
	return Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
}

// FormatFromFilename derives the format from a file name's extension.
func FormatFromFilename(name string) Format {
	return ParseFormat(filepath.Ext(name))
}

// Document is an uploaded resume: opaque bytes plus a declared format.
// It is consumed once by extraction and is not retained.
type Document struct {
	// Name is the original file name, if known.
	Name string

	// Format is the declared container format.
	Format Format

	// Content is the raw bytes.
	Content []byte
}

// PlainText is the text of a document as newline-separated paragraphs.
// Blank paragraphs are meaningful as spacing markers.
type PlainText string

// NewPlainText joins paragraphs with exactly one newline.
func NewPlainText(paragraphs []string) PlainText {
	return PlainText(strings.Join(paragraphs, "\n"))
}

// Paragraphs splits the text into its paragraphs, in order.
func (t PlainText) Paragraphs() []string {
	return strings.Split(string(t), "\n")
}

// String returns the text.
func (t PlainText) String() string {
	return string(t)
}

// RenderedDocument is an in-memory output buffer handed to the boundary layer.
type RenderedDocument struct {
	// Format is the output format.
	Format Format

	// MIMEType is the content type for transmission.
	MIMEType string

	// Filename is a suggested download name. It may be empty.
	Filename string

	// Content is the document bytes.
	Content []byte
}
