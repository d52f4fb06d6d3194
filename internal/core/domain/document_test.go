package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in    string
		want  Format
		valid bool
	}{
		{"pdf", FormatPDF, true},
		{"PDF", FormatPDF, true},
		{".docx", FormatDOCX, true},
		{"  Docx ", FormatDOCX, true},
		{"txt", Format("txt"), false},
		{"", Format(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseFormat(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, got.IsValid())
		})
	}
}

func TestFormatFromFilename(t *testing.T) {
	assert.Equal(t, FormatPDF, FormatFromFilename("/tmp/Jane Doe.PDF"))
	assert.Equal(t, FormatDOCX, FormatFromFilename("cv.final.docx"))
	assert.False(t, FormatFromFilename("README").IsValid())
	assert.False(t, FormatFromFilename("cv.doc").IsValid())
}

func TestFormat_MIMETypeAndExtension(t *testing.T) {
	assert.Equal(t, MIMETypePDF, FormatPDF.MIMEType())
	assert.Equal(t, MIMETypeDOCX, FormatDOCX.MIMEType())
	assert.Empty(t, Format("rtf").MIMEType())

	assert.Equal(t, ".pdf", FormatPDF.Extension())
	assert.Equal(t, ".docx", FormatDOCX.Extension())
	assert.Equal(t, "docx", FormatDOCX.String())
}

func TestPlainText_Paragraphs(t *testing.T) {
	tests := []struct {
		name       string
		paragraphs []string
		text       PlainText
	}{
		{"single", []string{"JANE DOE"}, "JANE DOE"},
		{"blank paragraphs kept", []string{"SKILLS", "", "Go"}, "SKILLS\n\nGo"},
		{"trailing blank", []string{"Go", ""}, "Go\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := NewPlainText(tt.paragraphs)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.paragraphs, text.Paragraphs())
			assert.Equal(t, string(tt.text), text.String())
		})
	}
}

func TestPlainText_EmptyIsOneParagraph(t *testing.T) {
	assert.Equal(t, []string{""}, PlainText("").Paragraphs())
}
