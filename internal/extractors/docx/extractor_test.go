package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

// createTestDOCX creates a minimal DOCX package in memory.
func createTestDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())
	return buf.Bytes()
}

func body(paragraphs string) string {
	return `<?xml version="1.0" encoding="UTF-8"?><w:document ` + wordNS + `><w:body>` +
		paragraphs + `</w:body></w:document>`
}

func extract(t *testing.T, documentXML string) (domain.PlainText, error) {
	t.Helper()
	doc := domain.Document{
		Name:    "resume.docx",
		Format:  domain.FormatDOCX,
		Content: createTestDOCX(t, documentXML),
	}
	return New().Extract(context.Background(), doc)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, domain.FormatDOCX, New().Format())
}

func TestExtract_ParagraphsWithBlankLine(t *testing.T) {
	text, err := extract(t, body(
		`<w:p><w:r><w:t>SKILLS</w:t></w:r></w:p>`+
			`<w:p/>`+
			`<w:p><w:r><w:t>Python, Go</w:t></w:r></w:p>`,
	))

	require.NoError(t, err)
	assert.Equal(t, domain.PlainText("SKILLS\n\nPython, Go"), text)
}

func TestExtract_RunsConcatenated(t *testing.T) {
	text, err := extract(t, body(
		`<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>Senior </w:t></w:r>`+
			`<w:r><w:t xml:space="preserve">Engineer </w:t></w:r>`+
			`<w:hyperlink><w:r><w:t>at Acme</w:t></w:r></w:hyperlink></w:p>`,
	))

	require.NoError(t, err)
	assert.Equal(t, "Senior Engineer at Acme", text.String())
}

func TestExtract_TabsAndBreaks(t *testing.T) {
	text, err := extract(t, body(
		`<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>`+
			`<w:r><w:t>Go</w:t><w:tab/><w:t>5 years</w:t><w:br/><w:t>Rust</w:t></w:r></w:p>`,
	))

	require.NoError(t, err)
	assert.Equal(t, "Go\t5 years\nRust", text.String())
}

func TestExtract_SkipsTablesAndTextBoxes(t *testing.T) {
	text, err := extract(t, body(
		`<w:p><w:r><w:t>Intro</w:t></w:r></w:p>`+
			`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`+
			`<w:p><w:r><w:t>Outer</w:t><w:pict><w:txbxContent>`+
			`<w:p><w:r><w:t>Boxed</w:t></w:r></w:p>`+
			`</w:txbxContent></w:pict></w:r></w:p>`,
	))

	require.NoError(t, err)
	assert.Equal(t, "Intro\nOuter", text.String())
}

func TestExtract_PreservesSurroundingWhitespace(t *testing.T) {
	text, err := extract(t, body(
		`<w:p/><w:p><w:r><w:t>Name</w:t></w:r></w:p><w:p/>`,
	))

	require.NoError(t, err)
	assert.Equal(t, "\nName\n", text.String())
}

func TestExtract_EmptyBody(t *testing.T) {
	text, err := extract(t, body(""))

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content func(t *testing.T) []byte
	}{
		{
			name:    "not a zip",
			content: func(*testing.T) []byte { return []byte("plain text, not a package") },
		},
		{
			name:    "missing document part",
			content: func(t *testing.T) []byte { return createTestDOCX(t, "") },
		},
		{
			name:    "malformed xml",
			content: func(t *testing.T) []byte { return createTestDOCX(t, `<w:document `+wordNS+`><w:body><w:p>`) },
		},
		{
			name:    "no body",
			content: func(t *testing.T) []byte { return createTestDOCX(t, `<w:document `+wordNS+`/>`) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := domain.Document{Format: domain.FormatDOCX, Content: tt.content(t)}

			_, err := New().Extract(context.Background(), doc)

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrExtraction)
		})
	}
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doc := domain.Document{Format: domain.FormatDOCX, Content: createTestDOCX(t, body(""))}
	_, err := New().Extract(ctx, doc)

	assert.ErrorIs(t, err, context.Canceled)
}
