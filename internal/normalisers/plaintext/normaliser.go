// Package plaintext normalises plain text job postings.
package plaintext

import (
	"bytes"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normaliser handles plain text. It is also the registry fallback.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".txt", ".text"}
}

// Normalise strips a byte order mark, unifies line endings and composes
// Unicode so accented skills compare equal to their typed form.
func (n *Normaliser) Normalise(content []byte) string {
	content = bytes.TrimPrefix(content, utf8BOM)
	text := norm.NFC.String(string(content))
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return text
}
