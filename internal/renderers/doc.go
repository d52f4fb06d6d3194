// Package renderers provides implementations of the Renderer interface.
// A renderer turns plain-text paragraphs back into a styled document,
// classifying each paragraph with a caller-supplied rule set.
package renderers
