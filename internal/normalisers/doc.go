// Package normalisers provides implementations of the Normaliser interface
// for job postings saved as HTML, Markdown or plain text. Each normaliser
// reduces one markup format to the plain text the scorer reads.
//
// Normalisers are registered with the Registry by file extension.
package normalisers
