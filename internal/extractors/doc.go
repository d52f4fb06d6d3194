// Package extractors provides implementations of the Extractor interface
// for the supported resume formats. Each extractor knows how to turn the
// bytes of one format into plain text paragraphs.
//
// Extractors are registered with the Registry at startup.
package extractors
