// Package domain defines the core business entities for atsfit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: Uploaded resume bytes tagged with a Format
//   - PlainText: Ordered paragraphs extracted from a Document
//   - MatchScore: Lexical overlap between a resume and a job description
//   - RuleSet: Ordered paragraph classification rules used when rendering
//   - RenderedDocument: Output bytes plus MIME type
//   - Analysis: One stored run of the analyse pipeline
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
