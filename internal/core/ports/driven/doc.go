// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Extractor: Converts PDF or DOCX bytes into plain text
//   - Renderer: Converts plain text into DOCX or PDF bytes
//   - AnalysisStore: Analysis persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Suggester, Rewriter, Analyst: Text-generation collaborators. Without
//     them the pipeline reuses the original text and the lexical score.
//   - LLMService: Language model backing the collaborators.
//   - PromptStore: Customisable prompt templates.
//   - Normaliser: Reduces HTML or Markdown job postings to plain text.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or renderer package
package driven
