// Package services implements the driving port interfaces.
//
// MatchScorer and ParseMatchScore are pure functions over text.
// DocumentService binds them to the extractor and renderer registries,
// and AnalysisService runs the full pipeline with assistant fallbacks.
package services
