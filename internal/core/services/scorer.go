package services

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

// Scoring constants.
const (
	// tokenCutset is stripped from both ends of each job-description token.
	tokenCutset = `.,;:()"'-`

	// minTokenRunes is the length a token must exceed to be tested.
	minTokenRunes = 2

	// inflation scales the raw ratio before clamping.
	inflation = 1.5
)

// stopWords are never counted as job-description tokens.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "with": {},
	"by": {}, "is": {}, "are": {}, "was": {}, "were": {},
}

// MatchScorer computes a lexical overlap score between a resume and a job description.
// It holds no mutable state and is safe for concurrent use.
type MatchScorer struct {
	strictDenominator bool
}

// NewMatchScorer creates a scorer from scoring settings.
func NewMatchScorer(settings domain.ScoringSettings) *MatchScorer {
	return &MatchScorer{strictDenominator: settings.StrictDenominator}
}

// Score returns the fraction of distinct job-description words that occur
// verbatim in the resume, inflated by 1.5 and clamped to [0, 1].
//
// Tokens of two runes or fewer are never tested but still count towards the
// denominator unless the scorer was built with StrictDenominator.
func (s *MatchScorer) Score(resumeText, jobDescription string) domain.MatchScore {
	resume := strings.ToLower(resumeText)
	tokens := jobTokens(jobDescription)

	matches, tested := 0, 0
	for token := range tokens {
		if utf8.RuneCountInString(token) <= minTokenRunes {
			continue
		}
		tested++
		if strings.Contains(resume, token) {
			matches++
		}
	}

	denominator := len(tokens)
	if s.strictDenominator {
		denominator = tested
	}
	if denominator == 0 {
		return 0
	}

	return domain.NewMatchScore(float64(matches) / float64(denominator) * inflation)
}

// jobTokens lower-cases and splits a job description into its set of
// distinct tokens, stripped of surrounding punctuation and minus stop words.
// Tokens that strip down to the empty string are kept.
func jobTokens(jobDescription string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(jobDescription))
	tokens := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		token := strings.Trim(field, tokenCutset)
		if _, stop := stopWords[token]; stop {
			continue
		}
		tokens[token] = struct{}{}
	}
	return tokens
}
