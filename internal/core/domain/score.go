package domain

// MatchScore is the lexical overlap between a resume and a job description.
// It is always within [0, 1].
type MatchScore float64

// NewMatchScore clamps v into [0, 1].
func NewMatchScore(v float64) MatchScore {
	switch {
	case v != v, v < 0: // NaN or negative
		return 0
	case v > 1:
		return 1
	default:
		return MatchScore(v)
	}
}

// Float returns the score as a float64.
func (s MatchScore) Float() float64 {
	return float64(s)
}

// Percent returns the integer percentage, truncating score*100.
func (s MatchScore) Percent() int {
	return int(float64(s) * 100)
}

// ScoreSource records where an analysis' headline percentage came from.
type ScoreSource string

// Score sources.
const (
	// ScoreSourceAssistant means the percent was parsed from the assistant's
	// "MATCH SCORE: NN%" line.
	ScoreSourceAssistant ScoreSource = "assistant"

	// ScoreSourceLexical means the MatchScorer was used as fallback.
	ScoreSourceLexical ScoreSource = "lexical"
)
