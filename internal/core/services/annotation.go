package services

import (
	"strconv"
	"strings"
)

const (
	// matchScoreMarker identifies the score line in assistant output.
	matchScoreMarker = "MATCH SCORE"

	// failureSentinelPrefix starts every canned failure message the
	// assistant returns instead of real output.
	failureSentinelPrefix = "Unable to"
)

// IsFailureSentinel reports whether assistant output is a canned failure message.
func IsFailureSentinel(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), failureSentinelPrefix)
}

// ParseMatchScore extracts the integer percent from the first line of text
// containing "MATCH SCORE", e.g. "MATCH SCORE: 73%" gives (73, true).
//
// It returns false when text is a failure sentinel, when no line carries the
// marker, or when the first such line does not parse. Only that first line is
// considered. The value is not clamped to [0, 100].
func ParseMatchScore(text string) (int, bool) {
	if IsFailureSentinel(text) {
		return 0, false
	}

	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, matchScoreMarker) {
			continue
		}

		_, value, found := strings.Cut(line, ":")
		if !found {
			return 0, false
		}
		value = strings.TrimSpace(strings.ReplaceAll(value, "%", ""))

		percent, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		return percent, true
	}

	return 0, false
}
