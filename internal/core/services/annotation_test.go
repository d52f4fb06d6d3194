package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMatchScore(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   int
		wantOK bool
	}{
		{"leading score line", "MATCH SCORE: 73%\nStrong overlap on Go.", 73, true},
		{"score on later line", "Analysis\n\nMATCH SCORE: 41%\nMore text", 41, true},
		{"no percent sign", "MATCH SCORE: 55", 55, true},
		{"spaces around value", "MATCH SCORE:   88 % ", 88, true},
		{"windows line endings", "MATCH SCORE: 12%\r\nrest", 12, true},
		{"markdown prefix", "**MATCH SCORE: 64%**", 0, false},
		{"out of range passes through", "MATCH SCORE: 140%", 140, true},
		{"negative passes through", "MATCH SCORE: -5%", -5, true},
		{"decimal fails", "MATCH SCORE: 73.5%", 0, false},
		{"no colon", "MATCH SCORE 73%", 0, false},
		{"only first marker line counts", "MATCH SCORE: n/a\nMATCH SCORE: 80%", 0, false},
		{"lowercase marker ignored", "match score: 73%", 0, false},
		{"no marker", "The resume is a good fit.", 0, false},
		{"empty", "", 0, false},
		{"failure sentinel", "Unable to generate analysis at this time. MATCH SCORE: 90%", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMatchScore(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsFailureSentinel(t *testing.T) {
	assert.True(t, IsFailureSentinel("Unable to rewrite resume at this time. Please try again later."))
	assert.True(t, IsFailureSentinel("  Unable to generate suggestions"))
	assert.False(t, IsFailureSentinel("I was unable to find Docker experience."))
	assert.False(t, IsFailureSentinel(""))
}
