package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalysis_BaseFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"jane.pdf", "jane"},
		{"/uploads/Jane Doe.docx", "Jane Doe"},
		{"cv.final.pdf", "cv.final"},
		{"noext", "noext"},
		{".pdf", "resume"},
		{"", "resume"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			a := &Analysis{Filename: tt.filename}
			assert.Equal(t, tt.want, a.BaseFilename())
		})
	}
}
