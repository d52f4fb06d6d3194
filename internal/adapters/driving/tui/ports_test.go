package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingAnalysisService)
	assert.NoError(t, (&Ports{Analysis: &mockAnalysisService{}}).Validate())
}
