package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil document service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingDocumentService)
	})

	t.Run("document only creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Document: &mockDocumentService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{"empty", &Ports{}, ErrMissingDocumentService},
		{"analysis without document", &Ports{Analysis: &mockAnalysisService{}}, ErrMissingDocumentService},
		{"document only", &Ports{Document: &mockDocumentService{}}, nil},
		{"all ports", &Ports{Document: &mockDocumentService{}, Analysis: &mockAnalysisService{}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
