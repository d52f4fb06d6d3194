package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/services"
)

func TestAnalyseCmd_Metadata(t *testing.T) {
	assert.Equal(t, "analyse [file]", analyseCmd.Use)
	assert.Contains(t, analyseCmd.Aliases, "analyze")
	assert.Contains(t, analyseCmd.Annotations, annotationAssistant)
	assert.NotContains(t, historyListCmd.Annotations, annotationAssistant)
}

// analyseJSON runs analyse --json and decodes the result.
func analyseJSON(t *testing.T, s *Services) analysisJSON {
	t.Helper()
	path := writeDOCX(t, s, "jane.docx", testResume)

	out, err := execute(t, "analyse", path, "--job", testJob, "--json")
	require.NoError(t, err)

	var got analysisJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	return got
}

func TestAnalyseCmd_WithoutAssistant(t *testing.T) {
	s := setupTestServices(t)
	path := writeDOCX(t, s, "jane.docx", testResume)

	out, err := execute(t, "analyse", path, "--job", testJob)

	require.NoError(t, err)
	assert.Contains(t, out, "Analysis")
	assert.Contains(t, out, "jane.docx")
	assert.Contains(t, out, services.FallbackSuggestions)
	assert.Contains(t, out, services.WarnRewriteUnavailable)
	assert.Contains(t, out, "atsfit download")
}

func TestAnalyseCmd_JSON(t *testing.T) {
	s := setupTestServices(t)
	want := s.Document.Score(testResume, testJob).Percent()

	got := analyseJSON(t, s)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "jane.docx", got.Filename)
	assert.Equal(t, want, got.InitialScore)
	assert.Equal(t, want, got.NewScore)
	assert.Equal(t, want, got.MatchPercent)
	assert.Equal(t, string(domain.ScoreSourceLexical), got.MatchSource)
	assert.Equal(t, testResume, got.RewrittenResume)
	assert.NotEmpty(t, got.CreatedAt)
}

func TestAnalyseCmd_Errors(t *testing.T) {
	s := setupTestServices(t)
	docx := writeDOCX(t, s, "cv.docx", testResume)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"no job", []string{"analyse", docx}, "job description is required"},
		{"text resume", []string{"analyse", writeFile(t, "cv.txt", testResume), "-j", testJob}, "unsupported"},
		{"missing file", []string{"analyse", filepath.Join(t.TempDir(), "cv.pdf"), "-j", testJob}, "no such file"},
		{"corrupt file", []string{"analyse", writeFile(t, "bad.docx", "nope"), "-j", testJob}, "analysis failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHistoryCommands(t *testing.T) {
	s := setupTestServices(t)

	out, err := execute(t, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No analyses stored.")

	created := analyseJSON(t, s)

	t.Run("list", func(t *testing.T) {
		out, err := execute(t, "history", "list")

		require.NoError(t, err)
		assert.Contains(t, out, created.ID)
		assert.Contains(t, out, "jane.docx")
		assert.Contains(t, out, "Total: 1 analyses")
	})

	t.Run("show", func(t *testing.T) {
		out, err := execute(t, "history", "show", created.ID)

		require.NoError(t, err)
		assert.Contains(t, out, "Rewritten resume")
		assert.Contains(t, out, testResume)
	})

	t.Run("show json", func(t *testing.T) {
		out, err := execute(t, "history", "show", created.ID, "--json")

		require.NoError(t, err)
		var got analysisJSON
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, created, got)
	})

	t.Run("show missing", func(t *testing.T) {
		_, err := execute(t, "history", "show", "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		out, err := execute(t, "history", "delete", created.ID)
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted analysis "+created.ID)

		_, err = execute(t, "history", "delete", created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDownloadCmd(t *testing.T) {
	s := setupTestServices(t)
	created := analyseJSON(t, s)

	tests := []struct {
		name  string
		args  []string
		magic string
	}{
		{"default docx", nil, "PK"},
		{"pdf", []string{"--format", "pdf"}, "%PDF"},
		{"original", []string{"--original", "-f", "pdf"}, "%PDF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "out")
			args := append([]string{"download", created.ID, "-o", output}, tt.args...)

			_, err := execute(t, args...)

			require.NoError(t, err)
			data, err := os.ReadFile(output)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), tt.magic))
		})
	}

	t.Run("suggested name", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		out, err := execute(t, "download", created.ID)

		require.NoError(t, err)
		assert.Contains(t, out, "Wrote jane_rewritten.docx")
		assert.FileExists(t, filepath.Join(dir, "jane_rewritten.docx"))
	})

	t.Run("bad format", func(t *testing.T) {
		_, err := execute(t, "download", created.ID, "--format", "odt")
		assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := execute(t, "download", "nope", "-o", filepath.Join(t.TempDir(), "x.docx"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
