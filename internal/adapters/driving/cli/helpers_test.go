package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/services"
	"github.com/custodia-labs/atsfit-cli/internal/extractors"
	"github.com/custodia-labs/atsfit-cli/internal/renderers"
)

const (
	testResume = "JANE DOE\nSKILLS\nLanguages: Go, Python\nDocker and Kubernetes"
	testJob    = "Senior Go engineer with Kubernetes experience"
)

// setupTestServices injects in-memory services without an assistant.
func setupTestServices(t *testing.T) *Services {
	t.Helper()

	documents := services.NewDocumentService(
		extractors.NewDefaultRegistry(),
		renderers.NewDefaultRegistry(),
		domain.DefaultAppSettings(),
	)
	s := &Services{
		Document: documents,
		Analysis: services.NewAnalysisService(documents, memory.NewAnalysisStore(), nil, nil, nil),
		Settings: services.NewSettingsService(memory.NewConfigStore(), nil),
	}
	SetServices(s)
	t.Cleanup(func() { SetServices(nil) })
	return s
}

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, "", args...)
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// writeDOCX renders text to a DOCX file in a temp dir and returns its path.
func writeDOCX(t *testing.T, s *Services, name, text string) string {
	t.Helper()

	doc, err := s.Document.Render(context.Background(), domain.PlainText(text), domain.FormatDOCX)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, doc.Content, 0600))
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
