package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/normalisers"
)

// isTerminal reports whether w is an interactive terminal. Replaced in tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readDocument loads a PDF or DOCX resume from disk.
func readDocument(path string) (domain.Document, error) {
	format := domain.FormatFromFilename(path)
	if !format.IsValid() {
		return domain.Document{}, fmt.Errorf("%w: %q (expected .pdf or .docx)", domain.ErrUnsupportedFormat, filepath.Ext(path))
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.Document{}, err
	}
	return domain.Document{Name: filepath.Base(path), Format: format, Content: content}, nil
}

// jobNormaliser reduces HTML and Markdown job postings to plain text.
var jobNormaliser = normalisers.NewDefaultRegistry()

// readText reads a text file, or stdin when path is "-".
func readText(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

// jobDescription resolves --job or --job-file.
func jobDescription(cmd *cobra.Command) (string, error) {
	job, _ := cmd.Flags().GetString("job")
	jobFile, _ := cmd.Flags().GetString("job-file")

	switch {
	case job != "" && jobFile != "":
		return "", errors.New("use either --job or --job-file, not both")
	case jobFile != "":
		text, err := readText(cmd, jobFile)
		if err != nil {
			return "", fmt.Errorf("read job description: %w", err)
		}
		job = jobNormaliser.Normalise(jobFile, []byte(text))
	}

	if strings.TrimSpace(job) == "" {
		return "", errors.New("a job description is required (--job or --job-file)")
	}
	return job, nil
}

func addJobFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("job", "j", "", "Job description text")
	cmd.Flags().String("job-file", "", "Read the job description from a file (.txt, .md or .html; - for stdin)")
}

// writeBinary writes rendered bytes to path, or to stdout when path is empty.
// Binary output is refused on a terminal.
func writeBinary(cmd *cobra.Command, path string, doc *domain.RenderedDocument) error {
	if path == "" || path == "-" {
		out := cmd.OutOrStdout()
		if isTerminal(out) {
			return fmt.Errorf("refusing to write %s to a terminal; use -o FILE or redirect output", strings.ToUpper(doc.Format.String()))
		}
		_, err := out.Write(doc.Content)
		return err
	}

	if err := os.WriteFile(path, doc.Content, 0600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	cmd.PrintErrf("Wrote %s (%d bytes)\n", path, len(doc.Content))
	return nil
}
