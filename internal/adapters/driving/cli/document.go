package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Print the plain text of a PDF or DOCX resume",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

var scoreCmd = &cobra.Command{
	Use:   "score [file]",
	Short: "Score a resume against a job description",
	Long: `Score computes the lexical keyword overlap between a resume and a job
description. The resume may be a PDF, a DOCX or a plain-text file.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

var renderCmd = &cobra.Command{
	Use:   "render [text-file]",
	Short: "Render a plain-text resume to DOCX or PDF",
	Long: `Render lays out a plain-text resume, one paragraph per line, as a styled
DOCX or a paginated PDF. Section headings, skill categories and job titles are
recognised from the classify.* lexicons in the configuration.

Headings and skill categories have built-in defaults. Job and project titles
are resume-specific, so none are italicised until you list them in
config.toml:

  [classify]
  titles = ["Senior Software Engineer", "Frontend Developer Intern"]`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var parseScoreCmd = &cobra.Command{
	Use:   "parse-score [file]",
	Short: `Extract the percent from a "MATCH SCORE: NN%" line`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParseScore,
}

func init() {
	addJobFlags(scoreCmd)

	renderCmd.Flags().StringP("format", "f", "pdf", "Output format (docx or pdf)")
	renderCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(parseScoreCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}

	text, err := documentService.Extract(cmd.Context(), doc)
	if text != "" {
		cmd.Println(text.String())
	}
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", args[0], err)
	}
	return nil
}

func runScore(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	job, err := jobDescription(cmd)
	if err != nil {
		return err
	}

	resume, err := resumeText(cmd, args[0])
	if err != nil {
		return err
	}

	score := documentService.Score(resume, job)
	cmd.Printf("Match score: %s\n", scoreBadge(score.Percent()))
	return nil
}

// resumeText extracts PDF and DOCX files and reads anything else as text.
func resumeText(cmd *cobra.Command, path string) (string, error) {
	if !domain.FormatFromFilename(path).IsValid() {
		return readText(cmd, path)
	}

	doc, err := readDocument(path)
	if err != nil {
		return "", err
	}
	text, err := documentService.Extract(cmd.Context(), doc)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", path, err)
	}
	return text.String(), nil
}

func runRender(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	format := domain.ParseFormat(formatFlag)
	if !format.IsValid() {
		return fmt.Errorf("%w: %q (expected docx or pdf)", domain.ErrUnsupportedFormat, formatFlag)
	}

	text, err := readText(cmd, args[0])
	if err != nil {
		return err
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	doc, err := documentService.Render(cmd.Context(), domain.PlainText(strings.TrimRight(text, "\n")), format)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	return writeBinary(cmd, output, doc)
}

func runParseScore(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	text, err := readText(cmd, args[0])
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no such file: %s", args[0])
		}
		return err
	}

	percent, ok := documentService.ParseMatchScore(text)
	if !ok {
		return errors.New("no parseable MATCH SCORE line")
	}
	cmd.Println(percent)
	return nil
}
