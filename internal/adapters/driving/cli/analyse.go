package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
)

var analyseCmd = &cobra.Command{
	Use:     "analyse [file]",
	Aliases: []string{"analyze"},
	Short:   "Score, improve and rewrite a resume for a job description",
	Long: `Analyse extracts a PDF or DOCX resume, scores it against the job
description, asks the configured language model for suggestions, a rewrite and
a match analysis, and stores the result. Without a language model, or when a
call fails, the lexical score is used and the original text is kept.

Download the rewrite afterwards with 'atsfit download ID'.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationAssistant: "true"},
	RunE:        runAnalyse,
}

var downloadCmd = &cobra.Command{
	Use:   "download [analysis-id]",
	Short: "Render a stored analysis as DOCX or PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownload,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage stored analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analyses",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [analysis-id]",
	Short: "Show a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [analysis-id]",
	Short: "Delete a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	addJobFlags(analyseCmd)
	analyseCmd.Flags().Bool("json", false, "Print the analysis as JSON")
	analyseCmd.Flags().Bool("no-narrative", false, "Skip the narrative match analysis")

	downloadCmd.Flags().StringP("format", "f", "docx", "Output format (docx or pdf)")
	downloadCmd.Flags().StringP("output", "o", "", "Output file (default: suggested name in the current directory)")
	downloadCmd.Flags().Bool("original", false, "Render the original extracted text instead of the rewrite")

	historyShowCmd.Flags().Bool("json", false, "Print the analysis as JSON")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	rootCmd.AddCommand(analyseCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(historyCmd)
}

// analysisJSON is the --json shape of an analysis.
type analysisJSON struct {
	ID              string   `json:"id"`
	Filename        string   `json:"filename"`
	InitialScore    int      `json:"initial_score"`
	NewScore        int      `json:"new_score"`
	MatchPercent    int      `json:"match_percent"`
	MatchSource     string   `json:"match_source"`
	Suggestions     string   `json:"suggestions"`
	Narrative       string   `json:"narrative,omitempty"`
	RewrittenResume string   `json:"rewritten_resume"`
	Warnings        []string `json:"warnings,omitempty"`
	CreatedAt       string   `json:"created_at"`
}

func toJSON(a *domain.Analysis) analysisJSON {
	return analysisJSON{
		ID:              a.ID,
		Filename:        a.Filename,
		InitialScore:    a.InitialScore.Percent(),
		NewScore:        a.NewScore.Percent(),
		MatchPercent:    a.MatchPercent,
		MatchSource:     string(a.MatchSource),
		Suggestions:     a.Suggestions,
		Narrative:       a.Narrative,
		RewrittenResume: a.RewrittenResume,
		Warnings:        a.Warnings,
		CreatedAt:       a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func runAnalyse(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	job, err := jobDescription(cmd)
	if err != nil {
		return err
	}
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	skip, _ := cmd.Flags().GetBool("no-narrative")

	analysis, err := analysisService.Analyse(cmd.Context(), driving.AnalyseRequest{
		Document:       doc,
		JobDescription: job,
		SkipNarrative:  skip,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd, toJSON(analysis))
	}
	printAnalysis(cmd, analysis)
	return nil
}

func printAnalysis(cmd *cobra.Command, a *domain.Analysis) {
	cmd.Printf("%s %s\n", headingStyle.Render("Analysis"), mutedStyle.Render(a.ID))
	cmd.Printf("  Resume:        %s\n", a.Filename)
	cmd.Printf("  Initial score: %s\n", scoreBadge(a.InitialScore.Percent()))
	cmd.Printf("  Rewrite score: %s\n", scoreBadge(a.NewScore.Percent()))
	cmd.Printf("  Match:         %s (%s)\n", scoreBadge(a.MatchPercent), a.MatchSource)
	for _, w := range a.Warnings {
		cmd.Println("  " + warnStyle.Render("! "+w))
	}

	cmd.Println()
	cmd.Println(headingStyle.Render("Suggestions"))
	cmd.Println(a.Suggestions)

	if a.Narrative != "" {
		cmd.Println()
		cmd.Println(headingStyle.Render("Match analysis"))
		cmd.Println(a.Narrative)
	}

	cmd.Println()
	cmd.Println(mutedStyle.Render(fmt.Sprintf("Download the rewrite with: atsfit download %s --format docx", a.ID)))
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")
	original, _ := cmd.Flags().GetBool("original")

	format := domain.ParseFormat(formatFlag)
	if !format.IsValid() {
		return fmt.Errorf("%w: %q (expected docx or pdf)", domain.ErrUnsupportedFormat, formatFlag)
	}

	doc, err := analysisService.Download(cmd.Context(), args[0], format, original)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", args[0], err)
	}

	if output == "" {
		output = doc.Filename
	}
	return writeBinary(cmd, output, doc)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	analyses, err := analysisService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}

	if len(analyses) == 0 {
		cmd.Println("No analyses stored.")
		return nil
	}

	for i := range analyses {
		a := &analyses[i]
		cmd.Printf("%s  %s  %s  %s\n",
			a.ID,
			a.CreatedAt.Local().Format("2006-01-02 15:04"),
			scoreBadge(a.MatchPercent),
			a.Filename)
	}
	cmd.Printf("\nTotal: %d analyses\n", len(analyses))
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	analysis, err := analysisService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get analysis: %w", err)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printJSON(cmd, toJSON(analysis))
	}
	printAnalysis(cmd, analysis)
	cmd.Println()
	cmd.Println(headingStyle.Render("Rewritten resume"))
	cmd.Println(analysis.RewrittenResume)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	if err := analysisService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	cmd.Printf("Deleted analysis %s\n", args[0])
	return nil
}
