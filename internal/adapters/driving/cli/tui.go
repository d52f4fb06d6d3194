package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse stored analyses in a terminal UI",
	Long: `Browse, inspect and delete stored analyses, and save a rewrite as DOCX
or PDF, from an interactive terminal interface.

Controls:
  ↑/k, ↓/j - Move / scroll
  Enter    - Open analysis
  /        - Filter by file name
  Tab      - Switch between rewrite and original
  w, p     - Save as DOCX, PDF
  x x      - Delete analysis
  Esc      - Back
  ?        - Help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringP("output-dir", "o", ".", "Directory rendered resumes are saved to")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("panic in TUI: %v", r)
		}
	}()

	outputDir, _ := cmd.Flags().GetString("output-dir")

	app, err := tui.NewApp(&tui.Ports{Analysis: analysisService, OutputDir: outputDir})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
