// Package cli provides the atsfit command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// annotationAssistant marks commands that call the language model.
const annotationAssistant = "atsfit/assistant"

// Options are the global flags handed to the Bootstrap function.
type Options struct {
	// ConfigDir overrides ~/.atsfit.
	ConfigDir string

	// Ephemeral keeps analyses in memory instead of the history database,
	// and settings changes in memory instead of the config file.
	Ephemeral bool

	// WithAssistant asks for the LLM-backed assistant to be connected.
	WithAssistant bool
}

// PromptWatcher reloads prompt templates when their files change.
type PromptWatcher interface {
	Watch(ctx context.Context) (<-chan string, error)
}

// Services are the ports the commands drive.
type Services struct {
	Document driving.DocumentService
	Analysis driving.AnalysisService
	Settings driving.SettingsService

	// Prompts is optional; serve uses it to pick up edited prompts.
	Prompts PromptWatcher

	// Close releases stores and clients. Optional.
	Close func() error
}

// Bootstrap builds the services for a command invocation.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	bootstrap Bootstrap
	injected  *Services
	owned     bool // injected came from bootstrap and is closed after the command

	documentService driving.DocumentService
	analysisService driving.AnalysisService
	settingsService driving.SettingsService
	promptWatcher   PromptWatcher

	opts Options
)

var rootCmd = &cobra.Command{
	Use:   "atsfit",
	Short: "Score and tailor resumes for applicant tracking systems",
	Long: `atsfit extracts the text of a PDF or DOCX resume, scores it against a job
description, optionally asks a language model for suggestions, a rewrite and
a match analysis, and renders plain-text resumes back to DOCX or PDF.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print pipeline progress to stderr")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "Configuration directory (default ~/.atsfit)")
	rootCmd.PersistentFlags().BoolVar(&opts.Ephemeral, "ephemeral", false, "Keep analyses and settings changes in memory only")
}

// SetBootstrap registers the function that wires services from the global flags.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects ready-made services, bypassing Bootstrap.
func SetServices(s *Services) {
	injected = s
	if s == nil {
		documentService, analysisService, settingsService, promptWatcher = nil, nil, nil, nil
		return
	}
	documentService = s.Document
	analysisService = s.Analysis
	settingsService = s.Settings
	promptWatcher = s.Prompts
}

// Execute runs the root command and releases bootstrapped services, even
// when the command fails.
func Execute(ctx context.Context, buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	// Command output is data (extracted text, JSON, rendered bytes); cobra
	// would otherwise print to stderr.
	rootCmd.SetOut(os.Stdout)

	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeServices(); err == nil {
		err = closeErr
	}
	return err
}

func initServices(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger.SetVerbose(verbose)

	if injected != nil || cmd == versionCmd {
		return nil
	}
	if bootstrap == nil {
		return errors.New("services not configured")
	}

	o := opts
	_, o.WithAssistant = cmd.Annotations[annotationAssistant]

	s, err := bootstrap(cmd.Context(), o)
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(s)
	owned = true
	return nil
}

func closeServices() error {
	if !owned {
		return nil
	}
	owned = false

	var err error
	if injected.Close != nil {
		err = injected.Close()
	}
	SetServices(nil)
	return err
}
