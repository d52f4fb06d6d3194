package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the language model provider. Scoring and
classification options are edited directly in config.toml.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the LLM provider",
	Long: `Configure the language model used for suggestions, rewrites and match
analysis. Any OpenAI-compatible service (Groq, Together) works with
--provider openai and --base-url.

Examples:
  atsfit settings llm --provider ollama --model llama3.2
  atsfit settings llm --provider openai --base-url https://api.groq.com/openai/v1 --model llama-3.1-70b-versatile
  atsfit settings llm --provider anthropic --validate`,
	RunE: runSettingsLLM,
}

func init() {
	settingsLLMCmd.Flags().String("provider", "", "Provider: ollama, openai or anthropic")
	settingsLLMCmd.Flags().String("model", "", "Model name (default depends on provider)")
	settingsLLMCmd.Flags().String("api-key", "", "API key (prompted for when required and not set)")
	settingsLLMCmd.Flags().String("base-url", "", "API base URL")
	settingsLLMCmd.Flags().Bool("validate", false, "Ping the provider after saving")
	_ = settingsLLMCmd.MarkFlagRequired("provider")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	if settings.LLM.RequestsPerSecond > 0 {
		cmd.Printf("  Requests/second: %g\n", settings.LLM.RequestsPerSecond)
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured (lexical scoring only)"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Scoring]")
	cmd.Printf("  Strict denominator: %t\n", settings.Scoring.StrictDenominator)
	cmd.Println()

	cmd.Println("[Classification]")
	cmd.Printf("  Headings: %s\n", listOrNone(settings.Classification.Headings))
	cmd.Printf("  Categories: %s\n", listOrNone(settings.Classification.Categories))
	cmd.Printf("  Titles: %s\n", listOrNone(settings.Classification.Titles))
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	providerFlag, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	apiKey, _ := cmd.Flags().GetString("api-key")
	validate, _ := cmd.Flags().GetBool("validate")

	provider := domain.AIProvider(strings.ToLower(providerFlag))
	if !provider.IsValid() {
		return fmt.Errorf("unknown provider %q (expected ollama, openai or anthropic)", providerFlag)
	}

	if provider.RequiresAPIKey() && apiKey == "" {
		current, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		if current.LLM.Provider == provider && current.LLM.APIKey != "" {
			apiKey = current.LLM.APIKey
		} else {
			cmd.Printf("API key for %s: ", provider.Description())
			apiKey = readPassword()
			cmd.Println()
		}
	}

	if err := settingsService.SetLLMProvider(provider, model, apiKey); err != nil {
		return fmt.Errorf("failed to set LLM provider: %w", err)
	}

	if cmd.Flags().Changed("base-url") {
		baseURL, _ := cmd.Flags().GetString("base-url")
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings.LLM.BaseURL = strings.TrimSpace(baseURL)
		if err := settingsService.Save(settings); err != nil {
			return fmt.Errorf("failed to save base URL: %w", err)
		}
	}

	cmd.Printf("LLM provider set to %s\n", provider.Description())

	if validate {
		if err := settingsService.ValidateLLMConfig(); err != nil {
			return fmt.Errorf("provider check failed: %w", err)
		}
		cmd.Println("Provider is reachable.")
	}
	return nil
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
