package services

import (
	"fmt"

	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMRate           = "llm.requests_per_second"
	keyStrictDenominator = "scoring.strict_denominator"
	keyHeadings          = "classify.headings"
	keyCategories        = "classify.categories"
	keyTitles            = "classify.titles"
)

const defaultOllamaURL = "http://localhost:11434"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider:          s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:             s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:           s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:            s.configStore.GetString(keyLLMAPIKey),
			RequestsPerSecond: s.configStore.GetFloat(keyLLMRate),
		},
		Scoring: domain.ScoringSettings{
			StrictDenominator: s.getBool(keyStrictDenominator, defaults.Scoring.StrictDenominator),
		},
		Classification: domain.ClassificationSettings{
			Headings:   s.getStrings(keyHeadings, defaults.Classification.Headings),
			Categories: s.getStrings(keyCategories, defaults.Classification.Categories),
			Titles:     s.getStrings(keyTitles, defaults.Classification.Titles),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}
	if settings.LLM.RequestsPerSecond > 0 {
		if err := s.configStore.Set(keyLLMRate, settings.LLM.RequestsPerSecond); err != nil {
			return fmt.Errorf("save llm requests_per_second: %w", err)
		}
	}

	// Save scoring settings
	if err := s.configStore.Set(keyStrictDenominator, settings.Scoring.StrictDenominator); err != nil {
		return fmt.Errorf("save scoring strict_denominator: %w", err)
	}

	// Save classification lexicons
	lexicons := []struct {
		key   string
		value []string
	}{
		{keyHeadings, settings.Classification.Headings},
		{keyCategories, settings.Classification.Categories},
		{keyTitles, settings.Classification.Titles},
	}
	for _, l := range lexicons {
		value := l.value
		if value == nil {
			value = []string{}
		}
		if err := s.configStore.Set(l.key, value); err != nil {
			return fmt.Errorf("save %s: %w", l.key, err)
		}
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	// A base URL belongs to the provider it was set for.
	if settings.LLM.Provider.IsValid() && settings.LLM.Provider != provider {
		settings.LLM.BaseURL = ""
	}
	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	// Local providers need a base URL; cloud providers keep a custom one
	// so OpenAI-compatible hosts such as Groq or Together keep working.
	if provider.IsLocal() && settings.LLM.BaseURL == "" {
		settings.LLM.BaseURL = defaultOllamaURL
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

// getStrings returns the stored list when the key exists, even if empty,
// so users can clear a default lexicon.
func (s *SettingsService) getStrings(key string, defaultVal []string) []string {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
