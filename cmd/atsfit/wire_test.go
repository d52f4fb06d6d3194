package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/atsfit-cli/internal/core/domain"
)

func TestBootstrap_EphemeralKeepsSettingsInMemory(t *testing.T) {
	dir := t.TempDir()

	s, err := bootstrap(context.Background(), cli.Options{ConfigDir: dir, Ephemeral: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Settings.SetLLMProvider(domain.AIProviderOllama, "", ""))

	settings, err := s.Settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)

	onDisk, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	assert.Empty(t, onDisk.GetString("llm.provider"))
}

func TestBootstrap_EphemeralReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	onDisk, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, onDisk.Set("scoring.strict_denominator", true))

	s, err := bootstrap(context.Background(), cli.Options{ConfigDir: dir, Ephemeral: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	settings, err := s.Settings.Get()
	require.NoError(t, err)
	assert.True(t, settings.Scoring.StrictDenominator)
}

func TestBootstrap_PersistsSettings(t *testing.T) {
	dir := t.TempDir()

	s, err := bootstrap(context.Background(), cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Settings.SetLLMProvider(domain.AIProviderOllama, "", ""))
	require.NoError(t, s.Close())

	onDisk, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "ollama", onDisk.GetString("llm.provider"))
}
