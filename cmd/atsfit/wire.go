package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/atsfit-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driven/assistant"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/atsfit-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/atsfit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/atsfit-cli/internal/core/services"
	"github.com/custodia-labs/atsfit-cli/internal/extractors"
	"github.com/custodia-labs/atsfit-cli/internal/logger"
	"github.com/custodia-labs/atsfit-cli/internal/renderers"
)

// bootstrap wires the driven adapters into the core services for one command.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	fileConfig, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var configStore driven.ConfigStore = fileConfig
	if opts.Ephemeral {
		configStore = memory.NewOverlayConfigStore(fileConfig)
	}
	prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		return nil, fmt.Errorf("prompts: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}

	documents := services.NewDocumentService(
		extractors.NewDefaultRegistry(),
		renderers.NewDefaultRegistry(),
		*settings,
	)

	var closers []func() error

	var store driven.AnalysisStore
	if opts.Ephemeral {
		store = memory.NewAnalysisStore()
	} else {
		db, err := sqlite.NewStore(filepath.Join(configDir, "data"))
		if err != nil {
			return nil, fmt.Errorf("history: %w", err)
		}
		logger.Debug("history database: %s", db.Path())
		closers = append(closers, db.Close)
		store = db
	}

	var suggester driven.Suggester
	var rewriter driven.Rewriter
	var analyst driven.Analyst
	if opts.WithAssistant {
		llm, err := ai.CreateAndValidateLLMService(ctx, &settings.LLM)
		switch {
		case err != nil:
			logger.Warn("assistant unavailable, using lexical scoring only: %v", err)
		case llm == nil:
			logger.Debug("no LLM configured; run 'atsfit settings llm' to enable rewrites")
		default:
			closers = append(closers, llm.Close)
			a := assistant.New(llm, prompts, settings.LLM.RequestsPerSecond)
			suggester, rewriter, analyst = a, a, a
		}
	}

	return &cli.Services{
		Document: documents,
		Analysis: services.NewAnalysisService(documents, store, suggester, rewriter, analyst),
		Settings: settingsService,
		Prompts:  prompts,
		Close: func() error {
			var errs []error
			for i := len(closers) - 1; i >= 0; i-- {
				errs = append(errs, closers[i]())
			}
			return errors.Join(errs...)
		},
	}, nil
}
