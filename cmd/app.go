package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"helpdesk-assistant/internal/config"
	configapp "helpdesk-assistant/internal/features/config/application"
	configdomain "helpdesk-assistant/internal/features/config/domain"
	"helpdesk-assistant/internal/features/helpdesk/application"
	"helpdesk-assistant/internal/features/helpdesk/infrastructure"
	kbinfra "helpdesk-assistant/internal/features/knowledge/infrastructure"
)

// app is everything a command needs once configuration is resolved.
type app struct {
	cfg     *configdomain.AppConfig
	service application.HelpdeskService
	client  infrastructure.AIClient
	logger  *zap.Logger
}

func buildApp(opts *rootOptions, overrides configapp.Overrides) (*app, error) {
	logger := opts.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store := config.NewAppConfigService(opts.configPath)
	cfg := configapp.NewConfigService(store, logger).Resolve(overrides)

	knowledge := kbinfra.LoadKnowledgeBase(cfg.KnowledgeBasePath, logger)

	client, err := infrastructure.NewAIClient(infrastructure.AIConfig{
		Provider: cfg.ModelParams.Provider,
		Model:    cfg.ModelParams.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}

	assistant := application.NewAssistant(client, cfg.SystemPrompt, cfg.ModelParams.SamplingTemperature(configapp.DefaultTemperature), cfg.ModelParams.MaxTokens, logger)
	service := application.NewHelpdeskService(cfg.Title, knowledge, assistant, logger)

	logger.Debug("app ready",
		zap.String("provider", client.Provider()),
		zap.String("kb", cfg.KnowledgeBasePath),
		zap.Int("topics", len(cfg.Topics)))

	return &app{cfg: cfg, service: service, client: client, logger: logger}, nil
}
