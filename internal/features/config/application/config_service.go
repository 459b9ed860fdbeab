package application

import (
	"errors"
	"os"
	"strings"

	"go.uber.org/zap"

	"helpdesk-assistant/internal/config"
	"helpdesk-assistant/internal/features/config/domain"
	helpdesk "helpdesk-assistant/internal/features/helpdesk/domain"
)

const (
	DefaultTitle        = "AI Helpdesk Assistant"
	DefaultCaption      = "Troubleshooting steps and customer replies for common issues"
	DefaultSystemPrompt = "You are a concise, safety focused helpdesk coach."
	DefaultKBPath       = "kb.yaml"
	DefaultListenAddr   = ":8080"
	DefaultConfigPath   = "config/app_config.json"
	DefaultProvider     = "openai"
	DefaultTemperature  = 0.3
	DefaultTips         = "Tips: keep the description short, add steps to kb.yaml for better guidance."
)

// Overrides holds values set explicitly on the command line. Empty fields are ignored.
type Overrides struct {
	KnowledgeBasePath string
	ListenAddr        string
	Provider          string
	Model             string
}

// ConfigService resolves the effective application configuration.
type ConfigService interface {
	Resolve(overrides Overrides) *domain.AppConfig
	SaveDefaults() (*domain.AppConfig, error)
}

// configService is the implementation of ConfigService.
type configService struct {
	store  config.AppConfigService
	logger *zap.Logger
}

// NewConfigService creates a new instance of configService.
func NewConfigService(store config.AppConfigService, logger *zap.Logger) ConfigService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &configService{store: store, logger: logger}
}

// Defaults returns the built-in configuration.
func Defaults() *domain.AppConfig {
	return &domain.AppConfig{
		Title:             DefaultTitle,
		Caption:           DefaultCaption,
		Topics:            append([]string(nil), helpdesk.Topics...),
		SystemPrompt:      DefaultSystemPrompt,
		KnowledgeBasePath: DefaultKBPath,
		ListenAddr:        DefaultListenAddr,
		HelpText: []string{
			"Use environment variable OPENAI_API_KEY",
			"Edit kb.yaml to add playbooks",
		},
		Tips: DefaultTips,
		ModelParams: domain.ModelParams{
			Provider:    DefaultProvider,
			Temperature: float64Ptr(DefaultTemperature),
		},
	}
}

// Resolve layers defaults, the config file, the environment and overrides, in
// that order. A missing or broken config file is not fatal.
func (s *configService) Resolve(overrides Overrides) *domain.AppConfig {
	cfg := Defaults()

	if s.store != nil {
		fileCfg, err := s.store.LoadAppConfig()
		switch {
		case err == nil:
			merge(cfg, fileCfg)
		case errors.Is(err, config.ErrAppConfigNotFound):
			s.logger.Debug("no app config file, using defaults", zap.String("path", s.store.Path()))
		default:
			s.logger.Warn("ignoring app config file", zap.String("path", s.store.Path()), zap.Error(err))
		}
	}

	applyEnv(cfg)
	applyOverrides(cfg, overrides)
	return cfg
}

// SaveDefaults writes the built-in configuration to the config file.
func (s *configService) SaveDefaults() (*domain.AppConfig, error) {
	cfg := Defaults()
	if err := s.store.SaveAppConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func merge(dst, src *domain.AppConfig) {
	if src == nil {
		return
	}
	setString(&dst.Title, src.Title)
	setString(&dst.Caption, src.Caption)
	setString(&dst.SystemPrompt, src.SystemPrompt)
	setString(&dst.KnowledgeBasePath, src.KnowledgeBasePath)
	setString(&dst.ListenAddr, src.ListenAddr)
	setString(&dst.Tips, src.Tips)
	if len(src.Topics) > 0 {
		dst.Topics = append([]string(nil), src.Topics...)
	}
	if len(src.HelpText) > 0 {
		dst.HelpText = append([]string(nil), src.HelpText...)
	}
	setString(&dst.ModelParams.Provider, strings.ToLower(src.ModelParams.Provider))
	setString(&dst.ModelParams.Model, src.ModelParams.Model)
	if src.ModelParams.Temperature != nil {
		dst.ModelParams.Temperature = float64Ptr(*src.ModelParams.Temperature)
	}
	if src.ModelParams.MaxTokens > 0 {
		dst.ModelParams.MaxTokens = src.ModelParams.MaxTokens
	}
}

func applyEnv(cfg *domain.AppConfig) {
	setString(&cfg.KnowledgeBasePath, os.Getenv("HELPDESK_KB_PATH"))
	setString(&cfg.ListenAddr, os.Getenv("HELPDESK_ADDR"))
	setString(&cfg.ModelParams.Provider, strings.ToLower(os.Getenv("LLM_PROVIDER")))

	var modelEnv string
	switch cfg.ModelParams.Provider {
	case "anthropic", "claude":
		modelEnv = "ANTHROPIC_MODEL"
	case "gemini":
		modelEnv = "GEMINI_MODEL"
	default:
		modelEnv = "OPENAI_MODEL"
	}
	setString(&cfg.ModelParams.Model, os.Getenv(modelEnv))
}

func applyOverrides(cfg *domain.AppConfig, o Overrides) {
	setString(&cfg.KnowledgeBasePath, o.KnowledgeBasePath)
	setString(&cfg.ListenAddr, o.ListenAddr)
	setString(&cfg.ModelParams.Provider, strings.ToLower(o.Provider))
	setString(&cfg.ModelParams.Model, o.Model)
}

func float64Ptr(v float64) *float64 {
	return &v
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
