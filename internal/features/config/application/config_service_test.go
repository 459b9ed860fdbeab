package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk-assistant/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"HELPDESK_KB_PATH", "HELPDESK_ADDR", "LLM_PROVIDER", "OPENAI_MODEL", "ANTHROPIC_MODEL", "GEMINI_MODEL"} {
		t.Setenv(k, "")
	}
}

func TestResolve_DefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)
	svc := NewConfigService(config.NewAppConfigService(filepath.Join(t.TempDir(), "none.json")), nil)

	cfg := svc.Resolve(Overrides{})

	assert.Equal(t, DefaultTitle, cfg.Title)
	assert.Equal(t, DefaultKBPath, cfg.KnowledgeBasePath)
	assert.Equal(t, "openai", cfg.ModelParams.Provider)
	require.NotNil(t, cfg.ModelParams.Temperature)
	assert.Equal(t, 0.3, *cfg.ModelParams.Temperature)
	assert.Len(t, cfg.Topics, 6)
	assert.Equal(t, "Server boot", cfg.Topics[0])
}

func TestResolve_Layering(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "app_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "title": "Rack Desk",
  "knowledge_base_path": "from-file.yaml",
  "model_params": {"provider": "Anthropic", "temperature": 0.1}
}`), 0o644))
	svc := NewConfigService(config.NewAppConfigService(path), nil)

	t.Run("file over defaults", func(t *testing.T) {
		cfg := svc.Resolve(Overrides{})
		assert.Equal(t, "Rack Desk", cfg.Title)
		assert.Equal(t, DefaultCaption, cfg.Caption)
		assert.Equal(t, "from-file.yaml", cfg.KnowledgeBasePath)
		assert.Equal(t, "anthropic", cfg.ModelParams.Provider)
		assert.Equal(t, 0.1, cfg.ModelParams.SamplingTemperature(DefaultTemperature))
	})

	t.Run("env over file", func(t *testing.T) {
		t.Setenv("HELPDESK_KB_PATH", "from-env.yaml")
		t.Setenv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest")
		t.Setenv("OPENAI_MODEL", "ignored")
		cfg := svc.Resolve(Overrides{})
		assert.Equal(t, "from-env.yaml", cfg.KnowledgeBasePath)
		assert.Equal(t, "claude-3-5-haiku-latest", cfg.ModelParams.Model)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("HELPDESK_KB_PATH", "from-env.yaml")
		cfg := svc.Resolve(Overrides{KnowledgeBasePath: "from-flag.yaml", Provider: "OpenAI", Model: "gpt-4o"})
		assert.Equal(t, "from-flag.yaml", cfg.KnowledgeBasePath)
		assert.Equal(t, "openai", cfg.ModelParams.Provider)
		assert.Equal(t, "gpt-4o", cfg.ModelParams.Model)
	})
}

func TestResolve_BrokenFileIsNotFatal(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "app_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	cfg := NewConfigService(config.NewAppConfigService(path), nil).Resolve(Overrides{})
	assert.Equal(t, DefaultTitle, cfg.Title)
}

func TestSaveDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config", "app_config.json")
	store := config.NewAppConfigService(path)

	saved, err := NewConfigService(store, nil).SaveDefaults()
	require.NoError(t, err)

	loaded, err := store.LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestResolve_ZeroTemperatureFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "app_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model_params": {"temperature": 0}}`), 0o644))

	cfg := NewConfigService(config.NewAppConfigService(path), nil).Resolve(Overrides{})

	require.NotNil(t, cfg.ModelParams.Temperature)
	assert.Equal(t, 0.0, cfg.ModelParams.SamplingTemperature(DefaultTemperature))
}

func TestResolve_TemperatureAbsentKeepsDefault(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "app_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"model_params": {"model": "gpt-4o"}}`), 0o644))

	cfg := NewConfigService(config.NewAppConfigService(path), nil).Resolve(Overrides{})

	assert.Equal(t, DefaultTemperature, cfg.ModelParams.SamplingTemperature(-1))
	assert.Equal(t, "gpt-4o", cfg.ModelParams.Model)
}
