package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"helpdesk-assistant/internal/features/config/domain"
)

var (
	// ErrAppConfigNotFound is returned by LoadAppConfig when the config file
	// does not exist. The underlying fs.ErrNotExist stays in the chain.
	ErrAppConfigNotFound = errors.New("app config not found")
	// ErrAppConfigInvalid is returned by LoadAppConfig when the file exists
	// but is not a valid JSON config object.
	ErrAppConfigInvalid = errors.New("app config is malformed")
)

// AppConfigService reads and writes the helpdesk JSON config file.
type AppConfigService interface {
	LoadAppConfig() (*domain.AppConfig, error)
	SaveAppConfig(config *domain.AppConfig) error
	Path() string
}

type appConfigService struct {
	configPath string
}

// NewAppConfigService returns a file-backed AppConfigService rooted at configPath.
func NewAppConfigService(configPath string) AppConfigService {
	return &appConfigService{configPath: configPath}
}

func (s *appConfigService) Path() string {
	return s.configPath
}

// LoadAppConfig decodes the config file. Absent fields are left zero, so the
// caller layers defaults underneath. A missing file yields ErrAppConfigNotFound
// and a file that does not decode yields ErrAppConfigInvalid.
func (s *appConfigService) LoadAppConfig() (*domain.AppConfig, error) {
	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", s.configPath, err)
	}

	data, err := os.ReadFile(absPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", ErrAppConfigNotFound, absPath, err)
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", absPath, err)
	}

	var cfg domain.AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAppConfigInvalid, absPath, err)
	}
	return &cfg, nil
}

// SaveAppConfig writes cfg as indented JSON. The file is written to a sibling
// temp file and renamed into place so readers never observe a partial config.
func (s *appConfigService) SaveAppConfig(cfg *domain.AppConfig) error {
	absPath, err := filepath.Abs(s.configPath)
	if err != nil {
		return fmt.Errorf("resolve config path %s: %w", s.configPath, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp config in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write config %s: %w", absPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write config %s: %w", absPath, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod config %s: %w", absPath, err)
	}
	if err := os.Rename(tmp.Name(), absPath); err != nil {
		return fmt.Errorf("replace config %s: %w", absPath, err)
	}
	return nil
}
