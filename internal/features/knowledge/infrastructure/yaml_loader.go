package infrastructure

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"helpdesk-assistant/internal/features/knowledge/domain"
)

// LoadKnowledgeBase reads the playbook document at path. Any failure yields an
// empty knowledge base; the cause is only logged.
func LoadKnowledgeBase(path string, logger *zap.Logger) *domain.KnowledgeBase {
	if logger == nil {
		logger = zap.NewNop()
	}
	kb, err := readKnowledgeBase(path)
	if err != nil {
		logger.Warn("knowledge base unavailable, continuing without playbooks",
			zap.String("path", path), zap.Error(err))
		return domain.Empty()
	}
	logger.Info("knowledge base loaded", zap.String("path", path), zap.Int("playbooks", kb.Len()))
	return kb
}

func readKnowledgeBase(path string) (*domain.KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base %s: %w", path, err)
	}

	var kb domain.KnowledgeBase
	if err := yaml.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("parse knowledge base %s: %w", path, err)
	}
	if kb.Playbooks == nil {
		kb.Playbooks = map[string][]string{}
	}
	return &kb, nil
}
