package application

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"helpdesk-assistant/internal/features/helpdesk/domain"
	kb "helpdesk-assistant/internal/features/knowledge/domain"
)

// HelpdeskService defines the interface for one generate cycle.
type HelpdeskService interface {
	Generate(ctx context.Context, input domain.SessionInput) *domain.Result
	Report(mode domain.Mode, topic, issueText, output string) string
}

// helpdeskService is the implementation of HelpdeskService.
type helpdeskService struct {
	title     string
	knowledge *kb.KnowledgeBase
	assistant *Assistant
	now       func() time.Time
	logger    *zap.Logger
}

// NewHelpdeskService creates a new instance of helpdeskService. knowledge is
// shared read-only across requests.
func NewHelpdeskService(title string, knowledge *kb.KnowledgeBase, assistant *Assistant, logger *zap.Logger) HelpdeskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &helpdeskService{
		title:     title,
		knowledge: knowledge,
		assistant: assistant,
		now:       time.Now,
		logger:    logger,
	}
}

// Generate builds the prompt, asks the model once and assembles the report.
func (s *helpdeskService) Generate(ctx context.Context, input domain.SessionInput) *domain.Result {
	prompt := BuildPrompt(input.Mode, input.Topic, strings.TrimSpace(input.IssueText), s.knowledge)

	s.logger.Debug("generating",
		zap.String("mode", string(input.Mode)),
		zap.String("topic", input.Topic),
		zap.Int("prompt_bytes", len(prompt)))

	output := s.assistant.Ask(ctx, prompt)
	at := s.now().UTC().Truncate(time.Second)

	return &domain.Result{
		Prompt:      prompt,
		Output:      output,
		Report:      s.Report(input.Mode, input.Topic, input.IssueText, output),
		Filename:    ReportFilename(at),
		GeneratedAt: at,
	}
}

// Report renders the download for an earlier result.
func (s *helpdeskService) Report(mode domain.Mode, topic, issueText, output string) string {
	return BuildReport(s.title, mode, topic, issueText, output)
}
