package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"helpdesk-assistant/internal/features/helpdesk/infrastructure"
)

// Assistant wraps an AIClient so that callers always get text back.
type Assistant struct {
	client      infrastructure.AIClient
	system      string
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

// NewAssistant creates an Assistant with a fixed persona and sampling temperature.
func NewAssistant(client infrastructure.AIClient, system string, temperature float64, maxTokens int, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		client:      client,
		system:      system,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

// SetupMessage is returned instead of calling out when the credential is missing.
func SetupMessage(env string) string {
	return fmt.Sprintf("Set your %s environment variable to run the assistant.", env)
}

// Ask sends prompt to the model. Failures come back as readable text, never as an error.
func (a *Assistant) Ask(ctx context.Context, prompt string) string {
	out, err := a.client.Complete(ctx, infrastructure.CompletionRequest{
		System:      a.system,
		Prompt:      prompt,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	})
	switch {
	case errors.Is(err, infrastructure.ErrMissingCredential):
		a.logger.Warn("model call skipped, no credential", zap.String("env", a.client.CredentialEnv()))
		return SetupMessage(a.client.CredentialEnv())
	case err != nil:
		a.logger.Error("model call failed", zap.String("provider", a.client.Provider()), zap.Error(err))
		return fmt.Sprintf("%s error: %v", a.client.Provider(), err)
	}
	return out
}
