package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	// ErrMissingCredential is returned when the provider's API key is not set.
	// No request is made in that case.
	ErrMissingCredential = errors.New("missing API credential")
	// ErrUnknownProvider is returned by NewAIClient for an unsupported provider name.
	ErrUnknownProvider = errors.New("unsupported LLM provider")
)

// CompletionRequest is a single system + user exchange.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// AIClient defines a generic interface for chat-style completion services.
type AIClient interface {
	// Complete sends one request and returns the generated text.
	Complete(ctx context.Context, req CompletionRequest) (string, error)

	// Provider is the human readable provider name, e.g. "OpenAI".
	Provider() string

	// CredentialEnv names the environment variable holding the API key.
	CredentialEnv() string
}

// AIConfig holds configuration for AI clients
type AIConfig struct {
	Provider string `json:"provider"` // "openai", "anthropic", "gemini"
	Model    string `json:"model"`
	BaseURL  string `json:"base_url,omitempty"`
}

// NewAIClient creates the client for cfg.Provider. The API key itself is not
// read here; every call looks it up again.
func NewAIClient(cfg AIConfig) (AIClient, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "openai", "":
		return NewOpenAIClient(cfg.Model, cfg.BaseURL), nil
	case "anthropic", "claude":
		return NewAnthropicClient(cfg.Model, cfg.BaseURL), nil
	case "gemini", "google":
		return NewGeminiClient(cfg.Model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("%w: %s (supported: openai, anthropic, gemini)", ErrUnknownProvider, cfg.Provider)
	}
}

// AvailableProviders returns the provider names NewAIClient accepts.
func AvailableProviders() []string {
	return []string{"openai", "anthropic", "gemini"}
}

func lookupKey(env string) (string, error) {
	key := strings.TrimSpace(os.Getenv(env))
	if key == "" {
		return "", fmt.Errorf("%w: %s not set", ErrMissingCredential, env)
	}
	return key, nil
}
